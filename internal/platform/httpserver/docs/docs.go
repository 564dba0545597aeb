// Package docs holds the generated swagger definition served at /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/submissions/v1/submissions": {
            "post": {
                "summary": "Submit a field project for verification scoring",
                "tags": ["submissions"]
            }
        },
        "/api/gamification/v1/users/{user_id}/xp": {
            "post": {
                "summary": "Add XP to a user's score ledger",
                "tags": ["gamification"]
            }
        },
        "/api/gamification/v1/events": {
            "post": {
                "summary": "Dispatch a domain event into the gamification pipeline",
                "tags": ["gamification"]
            }
        },
        "/api/leaderboard/v1/top": {
            "get": {
                "summary": "Top ranked users by XP",
                "tags": ["leaderboard"]
            }
        },
        "/api/leaderboard/v1/range": {
            "get": {
                "summary": "Ranked users between two 1-based ranks",
                "tags": ["leaderboard"]
            }
        }
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "",
	Schemes:          []string{},
	Title:            "Evergreen API",
	Description:      "Environmental-education gamification pipeline",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
