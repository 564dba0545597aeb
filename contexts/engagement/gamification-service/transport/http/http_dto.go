package http

import "encoding/json"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AddXPRequest struct {
	XP int64 `json:"xp"`
}

type AddXPResponse struct {
	Status string `json:"status"`
	Data   struct {
		UserID    string   `json:"user_id"`
		TotalXP   int64    `json:"total_xp"`
		NewBadges []string `json:"new_badges"`
	} `json:"data"`
}

type UserSummaryResponse struct {
	Status string `json:"status"`
	Data   struct {
		UserID string   `json:"user_id"`
		XP     int64    `json:"xp"`
		Badges []string `json:"badges"`
		// Rank comes from the ranking store; -1 when the user is untracked.
		Rank int64 `json:"rank"`
	} `json:"data"`
}

type DispatchEventRequest struct {
	EventName string          `json:"event_name"`
	Payload   json.RawMessage `json:"payload"`
}

type DispatchEventResponse struct {
	Status string `json:"status"`
	Data   struct {
		JobID string `json:"job_id,omitempty"`
		Mode  string `json:"mode"`
	} `json:"data"`
}
