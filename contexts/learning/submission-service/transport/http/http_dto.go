package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type GeotagDTO struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type SubmitProjectRequest struct {
	UserID      string     `json:"user_id"`
	CourseID    string     `json:"course_id"`
	Description string     `json:"description"`
	ImageURL    string     `json:"image_url,omitempty"`
	Geotag      *GeotagDTO `json:"geotag,omitempty"`
}

type SubmissionDTO struct {
	SubmissionID string     `json:"submission_id"`
	UserID       string     `json:"user_id"`
	CourseID     string     `json:"course_id"`
	Description  string     `json:"description"`
	ImageURL     string     `json:"image_url,omitempty"`
	Geotag       *GeotagDTO `json:"geotag,omitempty"`
	AIScore      int        `json:"ai_score"`
	Verified     bool       `json:"verified"`
	Status       string     `json:"status"`
	CreatedAt    string     `json:"created_at"`
}

type SubmitProjectResponse struct {
	Status string `json:"status"`
	Data   struct {
		Submission SubmissionDTO `json:"submission"`
		JobID      string        `json:"job_id,omitempty"`
	} `json:"data"`
}

type SubmissionResponse struct {
	Status string        `json:"status"`
	Data   SubmissionDTO `json:"data"`
}

type SubmissionListResponse struct {
	Status string          `json:"status"`
	Data   []SubmissionDTO `json:"data"`
}
