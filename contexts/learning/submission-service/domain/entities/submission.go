package entities

import "time"

type SubmissionStatus string

const (
	SubmissionStatusVerified    SubmissionStatus = "verified"
	SubmissionStatusNeedsReview SubmissionStatus = "needs_review"
)

// Geotag is the capture location attached to field-project evidence.
type Geotag struct {
	Lat float64
	Lng float64
}

// Submission is one environmental field-project hand-in. AIScore and
// Verified are fixed at creation by the scoring heuristic; verification is
// what triggers the gamification pipeline.
type Submission struct {
	SubmissionID string
	UserID       string
	CourseID     string
	Description  string
	ImageURL     string
	Geotag       *Geotag
	AIScore      int
	Verified     bool
	Status       SubmissionStatus
	CreatedAt    time.Time
}
