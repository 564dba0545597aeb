package errors

import "errors"

var (
	ErrInvalidSubmission   = errors.New("submission input is invalid")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrDuplicateSubmission = errors.New("submission already exists for this course and evidence")
)
