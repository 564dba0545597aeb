package errors

import "errors"

var (
	ErrInvalidUserID = errors.New("gamification user id is required")
	ErrMissingUserID = errors.New("event payload is missing user id")
	ErrUnknownEvent  = errors.New("event name is not recognized")
	ErrUserNotFound  = errors.New("gamification user not found")
)
