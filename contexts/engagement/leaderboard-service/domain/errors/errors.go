package errors

import "errors"

var (
	ErrInvalidUserID = errors.New("leaderboard user id is required")
	ErrInvalidRange  = errors.New("leaderboard rank range is invalid")
	ErrInvalidLimit  = errors.New("leaderboard limit must be positive")
)
