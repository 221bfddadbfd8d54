package errorvalues

import "errors"

var (
	ErrUserExists       = errors.New("such user already exists")
	ErrUserNotFound     = errors.New("user doesn't exists")
	ErrWrongCredentials = errors.New("wrong name or password")
	ErrInvalidToken     = errors.New("invalid token")

	ErrEventNotFound       = errors.New("event doesn't exist")
	ErrWrongOwner          = errors.New("resource has different owner")
	ErrEventDateNotAllowed = errors.New("event date is in the future")
	ErrUnknownMetric       = errors.New("unknown metric")

	// ErrMissingField marks an event that can't be normalized because a
	// required field is absent or unparsable.
	ErrMissingField = errors.New("required event field missing or invalid")
)
