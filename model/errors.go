package model

import "errors"

// ErrInvalidState matches every validation failure below.
var ErrInvalidState = errors.New("model: invalid map state")

var (
	ErrUnknownTeam       error = stateError("model: unknown team")
	ErrOutOfBounds       error = stateError("model: coordinate out of bounds")
	ErrInvalidDimensions error = stateError("model: width and height must be positive")
	ErrInvalidDirection  error = stateError("model: shot direction out of range")
)

type stateError string

func (e stateError) Error() string {
	return string(e)
}

func (e stateError) Is(target error) bool {
	return target == ErrInvalidState
}
