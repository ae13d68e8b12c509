package core

import (
	"errors"
	"fmt"
)

// Error codes for domain errors.
const (
	ErrCodeParse       = "parse_error"
	ErrCodeUnknownRoom = "unknown_room"
	ErrCodeUnknownUser = "unknown_user"
	ErrCodeServerFull  = "server_full"
)

// Sentinels for errors.Is checks across package boundaries.
var (
	ErrUnknownRoom = errors.New("unknown room")
	ErrUnknownUser = errors.New("unknown user")
	ErrServerFull  = errors.New("server full")
)

// CoreError wraps a code and human-readable message around an optional
// sentinel.
type CoreError struct {
	Code    string
	Message string
	err     error
}

func (e *CoreError) Error() string {
	return e.Message
}

// Unwrap lets errors.Is match the sentinel behind the code.
func (e *CoreError) Unwrap() error {
	return e.err
}

func parseError(format string, args ...any) *CoreError {
	return &CoreError{Code: ErrCodeParse, Message: fmt.Sprintf(format, args...)}
}

func unknownRoomError(rid RoomID) *CoreError {
	return &CoreError{
		Code:    ErrCodeUnknownRoom,
		Message: fmt.Sprintf("unknown room: %s", rid),
		err:     ErrUnknownRoom,
	}
}

func unknownUserError(name string) *CoreError {
	return &CoreError{
		Code:    ErrCodeUnknownUser,
		Message: fmt.Sprintf("unknown user: %s", name),
		err:     ErrUnknownUser,
	}
}

func serverFullError(limit int) *CoreError {
	return &CoreError{
		Code:    ErrCodeServerFull,
		Message: fmt.Sprintf("server full: %d users connected", limit),
		err:     ErrServerFull,
	}
}
