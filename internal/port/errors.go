package port

import "errors"

// Sentinel errors used across ports. Stores return these for absence;
// any other error is an opaque store fault.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrRoomNotFound    = errors.New("meeting room not found")
	ErrBookingNotFound = errors.New("booking not found")
)
