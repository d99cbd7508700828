package services

import "errors"

// Sentinel errors the controllers translate into HTTP status codes.
// Validation failures happen before any write; not-found and conflict
// conditions abort the surrounding transaction as a whole.
var (
	ErrInvalidDateRange = errors.New("start date must be earlier than end date")
	ErrNoAdults         = errors.New("booking must include at least one adult")
	ErrNoRoomsSelected  = errors.New("at least one room must be selected")

	ErrRoomNotFound    = errors.New("room not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrRoleNotFound    = errors.New("role not found")
	ErrMessageNotFound = errors.New("message not found")
	ErrLinkNotFound    = errors.New("booking-room link not found")

	ErrRoomUnavailable  = errors.New("room is already booked in the requested period")
	ErrDuplicateBooking = errors.New("booking id already exists")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
	ErrCleanUnchanged   = errors.New("room is already in the requested clean state")

	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrWeakPassword       = errors.New("password does not meet the policy")
	ErrInvalidCredentials = errors.New("incorrect email or password")
)
