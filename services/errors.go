package services

import "errors"

// The first two messages are contract text shown verbatim to the user; the
// frontend (and the test suite) match on the exact strings.
var (
	ErrInvalidRange     = errors.New("checkout must be after checkin")
	ErrNoAvailability   = errors.New("no availability for the selected dates")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrCustomerNotFound = errors.New("customer not found")
)
