package domain

import "errors"

var (
	// ErrNotFound is returned when a single-row lookup matches nothing.
	ErrNotFound = errors.New("record not found")

	// ErrReservationNotFound distinguishes a missing reservation on the
	// reservation-detail path from ordinary empty lookups.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidTransition is returned when a guarded status change hits a
	// record that is not in the expected prior status (zero rows updated).
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrUnauthorizedAssignee is returned when start/complete is attempted
	// by a staff member other than the current assignee.
	ErrUnauthorizedAssignee = errors.New("handoff is assigned to another staff member")

	// ErrTierOverlap is returned when a pricing tier's day range overlaps an
	// existing active tier for the same product.
	ErrTierOverlap = errors.New("pricing tier range overlaps an existing tier")
)
