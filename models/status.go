package models

import "errors"

type Status string

const (
	StatusReserved   Status = "Reserved"
	StatusCreated    Status = "Created"
	StatusDispatched Status = "Dispatched"
	StatusInTransit  Status = "In Transit"
	StatusArrived    Status = "Arrived at Destination"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
	StatusReturned   Status = "Returned"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// statusTransitions is the shipment progress graph. Cancelled is reachable
// until the vehicle leaves, Returned once it is on the road. Delivered,
// Cancelled and Returned are terminal.
var statusTransitions = map[Status][]Status{
	StatusReserved:   {StatusCreated, StatusCancelled},
	StatusCreated:    {StatusDispatched, StatusCancelled},
	StatusDispatched: {StatusInTransit, StatusCancelled},
	StatusInTransit:  {StatusArrived, StatusReturned},
	StatusArrived:    {StatusDelivered, StatusReturned},
	StatusDelivered:  {},
	StatusCancelled:  {},
	StatusReturned:   {},
}

func (s Status) Valid() bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether moving from s to next is allowed. Writing
// the current status back is a no-op and always allowed.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}
	for _, t := range statusTransitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// Transition validates and returns the next status.
func (s Status) Transition(next Status) (Status, error) {
	if !next.Valid() {
		return s, ErrInvalidTransition
	}
	if !s.CanTransition(next) {
		return s, ErrInvalidTransition
	}
	return next, nil
}
