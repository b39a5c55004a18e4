package booking

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// Transition names the state change a successful command performed.
type Transition string

const (
	TransitionCreated     Transition = "created"
	TransitionReactivated Transition = "reactivated"
	TransitionCancelled   Transition = "cancelled"
)

// EventType is the outbox event name emitted for the transition.
func (t Transition) EventType() string {
	switch t {
	case TransitionCreated:
		return "booking.confirmed"
	case TransitionReactivated:
		return "booking.reactivated"
	case TransitionCancelled:
		return "booking.cancelled"
	default:
		return "booking.unknown"
	}
}
