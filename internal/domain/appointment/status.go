package appointment

import "github.com/trimsalon/salon-queue-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusCheckedIn   Status = "checked_in"
	StatusInSalon     Status = "in_salon"
	StatusAppointment Status = "appointment"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "canceled"
)

// legal transitions; terminal states have no entries.
var transitions = map[Status][]Status{
	StatusCheckedIn:   {StatusInSalon, StatusCancelled},
	StatusAppointment: {StatusCompleted, StatusCancelled},
	StatusInSalon:     {StatusCompleted},
}

// ===============================
// Validations
// ===============================

func IsValid(s Status) bool {
	switch s {
	case StatusCheckedIn, StatusInSalon, StatusAppointment, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// IsActive reports whether the status occupies a spot in a walk-in queue.
func IsActive(s Status) bool {
	return s == StatusCheckedIn || s == StatusInSalon
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition checks the transition table; any move not listed fails
// with an invalid_transition conflict and no mutation may occur.
func CanTransition(from, to Status) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.Conflict("invalid_transition")
}
