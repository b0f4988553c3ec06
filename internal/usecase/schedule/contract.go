package schedule

import (
	"context"
	"time"

	"github.com/trimsalon/salon-queue-api/internal/models"
)

// Repository is the persistence surface of the session generator.
type Repository interface {
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)

	ListAvailableBarbers(ctx context.Context) ([]models.Barber, error)

	// LastSessionDate returns the most recently generated session
	// date for the barber, or nil when none exists yet.
	LastSessionDate(ctx context.Context, barberID uint) (*time.Time, error)

	SessionExists(ctx context.Context, barberID uint, date time.Time) (bool, error)

	GetSessionForDate(ctx context.Context, barberID uint, date time.Time) (*models.BarberSession, error)

	CreateSession(ctx context.Context, session *models.BarberSession) error

	UpdateSession(ctx context.Context, session *models.BarberSession) error

	// DeleteSession removes a session and cascades its slots.
	DeleteSession(ctx context.Context, sessionID uint) error

	DeleteSessionsBefore(ctx context.Context, barberID uint, date time.Time) error

	ListSessionsBetween(ctx context.Context, barberID uint, from, to time.Time) ([]models.BarberSession, error)

	CreateSlots(ctx context.Context, slots []models.Slot) error

	CountSlots(ctx context.Context, sessionID uint) (int64, error)

	CountBookedSlots(ctx context.Context, sessionID uint) (int64, error)

	DeleteSlotsForSession(ctx context.Context, sessionID uint) error

	DeleteFutureSlots(ctx context.Context, barberID uint, from time.Time) error

	ListApprovedLeaves(ctx context.Context, barberID uint, from, to time.Time) ([]models.BarberLeave, error)

	ListFutureScheduled(ctx context.Context, barberID uint, from time.Time) ([]models.Appointment, error)

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error
}

// EventSink receives domain events for the external notification and
// broadcast layer. Implementations must be non-blocking.
type EventSink interface {
	BarberUnavailable(barberID uint, date time.Time, reason string)
	AppointmentCancelled(ap *models.Appointment, message string)
}
