package appointment

import (
	"context"
	"time"

	"github.com/trimsalon/salon-queue-api/internal/models"
)

// Repository is the persistence surface the appointment lifecycle
// depends on. WithTx runs fn against a transaction-bound copy; every
// multi-step mutation touching remaining_time, is_booked or status
// goes through it so a mid-sequence failure rolls back cleanly.
type Repository interface {
	WithTx(ctx context.Context, fn func(Repository) error) error

	// -------- Salon / Barber / User --------
	GetSalon(ctx context.Context, id uint) (*models.Salon, error)

	UpdateSalon(ctx context.Context, salon *models.Salon) error

	GetBarber(ctx context.Context, id uint) (*models.Barber, error)

	GetUser(ctx context.Context, id uint) (*models.User, error)

	// HasApprovedLeave reports whether an approved leave blocks the
	// barber on the given date.
	HasApprovedLeave(ctx context.Context, barberID uint, date time.Time) (bool, error)

	// -------- Services --------
	GetServicesByID(
		ctx context.Context,
		salonID uint,
		ids []uint,
	) (map[uint]models.Service, error)

	// -------- Sessions --------

	// GetSessionForDate loads the barber's session for a calendar
	// date. Inside WithTx the row is locked FOR UPDATE, so the
	// capacity check and the remaining_time decrement read together.
	GetSessionForDate(
		ctx context.Context,
		barberID uint,
		date time.Time,
	) (*models.BarberSession, error)

	SaveSession(ctx context.Context, session *models.BarberSession) error

	// -------- Slots --------
	GetSlot(ctx context.Context, id uint) (*models.Slot, error)

	// ListFreeSlotsFrom returns unbooked slots of the session whose
	// start_time >= fromHM, ordered by start_time. Locked FOR UPDATE
	// inside WithTx.
	ListFreeSlotsFrom(
		ctx context.Context,
		sessionID uint,
		fromHM string,
	) ([]models.Slot, error)

	// ListSlotsInWindow returns the session's slots with
	// start_time in [fromHM, toHM), booked or not, ordered.
	ListSlotsInWindow(
		ctx context.Context,
		sessionID uint,
		fromHM string,
		toHM string,
	) ([]models.Slot, error)

	SetSlotsBooked(ctx context.Context, slotIDs []uint, booked bool) error

	// -------- Appointments --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error

	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	HasActiveAppointment(ctx context.Context, userID uint) (bool, error)

	// GetInSalon returns the barber's current in-salon appointment,
	// or nil when the chair is free.
	GetInSalon(ctx context.Context, barberID uint) (*models.Appointment, error)

	// ListActiveQueue returns checked_in/in_salon appointments for
	// the barber ordered by queue_position, services preloaded.
	ListActiveQueue(ctx context.Context, barberID uint) ([]models.Appointment, error)

	ListCheckedInBySalon(ctx context.Context, salonID uint) ([]models.Appointment, error)
}
