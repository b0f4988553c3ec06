package appointment

import (
	"context"
	"time"

	domain "github.com/trimsalon/salon-queue-api/internal/domain/appointment"
	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/models"
	"github.com/trimsalon/salon-queue-api/internal/timezone"
	"github.com/trimsalon/salon-queue-api/internal/usecase/queue"
)

// ======================================================
// INPUT
// ======================================================

type CreateWalkInInput struct {
	UserID  uint
	SalonID uint
	BarberID uint

	ServiceIDs     []uint
	NumberOfPeople int
}

// ======================================================
// USE CASE
// ======================================================

type CreateWalkIn struct {
	repo   domain.Repository
	engine *queue.Engine
	events Events
	now    func() time.Time
}

func NewCreateWalkIn(
	repo domain.Repository,
	engine *queue.Engine,
	events Events,
) *CreateWalkIn {
	return &CreateWalkIn{
		repo:   repo,
		engine: engine,
		events: events,
		now:    timezone.Now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateWalkIn) Execute(
	ctx context.Context,
	in CreateWalkInInput,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalon(ctx, in.SalonID)
	if err != nil {
		return nil, err
	}
	if salon.Status == models.SalonStatusClosed {
		return nil, httperr.Conflict("salon_closed")
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	if barber.SalonID != in.SalonID {
		return nil, httperr.Validation("barber_not_in_salon")
	}
	if barber.Category != models.CategoryWalkIn {
		return nil, httperr.Validation("barber_not_walkin")
	}
	if barber.AvailabilityStatus != models.BarberAvailable {
		return nil, httperr.Conflict("barber_unavailable")
	}

	active, err := uc.repo.HasActiveAppointment(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, httperr.Conflict("active_appointment_exists")
	}

	serviceRows, serviceTotal, err := resolveServices(ctx, uc.repo, in.SalonID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	required := requiredMinutes(serviceTotal, in.NumberOfPeople)

	now := timezone.NowIn(salon.Timezone)
	today := timezone.Date(now)

	ap := &models.Appointment{
		UserID:         in.UserID,
		SalonID:        in.SalonID,
		BarberID:       in.BarberID,
		Status:         string(domain.StatusCheckedIn),
		NumberOfPeople: maxInt(in.NumberOfPeople, 1),
		CheckInTime:    &now,
		Services:       serviceRows,
	}

	// Capacity check, remaining_time decrement and appointment insert
	// are one atomic unit; the session row lock serializes concurrent
	// check-ins racing for the same barber.
	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		session, err := tx.GetSessionForDate(ctx, in.BarberID, today)
		if err != nil {
			return err
		}

		if session.RemainingTime < required {
			return httperr.Capacity("insufficient_remaining_time")
		}

		wait, position, err := uc.engine.EstimateNewArrival(ctx, in.BarberID)
		if err != nil {
			return err
		}
		ap.EstimatedWaitTime = wait
		ap.QueuePosition = position

		session.RemainingTime -= required
		if err := tx.SaveSession(ctx, session); err != nil {
			return err
		}

		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	full, err := uc.repo.GetAppointment(ctx, ap.ID)
	if err != nil {
		return nil, err
	}

	uc.events.AppointmentCreated(full)

	if board, err := uc.repo.ListActiveQueue(ctx, in.BarberID); err == nil {
		uc.events.BoardChanged(in.BarberID, board)
	}

	return full, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
