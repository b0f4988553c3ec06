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

type CancelAppointment struct {
	repo   domain.Repository
	engine *queue.Engine
	events Events
	now    func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	engine *queue.Engine,
	events Events,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		engine: engine,
		events: events,
		now:    timezone.Now,
	}
}

// Execute cancels an appointment and gives back whatever it consumed:
// the booked slot run for appointment-category barbers, the session's
// remaining_time (capped at total capacity) for walk-ins. Release and
// the status write commit together.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	message string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		if err := domain.Cancel(ap, now); err != nil {
			return err
		}

		if ap.Barber.Category == models.CategoryAppointment {
			if err := releaseSlotRun(ctx, tx, ap); err != nil {
				return err
			}
		} else if err := restoreRemaining(ctx, tx, ap); err != nil {
			return err
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	if message == "" {
		message = "Your appointment has been canceled."
	}
	uc.events.AppointmentCancelled(ap, message)

	if board, err := uc.engine.Recalculate(ctx, ap.BarberID); err == nil {
		uc.events.BoardChanged(ap.BarberID, board)
	}

	return ap, nil
}

// releaseSlotRun recovers the full booked run from the single stored
// SlotID: every slot of that session whose start lies in
// [first slot start, appointment end) is freed.
func releaseSlotRun(ctx context.Context, tx domain.Repository, ap *models.Appointment) error {
	if ap.SlotID == nil {
		return nil
	}

	slot, err := tx.GetSlot(ctx, *ap.SlotID)
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return nil // run purged with its session; nothing to release
		}
		return err
	}

	run, err := tx.ListSlotsInWindow(ctx, slot.BarberSessionID, slot.StartTime, ap.EndTime)
	if err != nil {
		return err
	}
	return tx.SetSlotsBooked(ctx, slotIDs(run), false)
}

// restoreRemaining adds the canceled walk-in's consumed duration back
// to the day's session, capped at the session's total capacity.
func restoreRemaining(ctx context.Context, tx domain.Repository, ap *models.Appointment) error {
	day := timezone.Now()
	if ap.CheckInTime != nil {
		day = *ap.CheckInTime
	}

	session, err := tx.GetSessionForDate(ctx, ap.BarberID, timezone.Date(day))
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return nil // session already gone (past date cleanup)
		}
		return err
	}

	session.RemainingTime += ap.TotalServiceMinutes()
	if session.RemainingTime > session.TotalTime {
		session.RemainingTime = session.TotalTime
	}
	return tx.SaveSession(ctx, session)
}
