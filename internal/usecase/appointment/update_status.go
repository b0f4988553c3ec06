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

// UpdateStatus drives the non-cancel transitions: checked_in →
// in_salon and any → completed. Cancellation has its own use case
// because of its slot/capacity side effects.
type UpdateStatus struct {
	repo   domain.Repository
	engine *queue.Engine
	events Events
	now    func() time.Time
}

func NewUpdateStatus(
	repo domain.Repository,
	engine *queue.Engine,
	events Events,
) *UpdateStatus {
	return &UpdateStatus{
		repo:   repo,
		engine: engine,
		events: events,
		now:    timezone.Now,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	target domain.Status,
) (*models.Appointment, error) {

	switch target {
	case domain.StatusInSalon:
		return uc.startService(ctx, appointmentID)
	case domain.StatusCompleted:
		return uc.complete(ctx, appointmentID)
	default:
		return nil, httperr.Validation("invalid_status_target")
	}
}

// one active chair per barber: a second in_salon for the same barber
// is rejected before any mutation.
func (uc *UpdateStatus) startService(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		occupied, err := tx.GetInSalon(ctx, ap.BarberID)
		if err != nil {
			return err
		}
		if occupied != nil && occupied.ID != ap.ID {
			return httperr.Conflict("barber_busy")
		}

		if err := domain.StartService(ap, now); err != nil {
			return err
		}
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.broadcast(ctx, ap.BarberID)
	return ap, nil
}

func (uc *UpdateStatus) complete(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		if err := domain.Complete(ap, now); err != nil {
			return err
		}
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.events.AppointmentCompleted(ap)
	uc.broadcast(ctx, ap.BarberID)
	return ap, nil
}

func (uc *UpdateStatus) broadcast(ctx context.Context, barberID uint) {
	if board, err := uc.engine.Recalculate(ctx, barberID); err == nil {
		uc.events.BoardChanged(barberID, board)
	}
}
