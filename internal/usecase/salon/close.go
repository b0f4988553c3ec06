package salon

import (
	"context"

	"go.uber.org/zap"

	domain "github.com/trimsalon/salon-queue-api/internal/domain/appointment"
	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/models"
	"github.com/trimsalon/salon-queue-api/internal/usecase/appointment"
)

// CloseSalon marks the salon closed and force-cancels its checked-in
// walk-ins (members already in the chair finish their service).
// Per-appointment failures are logged so one bad row does not strand
// the rest of the queue.
type CloseSalon struct {
	repo   domain.Repository
	cancel *appointment.CancelAppointment
	log    *zap.Logger
}

func NewCloseSalon(
	repo domain.Repository,
	cancel *appointment.CancelAppointment,
	log *zap.Logger,
) *CloseSalon {
	return &CloseSalon{
		repo:   repo,
		cancel: cancel,
		log:    log,
	}
}

func (uc *CloseSalon) Execute(ctx context.Context, salonID uint) (*models.Salon, error) {
	salon, err := uc.repo.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}
	if salon.Status == models.SalonStatusClosed {
		return nil, httperr.Conflict("salon_already_closed")
	}

	salon.Status = models.SalonStatusClosed
	if err := uc.repo.UpdateSalon(ctx, salon); err != nil {
		return nil, err
	}

	checkedIn, err := uc.repo.ListCheckedInBySalon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	for _, ap := range checkedIn {
		if _, err := uc.cancel.Execute(ctx, ap.ID, "The salon has closed for today. Your check-in was canceled."); err != nil {
			uc.log.Error("close salon: cancel failed",
				zap.Uint("appointment_id", ap.ID),
				zap.Error(err),
			)
		}
	}

	return salon, nil
}

// ReopenSalon flips the salon back to open.
type ReopenSalon struct {
	repo domain.Repository
}

func NewReopenSalon(repo domain.Repository) *ReopenSalon {
	return &ReopenSalon{repo: repo}
}

func (uc *ReopenSalon) Execute(ctx context.Context, salonID uint) (*models.Salon, error) {
	salon, err := uc.repo.GetSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	salon.Status = models.SalonStatusOpen
	if err := uc.repo.UpdateSalon(ctx, salon); err != nil {
		return nil, err
	}
	return salon, nil
}
