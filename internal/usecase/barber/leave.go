package barber

import (
	"context"
	"time"

	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/models"
	"github.com/trimsalon/salon-queue-api/internal/usecase/schedule"
)

// ======================================================
// REQUEST LEAVE
// ======================================================

type RequestLeaveInput struct {
	BarberID  uint
	StartDate time.Time
	EndDate   time.Time

	// available + override window means shortened hours rather than a
	// day off.
	AvailabilityStatus string
	OverrideStart      *string
	OverrideEnd        *string
	Reason             string
}

type RequestLeave struct {
	repo Repository
}

func NewRequestLeave(repo Repository) *RequestLeave {
	return &RequestLeave{repo: repo}
}

func (uc *RequestLeave) Execute(
	ctx context.Context,
	in RequestLeaveInput,
) (*models.BarberLeave, error) {

	if in.EndDate.Before(in.StartDate) {
		return nil, httperr.Validation("leave_end_before_start")
	}

	status := in.AvailabilityStatus
	if status == "" {
		status = models.BarberUnavailable
	}
	if status != models.BarberAvailable && status != models.BarberUnavailable {
		return nil, httperr.Validation("invalid_availability_status")
	}
	if status == models.BarberAvailable && (in.OverrideStart == nil || in.OverrideEnd == nil) {
		return nil, httperr.Validation("leave_override_required")
	}

	if _, err := uc.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, err
	}

	leave := &models.BarberLeave{
		BarberID:           in.BarberID,
		StartDate:          in.StartDate,
		EndDate:            in.EndDate,
		Status:             models.LeavePending,
		AvailabilityStatus: status,
		OverrideStart:      in.OverrideStart,
		OverrideEnd:        in.OverrideEnd,
		Reason:             in.Reason,
	}
	if err := uc.repo.CreateLeave(ctx, leave); err != nil {
		return nil, err
	}
	return leave, nil
}

// ======================================================
// APPROVE / DENY
// ======================================================

// DecideLeave settles a pending request. Approval mutates the
// affected sessions through the generator.
type DecideLeave struct {
	repo      Repository
	generator *schedule.Generator
}

func NewDecideLeave(repo Repository, generator *schedule.Generator) *DecideLeave {
	return &DecideLeave{
		repo:      repo,
		generator: generator,
	}
}

func (uc *DecideLeave) Execute(
	ctx context.Context,
	leaveID uint,
	approve bool,
) (*models.BarberLeave, error) {

	leave, err := uc.repo.GetLeave(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	if leave.Status != models.LeavePending {
		return nil, httperr.Conflict("leave_already_decided")
	}

	if !approve {
		leave.Status = models.LeaveDenied
		if err := uc.repo.UpdateLeave(ctx, leave); err != nil {
			return nil, err
		}
		return leave, nil
	}

	leave.Status = models.LeaveApproved
	if err := uc.repo.UpdateLeave(ctx, leave); err != nil {
		return nil, err
	}

	if err := uc.generator.ApplyApprovedLeave(ctx, leave); err != nil {
		return nil, err
	}
	return leave, nil
}
