package barber

import (
	"context"

	domain "github.com/trimsalon/salon-queue-api/internal/domain/schedule"
	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/models"
	"github.com/trimsalon/salon-queue-api/internal/usecase/schedule"
)

// ======================================================
// INPUTS
// ======================================================

type ScheduleDayInput struct {
	Weekday   int
	StartTime *string
	EndTime   *string
}

// ======================================================
// WEEKLY SCHEDULE
// ======================================================

// UpdateWeeklySchedule replaces the barber's per-weekday working
// windows. The structure is validated once here, at the boundary.
type UpdateWeeklySchedule struct {
	repo Repository
}

func NewUpdateWeeklySchedule(repo Repository) *UpdateWeeklySchedule {
	return &UpdateWeeklySchedule{repo: repo}
}

func (uc *UpdateWeeklySchedule) Execute(
	ctx context.Context,
	barberID uint,
	days []ScheduleDayInput,
) (*models.Barber, error) {

	barber, err := uc.repo.GetBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int]bool)
	rows := make([]models.BarberScheduleDay, 0, len(days))
	for _, d := range days {
		if d.Weekday < 1 || d.Weekday > 7 || seen[d.Weekday] {
			return nil, httperr.Validation("invalid_weekday")
		}
		seen[d.Weekday] = true
		rows = append(rows, models.BarberScheduleDay{
			BarberID:  barberID,
			Weekday:   d.Weekday,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
		})
	}

	weekly := domain.FromScheduleDays(rows)
	if err := weekly.Validate(barber.NonWorkingSet()); err != nil {
		return nil, err
	}

	if err := uc.repo.ReplaceScheduleDays(ctx, barberID, rows); err != nil {
		return nil, err
	}

	barber.ScheduleDays = rows
	return barber, nil
}

// ======================================================
// NON-WORKING DAYS
// ======================================================

// UpdateNonWorkingDays changes the barber's blocked weekdays and
// reconciles the active horizon through the generator's diff: only
// dates whose weekday flipped are created or destroyed.
type UpdateNonWorkingDays struct {
	repo      Repository
	generator *schedule.Generator
}

func NewUpdateNonWorkingDays(
	repo Repository,
	generator *schedule.Generator,
) *UpdateNonWorkingDays {
	return &UpdateNonWorkingDays{
		repo:      repo,
		generator: generator,
	}
}

func (uc *UpdateNonWorkingDays) Execute(
	ctx context.Context,
	barberID uint,
	days []int,
) (*models.Barber, error) {

	newSet := make(map[int]bool)
	for _, d := range days {
		if d < 1 || d > 7 {
			return nil, httperr.Validation("invalid_weekday")
		}
		newSet[d] = true
	}

	barber, err := uc.repo.GetBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}
	oldSet := barber.NonWorkingSet()

	weekly := domain.FromScheduleDays(barber.ScheduleDays)
	if err := weekly.Validate(newSet); err != nil {
		return nil, err
	}

	barber.NonWorkingDays = models.FormatNonWorkingDays(newSet)
	if err := uc.repo.SaveBarber(ctx, barber); err != nil {
		return nil, err
	}

	if err := uc.generator.ApplyNonWorkingDiff(ctx, barber, oldSet, newSet); err != nil {
		return nil, err
	}
	return barber, nil
}

// ======================================================
// CATEGORY
// ======================================================

// UpdateCategory switches the barber between the walk-in and
// appointment models. Appointment-ward: backfill slot grids into
// existing future sessions. Walk-in-ward: cancel future scheduled
// bookings and drop future slots.
type UpdateCategory struct {
	repo      Repository
	generator *schedule.Generator
}

func NewUpdateCategory(
	repo Repository,
	generator *schedule.Generator,
) *UpdateCategory {
	return &UpdateCategory{
		repo:      repo,
		generator: generator,
	}
}

func (uc *UpdateCategory) Execute(
	ctx context.Context,
	barberID uint,
	category int,
) (*models.Barber, error) {

	if category != models.CategoryAppointment && category != models.CategoryWalkIn {
		return nil, httperr.Validation("invalid_category")
	}

	barber, err := uc.repo.GetBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}
	if barber.Category == category {
		return barber, nil
	}

	barber.Category = category
	if err := uc.repo.SaveBarber(ctx, barber); err != nil {
		return nil, err
	}

	if category == models.CategoryAppointment {
		err = uc.generator.BackfillSlots(ctx, barber)
	} else {
		err = uc.generator.SwitchToWalkIn(ctx, barber)
	}
	if err != nil {
		return nil, err
	}
	return barber, nil
}
