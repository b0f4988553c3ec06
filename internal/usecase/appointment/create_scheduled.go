package appointment

import (
	"context"

	domain "github.com/trimsalon/salon-queue-api/internal/domain/appointment"
	sched "github.com/trimsalon/salon-queue-api/internal/domain/schedule"
	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateScheduledInput struct {
	UserID   uint
	SalonID  uint
	BarberID uint

	SlotID     uint
	ServiceIDs []uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateScheduled struct {
	repo        domain.Repository
	events      Events
	slotMinutes int
}

func NewCreateScheduled(
	repo domain.Repository,
	events Events,
	slotMinutes int,
) *CreateScheduled {
	if slotMinutes <= 0 {
		slotMinutes = sched.DefaultSlotMinutes
	}
	return &CreateScheduled{
		repo:        repo,
		events:      events,
		slotMinutes: slotMinutes,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateScheduled) Execute(
	ctx context.Context,
	in CreateScheduledInput,
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
	if barber.Category != models.CategoryAppointment {
		return nil, httperr.Validation("barber_not_appointment")
	}
	if barber.AvailabilityStatus != models.BarberAvailable {
		return nil, httperr.Conflict("barber_unavailable")
	}

	serviceRows, serviceTotal, err := resolveServices(ctx, uc.repo, in.SalonID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	required := requiredMinutes(serviceTotal, 1)

	ap := &models.Appointment{
		UserID:         in.UserID,
		SalonID:        in.SalonID,
		BarberID:       in.BarberID,
		Status:         string(domain.StatusAppointment),
		NumberOfPeople: 1,
		Services:       serviceRows,
	}

	// Slot verification and reservation commit together with the
	// appointment insert; losing the race for the run rolls the whole
	// operation back.
	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		slot, err := tx.GetSlot(ctx, in.SlotID)
		if err != nil {
			return err
		}
		if slot.BarberID != in.BarberID {
			return httperr.Validation("slot_not_for_barber")
		}
		if slot.IsBooked {
			return httperr.Conflict("slot_already_booked")
		}

		free, err := tx.ListFreeSlotsFrom(ctx, slot.BarberSessionID, slot.StartTime)
		if err != nil {
			return err
		}

		run := findConsecutiveRun(free, slot.StartTime, required, uc.slotMinutes)
		if run == nil {
			return httperr.Capacity("insufficient_consecutive_slots")
		}

		if err := tx.SetSlotsBooked(ctx, slotIDs(run), true); err != nil {
			return err
		}

		date := slot.SlotDate
		ap.SlotID = &slot.ID
		ap.AppointmentDate = &date
		ap.StartTime = slot.StartTime
		ap.EndTime = run[len(run)-1].EndTime

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
	return full, nil
}
