package appointment

import (
	"context"

	domain "github.com/trimsalon/salon-queue-api/internal/domain/appointment"
	sched "github.com/trimsalon/salon-queue-api/internal/domain/schedule"
	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

// TransferAppointment moves a scheduled booking to another barber of
// the same salon and category, keeping the time window. Availability
// checks happen before any mutation; the slot swap and the barber
// repoint commit in one transaction.
type TransferAppointment struct {
	repo        domain.Repository
	events      Events
	slotMinutes int
}

func NewTransferAppointment(
	repo domain.Repository,
	events Events,
	slotMinutes int,
) *TransferAppointment {
	if slotMinutes <= 0 {
		slotMinutes = sched.DefaultSlotMinutes
	}
	return &TransferAppointment{
		repo:        repo,
		events:      events,
		slotMinutes: slotMinutes,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *TransferAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	targetBarberID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if domain.Status(ap.Status) != domain.StatusAppointment {
		return nil, httperr.Conflict("appointment_not_transferable")
	}
	if ap.AppointmentDate == nil || ap.SlotID == nil {
		return nil, httperr.Conflict("appointment_missing_slot")
	}
	if targetBarberID == ap.BarberID {
		return nil, httperr.Validation("transfer_to_same_barber")
	}

	target, err := uc.repo.GetBarber(ctx, targetBarberID)
	if err != nil {
		return nil, err
	}
	if target.SalonID != ap.SalonID {
		return nil, httperr.Validation("target_in_other_salon")
	}
	if target.Category != ap.Barber.Category {
		return nil, httperr.Validation("target_category_mismatch")
	}
	if target.AvailabilityStatus != models.BarberAvailable {
		return nil, httperr.Conflict("target_unavailable")
	}

	date := *ap.AppointmentDate
	if target.NonWorkingSet()[sched.ISOWeekday(date)] {
		return nil, httperr.Conflict("target_non_working_day")
	}
	onLeave, err := uc.repo.HasApprovedLeave(ctx, targetBarberID, date)
	if err != nil {
		return nil, err
	}
	if onLeave {
		return nil, httperr.Conflict("target_on_leave")
	}

	targetSession, err := uc.repo.GetSessionForDate(ctx, targetBarberID, date)
	if err != nil {
		if httperr.KindOf(err) == httperr.KindNotFound {
			return nil, httperr.ErrNotFound("target_session_not_found")
		}
		return nil, err
	}
	if targetSession.StartTime > ap.StartTime || targetSession.EndTime < ap.EndTime {
		return nil, httperr.Conflict("outside_target_session")
	}

	required := sched.MinutesBetween(ap.StartTime, ap.EndTime)

	err = uc.repo.WithTx(ctx, func(tx domain.Repository) error {
		free, err := tx.ListFreeSlotsFrom(ctx, targetSession.ID, ap.StartTime)
		if err != nil {
			return err
		}
		targetRun := findConsecutiveRun(free, ap.StartTime, required, uc.slotMinutes)
		if targetRun == nil {
			return httperr.Capacity("target_slots_unavailable")
		}

		sourceSlot, err := tx.GetSlot(ctx, *ap.SlotID)
		if err != nil {
			return err
		}
		sourceRun, err := tx.ListSlotsInWindow(ctx, sourceSlot.BarberSessionID, sourceSlot.StartTime, ap.EndTime)
		if err != nil {
			return err
		}

		if err := tx.SetSlotsBooked(ctx, slotIDs(sourceRun), false); err != nil {
			return err
		}
		if err := tx.SetSlotsBooked(ctx, slotIDs(targetRun), true); err != nil {
			return err
		}

		ap.BarberID = targetBarberID
		first := targetRun[0]
		ap.SlotID = &first.ID
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	full, err := uc.repo.GetAppointment(ctx, ap.ID)
	if err != nil {
		return nil, err
	}

	uc.events.AppointmentTransferred(full)
	return full, nil
}
