package schedule

import "github.com/trimsalon/salon-queue-api/internal/models"

// DefaultSlotMinutes is the fixed bookable granularity.
const DefaultSlotMinutes = 15

// BuildSlots walks the session window in fixed steps and emits one
// slot per step. A dangling partial step at the end is dropped (loop
// runs while cur+duration <= end). Sessions that are not
// appointment-category carry no slots, so the result is empty.
func BuildSlots(session *models.BarberSession, slotMinutes int) []models.Slot {
	if session.Category != models.CategoryAppointment {
		return nil
	}
	if slotMinutes <= 0 {
		slotMinutes = DefaultSlotMinutes
	}

	start, err := ParseHM(session.StartTime)
	if err != nil {
		return nil
	}
	end, err := ParseHM(session.EndTime)
	if err != nil {
		return nil
	}

	var slots []models.Slot
	for cur := start; cur+slotMinutes <= end; cur += slotMinutes {
		slots = append(slots, models.Slot{
			BarberSessionID: session.ID,
			BarberID:        session.BarberID,
			SlotDate:        session.SessionDate,
			StartTime:       FormatHM(cur),
			EndTime:         FormatHM(cur + slotMinutes),
			IsBooked:        false,
		})
	}
	return slots
}
