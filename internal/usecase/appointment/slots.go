package appointment

import (
	domain "github.com/trimsalon/salon-queue-api/internal/domain/schedule"
	"github.com/trimsalon/salon-queue-api/internal/models"
)

// findConsecutiveRun picks the contiguous run of free slots starting
// exactly at fromHM that covers requiredMinutes. The candidates must
// be unbooked, ordered by start_time and already filtered to
// start_time >= fromHM. The walk stops at the first gap, so a run can
// never span a hole in the grid. Returns nil when supply is short;
// an exact fit (run minutes == requiredMinutes) succeeds.
func findConsecutiveRun(
	candidates []models.Slot,
	fromHM string,
	requiredMinutes int,
	slotMinutes int,
) []models.Slot {

	if requiredMinutes <= 0 || slotMinutes <= 0 {
		return nil
	}

	expected, err := domain.ParseHM(fromHM)
	if err != nil {
		return nil
	}

	var run []models.Slot
	for _, slot := range candidates {
		start, err := domain.ParseHM(slot.StartTime)
		if err != nil || start != expected {
			break
		}
		run = append(run, slot)
		expected += slotMinutes
		if len(run)*slotMinutes >= requiredMinutes {
			return run
		}
	}
	return nil
}

func slotIDs(slots []models.Slot) []uint {
	ids := make([]uint, len(slots))
	for i, s := range slots {
		ids[i] = s.ID
	}
	return ids
}
