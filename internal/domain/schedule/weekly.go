package schedule

import (
	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/models"
)

// DayWindow is one weekday's working window. Both fields nil means the
// barber does not work that weekday.
type DayWindow struct {
	Start *string
	End   *string
}

func (w DayWindow) IsWorking() bool {
	return w.Start != nil && w.End != nil && *w.Start != "" && *w.End != ""
}

// WeeklySchedule is a validated, fixed record of the seven weekdays.
// Index with ISO weekday numbers 1..7; index 0 is unused.
type WeeklySchedule [8]DayWindow

// FromScheduleDays builds the weekly schedule from the persisted rows.
func FromScheduleDays(days []models.BarberScheduleDay) WeeklySchedule {
	var ws WeeklySchedule
	for _, d := range days {
		if d.Weekday >= 1 && d.Weekday <= 7 {
			ws[d.Weekday] = DayWindow{Start: d.StartTime, End: d.EndTime}
		}
	}
	return ws
}

// Window returns the weekday's working window.
func (ws WeeklySchedule) Window(weekday int) DayWindow {
	if weekday < 1 || weekday > 7 {
		return DayWindow{}
	}
	return ws[weekday]
}

// Validate enforces the barber invariant: at least two weekdays with
// well-formed working windows that do not fall on non-working days.
func (ws WeeklySchedule) Validate(nonWorking map[int]bool) error {
	working := 0
	for day := 1; day <= 7; day++ {
		w := ws[day]
		if !w.IsWorking() {
			continue
		}

		start, err := ParseHM(*w.Start)
		if err != nil {
			return err
		}
		end, err := ParseHM(*w.End)
		if err != nil {
			return err
		}
		if end <= start {
			return httperr.Validation("schedule_end_before_start")
		}

		if !nonWorking[day] {
			working++
		}
	}

	if working < 2 {
		return httperr.Validation("schedule_needs_two_working_days")
	}
	return nil
}
