package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trimsalon/salon-queue-api/internal/httperr"
	"github.com/trimsalon/salon-queue-api/internal/models"
)

func strPtr(s string) *string { return &s }

func scheduleDays(pairs map[int][2]string) []models.BarberScheduleDay {
	var days []models.BarberScheduleDay
	for wd, window := range pairs {
		days = append(days, models.BarberScheduleDay{
			Weekday:   wd,
			StartTime: strPtr(window[0]),
			EndTime:   strPtr(window[1]),
		})
	}
	return days
}

func TestWeeklySchedule_Validate(t *testing.T) {
	tests := []struct {
		name       string
		days       []models.BarberScheduleDay
		nonWorking map[int]bool
		wantCode   string
	}{
		{
			name: "two working days pass",
			days: scheduleDays(map[int][2]string{
				1: {"09:00", "18:00"},
				2: {"09:00", "18:00"},
			}),
		},
		{
			name: "one working day fails",
			days: scheduleDays(map[int][2]string{
				1: {"09:00", "18:00"},
			}),
			wantCode: "schedule_needs_two_working_days",
		},
		{
			name: "non-working days do not count",
			days: scheduleDays(map[int][2]string{
				1: {"09:00", "18:00"},
				2: {"09:00", "18:00"},
			}),
			nonWorking: map[int]bool{2: true},
			wantCode:   "schedule_needs_two_working_days",
		},
		{
			name: "end before start fails",
			days: scheduleDays(map[int][2]string{
				1: {"18:00", "09:00"},
				2: {"09:00", "18:00"},
			}),
			wantCode: "schedule_end_before_start",
		},
		{
			name: "malformed time fails",
			days: scheduleDays(map[int][2]string{
				1: {"nine", "18:00"},
				2: {"09:00", "18:00"},
			}),
			wantCode: "invalid_time_format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := FromScheduleDays(tt.days)
			err := ws.Validate(tt.nonWorking)

			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tt.wantCode))
		})
	}
}

func TestWeeklySchedule_Window(t *testing.T) {
	ws := FromScheduleDays(scheduleDays(map[int][2]string{
		3: {"10:00", "16:00"},
	}))

	assert.True(t, ws.Window(3).IsWorking())
	assert.False(t, ws.Window(4).IsWorking())
	assert.False(t, ws.Window(0).IsWorking(), "out-of-range weekday is a closed window")
	assert.False(t, ws.Window(8).IsWorking())
}
