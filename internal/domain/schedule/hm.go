package schedule

import (
	"fmt"
	"time"

	"github.com/trimsalon/salon-queue-api/internal/httperr"
)

// Times of day travel as "15:04" strings (the storage format); math
// happens on minutes since midnight.

func ParseHM(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, httperr.Validation("invalid_time_format")
	}
	return t.Hour()*60 + t.Minute(), nil
}

func FormatHM(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// MinutesBetween returns end − start in minutes, zero-floored.
func MinutesBetween(startHM, endHM string) int {
	start, err1 := ParseHM(startHM)
	end, err2 := ParseHM(endHM)
	if err1 != nil || err2 != nil || end <= start {
		return 0
	}
	return end - start
}

// ISOWeekday maps a date to 1=Monday..7=Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}
