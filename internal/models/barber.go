package models

import (
	"strconv"
	"strings"
	"time"
)

// Barber categories. Appointment barbers sell fixed slots, walk-in
// barbers run a live queue.
const (
	CategoryAppointment = 1
	CategoryWalkIn      = 2
)

const (
	BarberAvailable   = "available"
	BarberUnavailable = "unavailable"
)

type Barber struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	SalonID uint  `json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"salon"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	Category           int    `gorm:"default:2" json:"category"`
	AvailabilityStatus string `gorm:"size:20;default:'available'" json:"availability_status"`
	Position           int    `json:"position"`

	// ISO weekday numbers (1=Monday..7=Sunday) stored as csv, e.g. "6,7".
	NonWorkingDays string `gorm:"size:20" json:"non_working_days"`

	ScheduleDays []BarberScheduleDay `gorm:"constraint:OnDelete:CASCADE;" json:"schedule_days"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NonWorkingSet parses NonWorkingDays into a weekday lookup.
func (b *Barber) NonWorkingSet() map[int]bool {
	set := make(map[int]bool)
	for _, part := range strings.Split(b.NonWorkingDays, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if d, err := strconv.Atoi(part); err == nil && d >= 1 && d <= 7 {
			set[d] = true
		}
	}
	return set
}

// FormatNonWorkingDays renders a weekday set back to csv form, ascending.
func FormatNonWorkingDays(days map[int]bool) string {
	var parts []string
	for d := 1; d <= 7; d++ {
		if days[d] {
			parts = append(parts, strconv.Itoa(d))
		}
	}
	return strings.Join(parts, ",")
}

// BarberScheduleDay is one weekday of a barber's weekly schedule.
// Start/End are nil on days the barber does not work.
type BarberScheduleDay struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index" json:"barber_id"`

	Weekday   int     `json:"weekday"` // 1=Monday..7=Sunday
	StartTime *string `gorm:"size:5" json:"start_time"`
	EndTime   *string `gorm:"size:5" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
