package models

import "time"

const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveDenied   = "denied"
)

// BarberLeave is a leave request for a date range. With
// AvailabilityStatus=unavailable the sessions in range are removed;
// with =available the override times replace the session window.
type BarberLeave struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	StartDate time.Time `gorm:"type:date" json:"start_date"`
	EndDate   time.Time `gorm:"type:date" json:"end_date"`

	Status             string `gorm:"size:20;default:'pending'" json:"status"`
	AvailabilityStatus string `gorm:"size:20;default:'unavailable'" json:"availability_status"`

	OverrideStart *string `gorm:"size:5" json:"override_start"`
	OverrideEnd   *string `gorm:"size:5" json:"override_end"`

	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Covers reports whether the leave range includes the given calendar date.
func (l *BarberLeave) Covers(date time.Time) bool {
	d := date.Format("2006-01-02")
	return d >= l.StartDate.Format("2006-01-02") && d <= l.EndDate.Format("2006-01-02")
}
