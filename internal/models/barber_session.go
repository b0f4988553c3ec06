package models

import "time"

// BarberSession is one barber's working window for one calendar date.
// Exactly one session may exist per barber per date.
type BarberSession struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	BarberID uint   `gorm:"uniqueIndex:idx_barber_session_date" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	SessionDate time.Time `gorm:"uniqueIndex:idx_barber_session_date;type:date" json:"session_date"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	// TotalTime is the session capacity in minutes; RemainingTime is the
	// walk-in capacity still unconsumed today.
	TotalTime     int `json:"total_time"`
	RemainingTime int `json:"remaining_time"`

	Category int `json:"category"`
	Position int `json:"position"`

	Slots []Slot `gorm:"constraint:OnDelete:CASCADE;" json:"slots,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
