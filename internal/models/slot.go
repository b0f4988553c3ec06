package models

import "time"

// Slot is a fixed-duration bookable subdivision of a BarberSession.
// Only appointment-category sessions carry slots. Duration is immutable
// once created; only IsBooked toggles.
type Slot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberSessionID uint `gorm:"index" json:"barber_session_id"`
	BarberID        uint `gorm:"index" json:"barber_id"`

	SlotDate  time.Time `gorm:"type:date" json:"slot_date"`
	StartTime string    `gorm:"size:5" json:"start_time"`
	EndTime   string    `gorm:"size:5" json:"end_time"`

	IsBooked bool `gorm:"default:false" json:"is_booked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
