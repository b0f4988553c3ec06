package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"index" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	SalonID uint  `gorm:"index" json:"salon_id"`
	Salon   Salon `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"salon"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	// SlotID is the first slot of the booked run; set only for
	// slot-based (appointment-category) bookings.
	SlotID *uint `json:"slot_id"`

	Status string `gorm:"size:20;index" json:"status"`

	NumberOfPeople int `gorm:"default:1" json:"number_of_people"`

	// Meaningful only while status is checked_in/in_salon; zeroed on
	// terminal transitions.
	QueuePosition     int `json:"queue_position"`
	EstimatedWaitTime int `json:"estimated_wait_time"`

	CheckInTime  *time.Time `json:"check_in_time"`
	InSalonTime  *time.Time `json:"in_salon_time"`
	CompleteTime *time.Time `json:"complete_time"`
	CancelTime   *time.Time `json:"cancel_time"`

	AppointmentDate *time.Time `gorm:"type:date" json:"appointment_date"`
	StartTime       string     `gorm:"size:5" json:"start_time"`
	EndTime         string     `gorm:"size:5" json:"end_time"`

	Services []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DefaultServiceMinutes is charged for queue math when an appointment
// carries no services.
const DefaultServiceMinutes = 20

// ServiceMinutes sums the selected services' durations, respecting
// duplicate selections. Falls back to DefaultServiceMinutes.
func (a *Appointment) ServiceMinutes() int {
	total := 0
	for _, as := range a.Services {
		total += as.Service.DurationMin
	}
	if total == 0 {
		return DefaultServiceMinutes
	}
	return total
}

// TotalServiceMinutes scales ServiceMinutes by the party size.
func (a *Appointment) TotalServiceMinutes() int {
	people := a.NumberOfPeople
	if people < 1 {
		people = 1
	}
	return a.ServiceMinutes() * people
}
