package models

import "time"

// NotificationHistory records every outbound push/sms/email attempt.
type NotificationHistory struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID uint   `gorm:"index" json:"user_id"`

	Channel string `gorm:"size:10" json:"channel"` // push | sms | email
	Title   string `gorm:"size:100" json:"title"`
	Body    string `gorm:"size:500" json:"body"`
	Status  string `gorm:"size:10" json:"status"` // sent | failed

	CreatedAt time.Time `json:"created_at"`
}
