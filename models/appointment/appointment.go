package appointment

import (
	"time"
)

// Status of an appointment. Every appointment starts pending and moves to
// completed exactly once, when its scheduled slot has elapsed.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// IsValidStatus reports whether s is a recognized appointment status.
func IsValidStatus(s string) bool {
	return s == string(StatusPending) || s == string(StatusCompleted)
}

// Appointment is a booking of a donor at a blood bank. UserName and
// BloodBankName are snapshots taken at booking time so the record displays
// without joins even after the referenced rows change.
type Appointment struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	UserName      string `gorm:"type:varchar(255);not null" json:"user_name"`
	BloodBankID   uint   `gorm:"not null;index" json:"blood_bank_id"`
	BloodBankName string `gorm:"type:varchar(255);not null" json:"blood_bank_name"`

	// Date is YYYY-MM-DD and Time is HH:MM. Both are zero-padded so plain
	// string comparison orders them chronologically.
	Date string `gorm:"type:varchar(10);not null" json:"date"`
	Time string `gorm:"type:varchar(5);not null" json:"time"`

	Status Status `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
