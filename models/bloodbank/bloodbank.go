package bloodbank

import (
	"time"
)

// Location is the bank's postal address, stored as embedded columns.
type Location struct {
	Address string `gorm:"column:address;type:varchar(255);not null" json:"address"`
	City    string `gorm:"column:city;type:varchar(100);not null" json:"city"`
	State   string `gorm:"column:state;type:varchar(100);not null" json:"state"`
	Pincode string `gorm:"column:pincode;type:varchar(10);not null" json:"pincode"`
}

// Contact holds the bank's reachable phone and notification email.
type Contact struct {
	Phone string `gorm:"column:phone;type:varchar(20);not null" json:"phone"`
	Email string `gorm:"column:email;type:varchar(255)" json:"email"`
}

// OperatingHours are local times of day in HH:MM.
type OperatingHours struct {
	Open  string `gorm:"column:open_time;type:varchar(5);not null" json:"open"`
	Close string `gorm:"column:close_time;type:varchar(5);not null" json:"close"`
}

// BloodBank represents a facility that accepts appointment bookings.
// Appointments live in their own table; there is no embedded list here.
type BloodBank struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string         `gorm:"type:varchar(255);not null;unique" json:"name"`
	Location       Location       `gorm:"embedded" json:"location"`
	Contact        Contact        `gorm:"embedded" json:"contact"`
	OperatingHours OperatingHours `gorm:"embedded" json:"operating_hours"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
