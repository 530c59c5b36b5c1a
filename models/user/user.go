package user

import (
	"time"
)

// BloodGroup is one of the eight ABO/Rh groups.
type BloodGroup string

const (
	BloodGroupAPositive  BloodGroup = "A+"
	BloodGroupANegative  BloodGroup = "A-"
	BloodGroupBPositive  BloodGroup = "B+"
	BloodGroupBNegative  BloodGroup = "B-"
	BloodGroupOPositive  BloodGroup = "O+"
	BloodGroupONegative  BloodGroup = "O-"
	BloodGroupABPositive BloodGroup = "AB+"
	BloodGroupABNegative BloodGroup = "AB-"
)

// BloodGroups lists every valid group in display order.
var BloodGroups = []BloodGroup{
	BloodGroupAPositive, BloodGroupANegative,
	BloodGroupBPositive, BloodGroupBNegative,
	BloodGroupOPositive, BloodGroupONegative,
	BloodGroupABPositive, BloodGroupABNegative,
}

// IsValidBloodGroup reports whether s is one of the eight valid groups.
func IsValidBloodGroup(s string) bool {
	for _, g := range BloodGroups {
		if string(g) == s {
			return true
		}
	}
	return false
}

// Accepted gender values.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// User represents a registered donor.
type User struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	FullName    string     `gorm:"type:varchar(255);not null" json:"full_name"`
	Gender      string     `gorm:"type:varchar(10);not null" json:"gender"`
	DateOfBirth time.Time  `gorm:"not null" json:"date_of_birth"`
	BloodGroup  BloodGroup `gorm:"type:varchar(3);not null;index" json:"blood_group"`

	// Availability is flipped atomically via storage.ToggleAvailability,
	// never by read-then-write.
	Availability bool `gorm:"default:true;index" json:"availability"`

	Phone   string `gorm:"type:varchar(20);not null;unique" json:"phone"`
	Email   string `gorm:"type:varchar(255);not null;unique" json:"email"`
	State   string `gorm:"type:varchar(100);not null" json:"state"`
	City    string `gorm:"type:varchar(100);not null;index" json:"city"`
	Pincode string `gorm:"type:varchar(10);not null" json:"pincode"`

	// Password holds the bcrypt hash and never leaves the API.
	Password string `gorm:"type:varchar(255);not null" json:"-"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
