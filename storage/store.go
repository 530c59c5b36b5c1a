package storage

import (
	"errors"

	"redlink/models/admin"
	"redlink/models/appointment"
	"redlink/models/bloodbank"
	"redlink/models/user"
)

var (
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint would be violated.
	ErrDuplicate = errors.New("record already exists")
)

// Store defines the persistence operations for users, blood banks,
// appointments and admins. GormStore is the production implementation;
// MemoryStore backs the tests.
type Store interface {
	// User operations
	CreateUser(u *user.User) error
	GetUserByID(id uint) (*user.User, error)
	GetUserByEmail(email string) (*user.User, error)
	FindUserByEmailOrPhone(email, phone string) (*user.User, error)
	UpdateUserProfile(id uint, fields map[string]interface{}) (*user.User, error)
	ListUsers() ([]user.User, error)
	DeleteUser(id uint) error

	// ToggleAvailability flips the donor's availability flag in a single
	// atomic update and returns the new value.
	ToggleAvailability(id uint) (bool, error)

	// SearchDonors returns available donors with the exact blood group,
	// optionally narrowed to cities containing citySubstring
	// (case-insensitive).
	SearchDonors(group user.BloodGroup, citySubstring string) ([]user.User, error)
	CountAvailableByGroup(group user.BloodGroup) (int64, error)

	// Blood bank operations
	CreateBloodBank(b *bloodbank.BloodBank) error
	GetBloodBankByID(id uint) (*bloodbank.BloodBank, error)
	GetBloodBankByName(name string) (*bloodbank.BloodBank, error)
	ListBloodBanks() ([]bloodbank.BloodBank, error)
	DeleteBloodBank(id uint) error

	// Appointment operations
	CreateAppointment(a *appointment.Appointment) error
	ListAppointmentsByStatus(status appointment.Status) ([]appointment.Appointment, error)

	// SweepElapsed marks every pending appointment scheduled strictly
	// before the given date and time-of-day as completed, in one bulk
	// update, and returns the number of rows transitioned.
	SweepElapsed(date, timeOfDay string) (int64, error)

	// Admin operations
	CreateAdmin(a *admin.Admin) error
	GetAdminByEmail(email string) (*admin.Admin, error)
}
