package storage

import (
	"errors"
	"fmt"
	"strings"

	"redlink/models/admin"
	"redlink/models/appointment"
	"redlink/models/bloodbank"
	"redlink/models/user"

	"gorm.io/gorm"
)

// GormStore implements Store over PostgreSQL.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Emails are stored lowercase so the lookup queries can compare exactly
// and the unique constraint catches case variants.
func (g *GormStore) CreateUser(u *user.User) error {
	u.Email = strings.ToLower(u.Email)
	if err := g.db.Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (g *GormStore) GetUserByID(id uint) (*user.User, error) {
	var u user.User
	if err := g.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (g *GormStore) GetUserByEmail(email string) (*user.User, error) {
	var u user.User
	if err := g.db.Where("email = ?", strings.ToLower(email)).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &u, nil
}

func (g *GormStore) FindUserByEmailOrPhone(email, phone string) (*user.User, error) {
	var u user.User
	err := g.db.Where("email = ? OR phone = ?", strings.ToLower(email), phone).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}

func (g *GormStore) UpdateUserProfile(id uint, fields map[string]interface{}) (*user.User, error) {
	tx := g.db.Model(&user.User{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to update user: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return g.GetUserByID(id)
}

func (g *GormStore) ListUsers() ([]user.User, error) {
	var users []user.User
	if err := g.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (g *GormStore) DeleteUser(id uint) error {
	tx := g.db.Delete(&user.User{}, id)
	if tx.Error != nil {
		return fmt.Errorf("failed to delete user: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleAvailability negates the flag in the database itself so concurrent
// toggles from multiple sessions cannot lose updates.
func (g *GormStore) ToggleAvailability(id uint) (bool, error) {
	var availability bool
	tx := g.db.Raw(
		"UPDATE users SET availability = NOT availability, updated_at = NOW() WHERE id = ? RETURNING availability",
		id,
	).Scan(&availability)
	if tx.Error != nil {
		return false, fmt.Errorf("failed to toggle availability: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return false, ErrNotFound
	}
	return availability, nil
}

func (g *GormStore) SearchDonors(group user.BloodGroup, citySubstring string) ([]user.User, error) {
	query := g.db.Where("blood_group = ? AND availability = ?", group, true)
	if citySubstring != "" {
		query = query.Where("city ILIKE ?", "%"+citySubstring+"%")
	}

	var donors []user.User
	if err := query.Find(&donors).Error; err != nil {
		return nil, fmt.Errorf("failed to search donors: %w", err)
	}
	return donors, nil
}

func (g *GormStore) CountAvailableByGroup(group user.BloodGroup) (int64, error) {
	var count int64
	err := g.db.Model(&user.User{}).
		Where("blood_group = ? AND availability = ?", group, true).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count donors: %w", err)
	}
	return count, nil
}

func (g *GormStore) CreateBloodBank(b *bloodbank.BloodBank) error {
	if err := g.db.Create(b).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create blood bank: %w", err)
	}
	return nil
}

func (g *GormStore) GetBloodBankByID(id uint) (*bloodbank.BloodBank, error) {
	var b bloodbank.BloodBank
	if err := g.db.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blood bank: %w", err)
	}
	return &b, nil
}

func (g *GormStore) GetBloodBankByName(name string) (*bloodbank.BloodBank, error) {
	var b bloodbank.BloodBank
	if err := g.db.Where("name = ?", name).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get blood bank by name: %w", err)
	}
	return &b, nil
}

func (g *GormStore) ListBloodBanks() ([]bloodbank.BloodBank, error) {
	var banks []bloodbank.BloodBank
	if err := g.db.Order("name ASC").Find(&banks).Error; err != nil {
		return nil, fmt.Errorf("failed to list blood banks: %w", err)
	}
	return banks, nil
}

func (g *GormStore) DeleteBloodBank(id uint) error {
	tx := g.db.Delete(&bloodbank.BloodBank{}, id)
	if tx.Error != nil {
		return fmt.Errorf("failed to delete blood bank: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) CreateAppointment(a *appointment.Appointment) error {
	if err := g.db.Create(a).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (g *GormStore) ListAppointmentsByStatus(status appointment.Status) ([]appointment.Appointment, error) {
	var appointments []appointment.Appointment
	err := g.db.Where("status = ?", status).
		Order("created_at DESC").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// SweepElapsed relies on the fixed-width YYYY-MM-DD and HH:MM formats:
// lexicographic order is chronological order, so the comparison stays in SQL.
func (g *GormStore) SweepElapsed(date, timeOfDay string) (int64, error) {
	tx := g.db.Model(&appointment.Appointment{}).
		Where("status = ? AND (date < ? OR (date = ? AND time < ?))",
			appointment.StatusPending, date, date, timeOfDay).
		Update("status", appointment.StatusCompleted)
	if tx.Error != nil {
		return 0, fmt.Errorf("failed to sweep appointments: %w", tx.Error)
	}
	return tx.RowsAffected, nil
}

func (g *GormStore) CreateAdmin(a *admin.Admin) error {
	a.Email = strings.ToLower(a.Email)
	if err := g.db.Create(a).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

func (g *GormStore) GetAdminByEmail(email string) (*admin.Admin, error) {
	var a admin.Admin
	if err := g.db.Where("email = ?", strings.ToLower(email)).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}
	return &a, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && (errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key"))
}
