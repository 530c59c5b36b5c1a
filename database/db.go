package database

import (
	"fmt"
	"os"
	"strings"

	"redlink/logger"
	"redlink/models/admin"
	"redlink/models/appointment"
	"redlink/models/bloodbank"
	"redlink/models/log"
	"redlink/models/user"
	"redlink/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB connects to PostgreSQL, migrates the schema and creates indexes.
func InitDB() (*gorm.DB, error) {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	dbUser := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")
	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, dbUser, password, database, sslmode)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := autoMigrate(); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createIndexes(); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	if err := seedAdmin(); err != nil {
		logger.Error("Failed to seed admin account", err)
		return nil, err
	}

	return DB, nil
}

// autoMigrate runs auto migration for all models in dependency order.
func autoMigrate() error {
	// Stage 1: independent entities
	stage1Models := []interface{}{
		&user.User{},
		&bloodbank.BloodBank{},
		&admin.Admin{},
	}

	for _, model := range stage1Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: entities referencing stage 1
	stage2Models := []interface{}{
		&appointment.Appointment{},
	}

	for _, model := range stage2Models {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Logging
	if err := DB.AutoMigrate(&log.Log{}); err != nil {
		return fmt.Errorf("failed to migrate %T: %w", &log.Log{}, err)
	}

	return nil
}

// createIndexes creates additional indexes for better performance. The
// composite donor-search index covers the hot public query.
func createIndexes() error {
	statements := []string{
		"CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)",
		"CREATE INDEX IF NOT EXISTS idx_users_phone ON users(phone)",
		"CREATE INDEX IF NOT EXISTS idx_users_donor_search ON users(blood_group, availability, city)",
		"CREATE INDEX IF NOT EXISTS idx_blood_banks_name ON blood_banks(name)",
		"CREATE INDEX IF NOT EXISTS idx_appointments_status ON appointments(status)",
		"CREATE INDEX IF NOT EXISTS idx_appointments_sweep ON appointments(status, date, time)",
		"CREATE INDEX IF NOT EXISTS idx_appointments_created_at ON appointments(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)",
		"CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)",
	}

	for _, stmt := range statements {
		if err := DB.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// seedAdmin creates the console account from ADMIN_EMAIL/ADMIN_PASSWORD on
// first boot. Existing accounts are left untouched.
func seedAdmin() error {
	// Stored lowercase, matching the store's email normalization.
	email := strings.ToLower(os.Getenv("ADMIN_EMAIL"))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Warning("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var count int64
	if err := DB.Model(&admin.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	seeded := admin.Admin{
		Name:     "Administrator",
		Email:    email,
		Password: hashed,
	}
	if err := DB.Create(&seeded).Error; err != nil {
		return err
	}
	logger.Success("Seeded admin account " + email)
	return nil
}

// GetDB returns the database instance.
func GetDB() *gorm.DB {
	return DB
}
