package auth

import (
	"fmt"

	"redlink/models/user"
)

// RegisterRequest is the donor registration payload.
type RegisterRequest struct {
	FullName    string `json:"full_name" validate:"required,min=1,max=255"`
	Gender      string `json:"gender" validate:"required,oneof=Male Female Other"`
	DateOfBirth string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	BloodGroup  string `json:"blood_group" validate:"required"`
	Phone       string `json:"phone" validate:"required,min=10,max=20"`
	Email       string `json:"email" validate:"required,email"`
	State       string `json:"state" validate:"required,max=100"`
	City        string `json:"city" validate:"required,max=100"`
	Pincode     string `json:"pincode" validate:"required,min=4,max=10"`
	Password    string `json:"password" validate:"required,min=8"`
}

// Validate performs the cross-field checks the validator tags cannot express.
func (r RegisterRequest) Validate() error {
	if !user.IsValidBloodGroup(r.BloodGroup) {
		return fmt.Errorf("blood group must be one of %v", user.BloodGroups)
	}
	return nil
}

// LoginRequest is the donor login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginRequest is the admin console login payload.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the minimal identity returned on login.
type LoginResponse struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
