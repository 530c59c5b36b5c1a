package bloodbank

import (
	"fmt"
	"regexp"
)

var hhmmRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// AddRequest is the blood bank registration payload.
type AddRequest struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"required,max=255"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,max=100"`
	Pincode string `json:"pincode" validate:"required,min=4,max=10"`
	Phone   string `json:"phone" validate:"required,min=10,max=20"`
	Email   string `json:"email" validate:"omitempty,email"`
	Open    string `json:"open" validate:"required"`
	Close   string `json:"close" validate:"required"`
}

// Validate checks presence and the HH:MM operating hours format.
func (r AddRequest) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("name is required")
	}
	if r.Address == "" || r.City == "" || r.State == "" || r.Pincode == "" {
		return fmt.Errorf("address, city, state and pincode are required")
	}
	if r.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	if !hhmmRe.MatchString(r.Open) || !hhmmRe.MatchString(r.Close) {
		return fmt.Errorf("operating hours must be HH:MM")
	}
	return nil
}
