package appointment

import (
	"fmt"
	"regexp"
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

// BookRequest is the appointment booking payload. Date and Time are kept as
// zero-padded strings so they order lexicographically.
type BookRequest struct {
	BloodBankID uint   `json:"blood_bank_id" validate:"required"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
}

// Validate checks presence and the fixed-width formats.
func (r BookRequest) Validate() error {
	if r.BloodBankID == 0 {
		return fmt.Errorf("blood bank id is required")
	}
	if r.Date == "" || r.Time == "" {
		return fmt.Errorf("date and time are required")
	}
	if !dateRe.MatchString(r.Date) {
		return fmt.Errorf("date must be YYYY-MM-DD")
	}
	if !timeRe.MatchString(r.Time) {
		return fmt.Errorf("time must be HH:MM")
	}
	return nil
}
