package donor

import (
	"fmt"

	"redlink/models/user"
)

// UpdateProfileRequest carries the mutable profile fields. Empty fields are
// left unchanged.
type UpdateProfileRequest struct {
	FullName string `json:"full_name" validate:"omitempty,max=255"`
	Phone    string `json:"phone" validate:"omitempty,min=10,max=20"`
	State    string `json:"state" validate:"omitempty,max=100"`
	City     string `json:"city" validate:"omitempty,max=100"`
	Pincode  string `json:"pincode" validate:"omitempty,min=4,max=10"`
}

// SeekerDetails identifies the person asking for blood in a bulk alert.
type SeekerDetails struct {
	Phone   string `json:"phone" validate:"required,min=10,max=20"`
	Message string `json:"message" validate:"required"`
	Area    string `json:"area" validate:"required"`
}

// SendEmailsRequest is the bulk "blood needed" alert payload: the seeker's
// details plus the donor result set the seeker wants to reach.
type SendEmailsRequest struct {
	SeekerDetails SeekerDetails `json:"seekerDetails" validate:"required"`
	Donors        []user.User   `json:"donors" validate:"required,min=1"`
}

// Validate performs cross-field checks on the bulk alert payload.
func (r SendEmailsRequest) Validate() error {
	if r.SeekerDetails.Phone == "" || r.SeekerDetails.Message == "" || r.SeekerDetails.Area == "" {
		return fmt.Errorf("seeker phone, message and area are required")
	}
	if len(r.Donors) == 0 {
		return fmt.Errorf("at least one donor is required")
	}
	return nil
}

// BloodGroupStat is one row of the availability statistics endpoint.
type BloodGroupStat struct {
	Group  string `json:"group"`
	Donors int64  `json:"donors"`
}
