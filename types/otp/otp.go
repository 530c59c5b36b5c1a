package otp

// VerifyOTPRequest is the payload for verifying a session-keyed OTP.
type VerifyOTPRequest struct {
	OTP string `json:"otp" validate:"required,len=6,numeric"`
}

// BankOTPRequest asks for an OTP to be sent to a blood bank's email before
// registration.
type BankOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// VerifyBankOTPRequest verifies the code previously sent to a bank email.
type VerifyBankOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

// OTPResponse is returned by the generate endpoints.
type OTPResponse struct {
	Message   string `json:"message"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Success   bool   `json:"success"`
}
