package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"redlink/config"
	"redlink/services/notification"
)

var (
	// ErrInvalidCode is returned when a live code exists but the submitted
	// code does not match it exactly.
	ErrInvalidCode = errors.New("invalid otp code")

	// ErrDelivery is returned when the code was stored but the email could
	// not be sent. The stored code remains live and verifiable.
	ErrDelivery = errors.New("failed to deliver otp email")
)

const defaultCodeLength = 6

// Service issues and verifies one-time codes keyed by email.
type Service struct {
	store      Store
	dispatcher *notification.Dispatcher
	ttl        time.Duration
	length     int
}

func NewService(store Store, dispatcher *notification.Dispatcher, cfg config.OTPConfig) *Service {
	length := cfg.Length
	if length <= 0 {
		length = defaultCodeLength
	}
	return &Service{
		store:      store,
		dispatcher: dispatcher,
		ttl:        cfg.Expiry,
		length:     length,
	}
}

// TTL returns the configured code lifetime.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// GenerateCode returns a uniform random numeric code of the configured
// length. No leading zero, so the code survives clients that strip them.
func (s *Service) GenerateCode() (string, error) {
	low := int64(1)
	for i := 1; i < s.length; i++ {
		low *= 10
	}
	n, err := rand.Int(rand.Reader, big.NewInt(9*low))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", s.length, n.Int64()+low), nil
}

// Issue generates a fresh code for email, upserts it (replacing any prior
// live code and restarting its TTL) and emails it to the address. If the
// email cannot be delivered the stored code stays live and ErrDelivery is
// returned.
func (s *Service) Issue(ctx context.Context, email string) (string, error) {
	code, err := s.GenerateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}

	if err := s.store.Set(ctx, email, code, s.ttl); err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}

	if err := s.dispatcher.Send(notification.OTPMessage(email, code, s.ttl)); err != nil {
		return code, fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	return code, nil
}

// Verify succeeds iff a live code exists for email and equals submittedCode
// exactly. Success consumes the code; concurrent verifiers race and only the
// one that deletes the record wins. A missing, consumed or expired code
// returns ErrNoCode; a mismatch returns ErrInvalidCode.
func (s *Service) Verify(ctx context.Context, email, submittedCode string) error {
	code, err := s.store.Get(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNoCode) {
			return ErrNoCode
		}
		return fmt.Errorf("failed to load otp: %w", err)
	}

	if code != submittedCode {
		return ErrInvalidCode
	}

	deleted, err := s.store.Delete(ctx, email)
	if err != nil {
		return fmt.Errorf("failed to consume otp: %w", err)
	}
	if !deleted {
		// Another verifier consumed it between our read and delete.
		return ErrNoCode
	}
	return nil
}
