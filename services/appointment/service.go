package appointment

import (
	"errors"
	"fmt"
	"time"

	appointmentModel "redlink/models/appointment"
	"redlink/logger"
	"redlink/services/notification"
	"redlink/storage"
)

// ErrInvalidStatus is returned when a status filter is not pending or
// completed.
var ErrInvalidStatus = errors.New("invalid appointment status")

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// Service is the appointment ledger: it creates bookings and advances their
// status as wall-clock time passes.
type Service struct {
	store      storage.Store
	dispatcher *notification.Dispatcher
}

func NewService(store storage.Store, dispatcher *notification.Dispatcher) *Service {
	return &Service{store: store, dispatcher: dispatcher}
}

// Book validates both referenced entities, persists a pending appointment
// with denormalized display names, then notifies the blood bank best-effort.
// A notification failure never rolls back the booking.
//
// Double-booking the same bank/date/time is deliberately not prevented; the
// bank resolves duplicates out of band.
func (s *Service) Book(userID, bloodBankID uint, date, timeOfDay string) (*appointmentModel.Appointment, error) {
	if date == "" || timeOfDay == "" {
		return nil, fmt.Errorf("date and time are required")
	}

	bank, err := s.store.GetBloodBankByID(bloodBankID)
	if err != nil {
		return nil, err
	}

	donor, err := s.store.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	appt := &appointmentModel.Appointment{
		UserID:        donor.ID,
		UserName:      donor.FullName,
		BloodBankID:   bank.ID,
		BloodBankName: bank.Name,
		Date:          date,
		Time:          timeOfDay,
		Status:        appointmentModel.StatusPending,
	}
	if err := s.store.CreateAppointment(appt); err != nil {
		return nil, err
	}

	// Fire-and-forget: booking success is independent of email success.
	if bank.Contact.Email != "" {
		if err := s.dispatcher.Send(notification.AppointmentMessage(bank, donor, date, timeOfDay)); err != nil {
			logger.Error(fmt.Sprintf("Failed to notify blood bank %q about appointment %d", bank.Name, appt.ID), err)
		}
	}

	return appt, nil
}

// SweepElapsed marks every pending appointment scheduled strictly before now
// as completed and returns the count. Re-running with the same now is a
// no-op for already-completed rows.
func (s *Service) SweepElapsed(now time.Time) (int64, error) {
	return s.store.SweepElapsed(now.Format(dateLayout), now.Format(timeLayout))
}

// ListByStatus returns appointments with the given status, newest first.
func (s *Service) ListByStatus(status string) ([]appointmentModel.Appointment, error) {
	if !appointmentModel.IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.store.ListAppointmentsByStatus(appointmentModel.Status(status))
}
