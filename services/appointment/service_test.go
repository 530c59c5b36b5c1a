package appointment

import (
	"errors"
	"testing"
	"time"

	appointmentModel "redlink/models/appointment"
	"redlink/models/bloodbank"
	"redlink/models/user"
	"redlink/services/notification"
	"redlink/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []string
	fail error
}

func (f *fakeSender) Send(to, subject, htmlBody string) error {
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, to)
	return nil
}

func newTestService(t *testing.T, sender *fakeSender) (*Service, *storage.MemoryStore) {
	t.Helper()
	store := storage.NewMemoryStore()

	require.NoError(t, store.CreateUser(&user.User{
		FullName:     "Asha Verma",
		Gender:       user.GenderFemale,
		BloodGroup:   user.BloodGroupOPositive,
		Availability: true,
		Phone:        "9000000001",
		Email:        "asha@example.com",
		State:        "Delhi",
		City:         "Delhi",
		Pincode:      "110001",
		Password:     "hashed",
	}))
	require.NoError(t, store.CreateBloodBank(&bloodbank.BloodBank{
		Name:    "Rotary Blood Bank",
		Contact: bloodbank.Contact{Email: "rotary@example.com"},
	}))

	return NewService(store, notification.NewDispatcher(sender)), store
}

func TestBookCreatesPendingAppointment(t *testing.T) {
	sender := &fakeSender{}
	svc, _ := newTestService(t, sender)

	appt, err := svc.Book(1, 1, "2099-01-01", "10:00")
	require.NoError(t, err)

	assert.Equal(t, appointmentModel.StatusPending, appt.Status)
	assert.Equal(t, "Asha Verma", appt.UserName)
	assert.Equal(t, "Rotary Blood Bank", appt.BloodBankName)
	assert.Equal(t, "2099-01-01", appt.Date)
	assert.Equal(t, "10:00", appt.Time)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "rotary@example.com", sender.sent[0])
}

func TestBookUnknownBloodBank(t *testing.T) {
	svc, _ := newTestService(t, &fakeSender{})

	_, err := svc.Book(1, 42, "2099-01-01", "10:00")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBookUnknownUser(t *testing.T) {
	svc, _ := newTestService(t, &fakeSender{})

	_, err := svc.Book(42, 1, "2099-01-01", "10:00")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestBookSurvivesNotificationFailure(t *testing.T) {
	sender := &fakeSender{fail: errors.New("smtp unreachable")}
	svc, store := newTestService(t, sender)

	appt, err := svc.Book(1, 1, "2099-01-01", "10:00")
	require.NoError(t, err)
	assert.Equal(t, appointmentModel.StatusPending, appt.Status)

	pending, err := store.ListAppointmentsByStatus(appointmentModel.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestBookSkipsEmailWhenBankHasNoAddress(t *testing.T) {
	sender := &fakeSender{}
	svc, store := newTestService(t, sender)

	require.NoError(t, store.CreateBloodBank(&bloodbank.BloodBank{Name: "No Email Bank"}))

	_, err := svc.Book(1, 2, "2099-01-01", "10:00")
	require.NoError(t, err)
	assert.Empty(t, sender.sent)
}

func TestBookAllowsDoubleBooking(t *testing.T) {
	svc, _ := newTestService(t, &fakeSender{})

	_, err := svc.Book(1, 1, "2099-01-01", "10:00")
	require.NoError(t, err)
	_, err = svc.Book(1, 1, "2099-01-01", "10:00")
	assert.NoError(t, err)
}

func TestSweepElapsedBoundary(t *testing.T) {
	svc, _ := newTestService(t, &fakeSender{})

	appt, err := svc.Book(1, 1, "2099-01-01", "10:00")
	require.NoError(t, err)

	// Before the slot: untouched.
	count, err := svc.SweepElapsed(time.Date(2099, 1, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, count)

	// Exactly at the slot: strictly-before rule keeps it pending.
	count, err = svc.SweepElapsed(time.Date(2099, 1, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, count)

	// Past the slot: completed.
	count, err = svc.SweepElapsed(time.Date(2099, 1, 1, 11, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	completed, err := svc.ListByStatus("completed")
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, appt.ID, completed[0].ID)

	// Idempotent on re-run.
	count, err = svc.SweepElapsed(time.Date(2099, 1, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestListByStatusRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService(t, &fakeSender{})

	_, err := svc.ListByStatus("cancelled")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
