package storage

import (
	"testing"

	"redlink/models/admin"
	"redlink/models/appointment"
	"redlink/models/bloodbank"
	"redlink/models/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDonor(name, email, phone, city string, group user.BloodGroup, available bool) *user.User {
	return &user.User{
		FullName:     name,
		Gender:       user.GenderFemale,
		BloodGroup:   group,
		Availability: available,
		Phone:        phone,
		Email:        email,
		State:        "Delhi",
		City:         city,
		Pincode:      "110001",
		Password:     "hashed",
	}
}

func TestMemoryStore_CreateUserRejectsDuplicates(t *testing.T) {
	store := NewMemoryStore()

	first := newDonor("Asha", "asha@example.com", "9000000001", "Delhi", user.BloodGroupOPositive, true)
	require.NoError(t, store.CreateUser(first))

	sameEmail := newDonor("Other", "asha@example.com", "9000000002", "Delhi", user.BloodGroupOPositive, true)
	assert.ErrorIs(t, store.CreateUser(sameEmail), ErrDuplicate)

	samePhone := newDonor("Other", "other@example.com", "9000000001", "Delhi", user.BloodGroupOPositive, true)
	assert.ErrorIs(t, store.CreateUser(samePhone), ErrDuplicate)
}

func TestMemoryStore_EmailsStoredLowercase(t *testing.T) {
	store := NewMemoryStore()

	donor := newDonor("Asha", "Asha@Example.COM", "9000000001", "Delhi", user.BloodGroupOPositive, true)
	require.NoError(t, store.CreateUser(donor))

	stored, err := store.GetUserByID(donor.ID)
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", stored.Email)

	// Lookups succeed regardless of the caller's casing.
	_, err = store.GetUserByEmail("asha@example.com")
	assert.NoError(t, err)
	_, err = store.GetUserByEmail("ASHA@example.com")
	assert.NoError(t, err)
	_, err = store.FindUserByEmailOrPhone("Asha@Example.com", "none")
	assert.NoError(t, err)

	// A case variant of a registered email is still a duplicate.
	variant := newDonor("Other", "aSHA@example.com", "9000000002", "Delhi", user.BloodGroupOPositive, true)
	assert.ErrorIs(t, store.CreateUser(variant), ErrDuplicate)
}

func TestMemoryStore_AdminEmailStoredLowercase(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.CreateAdmin(&admin.Admin{Email: "Admin@Example.com", Password: "hashed"}))

	account, err := store.GetAdminByEmail("admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", account.Email)
}

func TestMemoryStore_EmptyResultsAreNotNil(t *testing.T) {
	store := NewMemoryStore()

	donors, err := store.SearchDonors(user.BloodGroupOPositive, "")
	require.NoError(t, err)
	assert.NotNil(t, donors)
	assert.Empty(t, donors)

	pending, err := store.ListAppointmentsByStatus(appointment.StatusPending)
	require.NoError(t, err)
	assert.NotNil(t, pending)
	assert.Empty(t, pending)
}

func TestMemoryStore_SearchDonorsFiltersGroupAndAvailability(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.CreateUser(newDonor("Match", "m@example.com", "9000000001", "Delhi", user.BloodGroupAPositive, true)))
	require.NoError(t, store.CreateUser(newDonor("WrongGroup", "wg@example.com", "9000000002", "Delhi", user.BloodGroupBPositive, true)))
	require.NoError(t, store.CreateUser(newDonor("Unavailable", "ua@example.com", "9000000003", "Delhi", user.BloodGroupAPositive, false)))

	donors, err := store.SearchDonors(user.BloodGroupAPositive, "")
	require.NoError(t, err)
	require.Len(t, donors, 1)
	assert.Equal(t, "Match", donors[0].FullName)

	for _, d := range donors {
		assert.True(t, d.Availability)
		assert.Equal(t, user.BloodGroupAPositive, d.BloodGroup)
	}
}

func TestMemoryStore_SearchDonorsCitySubstringIsCaseInsensitive(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.CreateUser(newDonor("D1", "d1@example.com", "9000000001", "Delhi", user.BloodGroupOPositive, true)))
	require.NoError(t, store.CreateUser(newDonor("D2", "d2@example.com", "9000000002", "DELHI", user.BloodGroupOPositive, true)))
	require.NoError(t, store.CreateUser(newDonor("D3", "d3@example.com", "9000000003", "Mandeli", user.BloodGroupOPositive, true)))
	require.NoError(t, store.CreateUser(newDonor("D4", "d4@example.com", "9000000004", "Mumbai", user.BloodGroupOPositive, true)))

	donors, err := store.SearchDonors(user.BloodGroupOPositive, "del")
	require.NoError(t, err)
	assert.Len(t, donors, 3)
	for _, d := range donors {
		assert.NotEqual(t, "Mumbai", d.City)
	}
}

func TestMemoryStore_ToggleAvailability(t *testing.T) {
	store := NewMemoryStore()

	donor := newDonor("Asha", "asha@example.com", "9000000001", "Delhi", user.BloodGroupOPositive, true)
	require.NoError(t, store.CreateUser(donor))

	got, err := store.ToggleAvailability(donor.ID)
	require.NoError(t, err)
	assert.False(t, got)

	got, err = store.ToggleAvailability(donor.ID)
	require.NoError(t, err)
	assert.True(t, got)

	_, err = store.ToggleAvailability(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_SweepElapsed(t *testing.T) {
	store := NewMemoryStore()

	past := &appointment.Appointment{UserID: 1, BloodBankID: 1, Date: "2020-01-01", Time: "10:00"}
	sameDayEarlier := &appointment.Appointment{UserID: 1, BloodBankID: 1, Date: "2024-06-15", Time: "08:30"}
	sameDayLater := &appointment.Appointment{UserID: 1, BloodBankID: 1, Date: "2024-06-15", Time: "18:00"}
	future := &appointment.Appointment{UserID: 1, BloodBankID: 1, Date: "2099-12-31", Time: "09:00"}

	for _, a := range []*appointment.Appointment{past, sameDayEarlier, sameDayLater, future} {
		require.NoError(t, store.CreateAppointment(a))
		assert.Equal(t, appointment.StatusPending, a.Status)
	}

	count, err := store.SweepElapsed("2024-06-15", "12:00")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	pending, err := store.ListAppointmentsByStatus(appointment.StatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	completed, err := store.ListAppointmentsByStatus(appointment.StatusCompleted)
	require.NoError(t, err)
	assert.Len(t, completed, 2)

	// Re-running with the same clock transitions nothing further.
	count, err = store.SweepElapsed("2024-06-15", "12:00")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestMemoryStore_ListAppointmentsNewestFirst(t *testing.T) {
	store := NewMemoryStore()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.CreateAppointment(&appointment.Appointment{
			UserID: 1, BloodBankID: 1, Date: "2099-01-01", Time: "10:00",
		}))
	}

	pending, err := store.ListAppointmentsByStatus(appointment.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 3)
	assert.EqualValues(t, 3, pending[0].ID)
	assert.EqualValues(t, 1, pending[2].ID)
}

func TestMemoryStore_BloodBankUniqueNameAndOrdering(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.CreateBloodBank(&bloodbank.BloodBank{Name: "Rotary Blood Bank"}))
	require.NoError(t, store.CreateBloodBank(&bloodbank.BloodBank{Name: "Apollo Blood Bank"}))
	assert.ErrorIs(t, store.CreateBloodBank(&bloodbank.BloodBank{Name: "Rotary Blood Bank"}), ErrDuplicate)

	banks, err := store.ListBloodBanks()
	require.NoError(t, err)
	require.Len(t, banks, 2)
	assert.Equal(t, "Apollo Blood Bank", banks[0].Name)
}

func TestMemoryStore_CountAvailableByGroup(t *testing.T) {
	store := NewMemoryStore()

	require.NoError(t, store.CreateUser(newDonor("D1", "d1@example.com", "9000000001", "Delhi", user.BloodGroupABNegative, true)))
	require.NoError(t, store.CreateUser(newDonor("D2", "d2@example.com", "9000000002", "Delhi", user.BloodGroupABNegative, false)))

	count, err := store.CountAvailableByGroup(user.BloodGroupABNegative)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
