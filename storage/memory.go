package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"redlink/models/admin"
	"redlink/models/appointment"
	"redlink/models/bloodbank"
	"redlink/models/user"
)

// MemoryStore holds all data in memory behind a single mutex. It mirrors
// GormStore's semantics and backs the test suite.
type MemoryStore struct {
	mu sync.Mutex

	users        map[uint]*user.User
	banks        map[uint]*bloodbank.BloodBank
	appointments map[uint]*appointment.Appointment
	admins       map[uint]*admin.Admin

	userCounter        uint
	bankCounter        uint
	appointmentCounter uint
	adminCounter       uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[uint]*user.User),
		banks:        make(map[uint]*bloodbank.BloodBank),
		appointments: make(map[uint]*appointment.Appointment),
		admins:       make(map[uint]*admin.Admin),
	}
}

func (m *MemoryStore) CreateUser(u *user.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.Email = strings.ToLower(u.Email)
	for _, existing := range m.users {
		if existing.Email == u.Email || existing.Phone == u.Phone {
			return ErrDuplicate
		}
	}

	m.userCounter++
	u.ID = m.userCounter
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *MemoryStore) GetUserByID(id uint) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MemoryStore) GetUserByEmail(email string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) FindUserByEmailOrPhone(email, phone string) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) || u.Phone == phone {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateUserProfile(id uint, fields map[string]interface{}) (*user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	for column, value := range fields {
		s, _ := value.(string)
		switch column {
		case "full_name":
			u.FullName = s
		case "phone":
			u.Phone = s
		case "state":
			u.State = s
		case "city":
			u.City = s
		case "pincode":
			u.Pincode = s
		}
	}
	u.UpdatedAt = time.Now()
	cp := *u
	return &cp, nil
}

func (m *MemoryStore) ListUsers() ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]user.User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

func (m *MemoryStore) DeleteUser(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return ErrNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *MemoryStore) ToggleAvailability(id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return false, ErrNotFound
	}
	u.Availability = !u.Availability
	u.UpdatedAt = time.Now()
	return u.Availability, nil
}

func (m *MemoryStore) SearchDonors(group user.BloodGroup, citySubstring string) ([]user.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	needle := strings.ToLower(citySubstring)
	// Non-nil so an empty result serializes as [] like the SQL path.
	donors := make([]user.User, 0)
	for _, u := range m.users {
		if u.BloodGroup != group || !u.Availability {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(u.City), needle) {
			continue
		}
		donors = append(donors, *u)
	}
	sort.Slice(donors, func(i, j int) bool { return donors[i].ID < donors[j].ID })
	return donors, nil
}

func (m *MemoryStore) CountAvailableByGroup(group user.BloodGroup) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var count int64
	for _, u := range m.users {
		if u.BloodGroup == group && u.Availability {
			count++
		}
	}
	return count, nil
}

func (m *MemoryStore) CreateBloodBank(b *bloodbank.BloodBank) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.banks {
		if existing.Name == b.Name {
			return ErrDuplicate
		}
	}

	m.bankCounter++
	b.ID = m.bankCounter
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	m.banks[b.ID] = &cp
	return nil
}

func (m *MemoryStore) GetBloodBankByID(id uint) (*bloodbank.BloodBank, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.banks[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *MemoryStore) GetBloodBankByName(name string) (*bloodbank.BloodBank, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.banks {
		if b.Name == name {
			cp := *b
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) ListBloodBanks() ([]bloodbank.BloodBank, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	banks := make([]bloodbank.BloodBank, 0, len(m.banks))
	for _, b := range m.banks {
		banks = append(banks, *b)
	}
	sort.Slice(banks, func(i, j int) bool { return banks[i].Name < banks[j].Name })
	return banks, nil
}

func (m *MemoryStore) DeleteBloodBank(id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.banks[id]; !ok {
		return ErrNotFound
	}
	delete(m.banks, id)
	return nil
}

func (m *MemoryStore) CreateAppointment(a *appointment.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.appointmentCounter++
	a.ID = m.appointmentCounter
	if a.Status == "" {
		a.Status = appointment.StatusPending
	}
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.appointments[a.ID] = &cp
	return nil
}

func (m *MemoryStore) ListAppointmentsByStatus(status appointment.Status) ([]appointment.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	appointments := make([]appointment.Appointment, 0)
	for _, a := range m.appointments {
		if a.Status == status {
			appointments = append(appointments, *a)
		}
	}
	// Newest-created first; IDs break ties since CreatedAt has coarse
	// resolution in fast tests.
	sort.Slice(appointments, func(i, j int) bool {
		if appointments[i].CreatedAt.Equal(appointments[j].CreatedAt) {
			return appointments[i].ID > appointments[j].ID
		}
		return appointments[i].CreatedAt.After(appointments[j].CreatedAt)
	})
	return appointments, nil
}

func (m *MemoryStore) SweepElapsed(date, timeOfDay string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var transitioned int64
	for _, a := range m.appointments {
		if a.Status != appointment.StatusPending {
			continue
		}
		if a.Date < date || (a.Date == date && a.Time < timeOfDay) {
			a.Status = appointment.StatusCompleted
			a.UpdatedAt = time.Now()
			transitioned++
		}
	}
	return transitioned, nil
}

func (m *MemoryStore) CreateAdmin(a *admin.Admin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a.Email = strings.ToLower(a.Email)
	for _, existing := range m.admins {
		if strings.EqualFold(existing.Email, a.Email) {
			return ErrDuplicate
		}
	}

	m.adminCounter++
	a.ID = m.adminCounter
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	m.admins[a.ID] = &cp
	return nil
}

func (m *MemoryStore) GetAdminByEmail(email string) (*admin.Admin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, a := range m.admins {
		if strings.EqualFold(a.Email, email) {
			cp := *a
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}
