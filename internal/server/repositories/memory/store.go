// Package memory implements the credential and scheduling stores in process
// memory. It is safe for concurrent use and mirrors the Postgres schema's
// constraints: unique usernames, appointments referencing existing users and
// cascading delete of a user's appointments.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/apptbook/internal/common"
	"github.com/dmitrijs2005/apptbook/internal/server/models"
)

// Store holds both tables under one lock.
type Store struct {
	mu           sync.RWMutex
	users        map[int64]*models.User
	appointments map[int64]*models.Appointment
	nextUserID   int64
	nextApptID   int64
	now          func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:        make(map[int64]*models.User),
		appointments: make(map[int64]*models.Appointment),
		now:          time.Now,
	}
}

// Users returns the credential store view.
func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }

// Appointments returns the scheduling store view.
func (s *Store) Appointments() *AppointmentRepository { return &AppointmentRepository{s: s} }

func copyUser(u *models.User) *models.User {
	c := *u
	c.Salt = slices.Clone(u.Salt)
	c.Digest = slices.Clone(u.Digest)
	return &c
}

func copyAppointment(a *models.Appointment) *models.Appointment {
	c := *a
	return &c
}

type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.findByName(user.UserName) != nil {
		return nil, common.ErrorAlreadyExists
	}

	r.s.nextUserID++
	user.ID = r.s.nextUserID
	user.CreatedAt = r.s.now()
	r.s.users[user.ID] = copyUser(user)
	return user, nil
}

func (s *Store) findByName(name string) *models.User {
	for _, u := range s.users {
		if u.UserName == name {
			return u
		}
	}
	return nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, userName string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u := r.s.findByName(userName)
	if u == nil {
		return nil, common.ErrorNotFound
	}
	return copyUser(u), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyUser(u), nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.users[user.ID]
	if !ok {
		return common.ErrorNotFound
	}
	if other := r.s.findByName(user.UserName); other != nil && other.ID != user.ID {
		return common.ErrorAlreadyExists
	}

	u := copyUser(user)
	u.CreatedAt = cur.CreatedAt
	r.s.users[user.ID] = u
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.users, id)
	for apptID, a := range r.s.appointments {
		if a.CustomerID == id || a.StaffID == id {
			delete(r.s.appointments, apptID)
		}
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context) ([]*models.User, error) {
	return r.list(func(*models.User) bool { return true }), nil
}

func (r *UserRepository) ListEmployees(ctx context.Context) ([]*models.User, error) {
	return r.list(func(u *models.User) bool { return u.Role == models.RoleEmployee }), nil
}

func (r *UserRepository) list(keep func(*models.User) bool) []*models.User {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*models.User
	for _, u := range r.s.users {
		if keep(u) {
			out = append(out, copyUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *UserRepository) UsernameByID(ctx context.Context, id int64) (string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return "", common.ErrorNotFound
	}
	return u.UserName, nil
}

type AppointmentRepository struct {
	s *Store
}

func (r *AppointmentRepository) Create(ctx context.Context, appt *models.Appointment) (*models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, id := range []int64{appt.CustomerID, appt.StaffID} {
		if _, ok := r.s.users[id]; !ok {
			return nil, fmt.Errorf("%w: no user %d", common.ErrInvalidData, id)
		}
	}

	r.s.nextApptID++
	appt.ID = r.s.nextApptID
	appt.CreatedAt = r.s.now()
	r.s.appointments[appt.ID] = copyAppointment(appt)
	return appt, nil
}

func (r *AppointmentRepository) ListByCustomer(ctx context.Context, customerID int64) ([]*models.Appointment, error) {
	return r.list(func(a *models.Appointment) bool { return a.CustomerID == customerID }), nil
}

func (r *AppointmentRepository) ListByStaff(ctx context.Context, staffID int64) ([]*models.Appointment, error) {
	return r.list(func(a *models.Appointment) bool { return a.StaffID == staffID }), nil
}

func (r *AppointmentRepository) FindOverlap(ctx context.Context, staffID int64, date time.Time, start, end models.TimeOfDay) (*models.Appointment, error) {
	found := r.list(func(a *models.Appointment) bool {
		return a.StaffID == staffID &&
			a.Date.Equal(date) &&
			a.Status != models.StatusCancelled &&
			a.StartTime < end && start < a.EndTime
	})
	if len(found) == 0 {
		return nil, common.ErrorNotFound
	}
	return found[0], nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id, staffID int64, status models.Status) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	a, ok := r.s.appointments[id]
	if !ok || a.StaffID != staffID {
		return common.ErrorNotFound
	}
	a.Status = status
	return nil
}

func (r *AppointmentRepository) list(keep func(*models.Appointment) bool) []*models.Appointment {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var out []*models.Appointment
	for _, a := range r.s.appointments {
		if keep(a) {
			out = append(out, copyAppointment(a))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].ID < out[j].ID
	})
	return out
}
