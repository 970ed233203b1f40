// Package store holds the in-memory mutable collections of the engine: the
// user/device store, approval queue, export schedules and history, the API
// metric ring buffer, and the process-wide configuration. Each collection is
// guarded by its own mutex; persistence belongs to external collaborators.
package store

import (
	"sync"
	"time"

	"github.com/cephas20k/secops/internal/models"
)

// UserStore owns all users and their devices. Reads return clones so callers
// never alias internal state.
type UserStore struct {
	mu    sync.Mutex
	order []*models.User
	index map[string]*models.User
}

// NewUserStore creates an empty UserStore.
func NewUserStore() *UserStore {
	return &UserStore{index: make(map[string]*models.User)}
}

// Put inserts or replaces a user.
func (s *UserStore) Put(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := u.Clone()
	if existing, ok := s.index[u.ID]; ok {
		*existing = cp
		return
	}

	s.order = append(s.order, &cp)
	s.index[u.ID] = &cp
}

// Get returns a clone of the user, or false if absent.
func (s *UserStore) Get(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.index[id]
	if !ok {
		return models.User{}, false
	}

	return u.Clone(), true
}

// List returns clones of all users in insertion order.
func (s *UserStore) List() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, len(s.order))
	for i, u := range s.order {
		out[i] = u.Clone()
	}

	return out
}

// Count returns the number of users.
func (s *UserStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.order)
}

// DeviceCount returns the total number of devices across all users.
func (s *UserStore) DeviceCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, u := range s.order {
		n += len(u.Devices)
	}

	return n
}

// SetActive updates a user's active flag. Deactivating also forces step-up
// on the next sign-in. Returns the updated clone, or false if absent.
func (s *UserStore) SetActive(id string, active bool) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.index[id]
	if !ok {
		return models.User{}, false
	}

	u.Active = active
	if !active {
		u.StepUpRequired = true
	}

	return u.Clone(), true
}

// SetDeviceTrusted updates a device's trusted flag and refreshes its
// lastSeen. Returns the updated device clone, or false if the user or
// device is absent.
func (s *UserStore) SetDeviceTrusted(userID, deviceID string, trusted bool, now time.Time) (models.Device, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.index[userID]
	if !ok {
		return models.Device{}, false
	}

	for i := range u.Devices {
		if u.Devices[i].ID == deviceID {
			u.Devices[i].Trusted = trusted
			u.Devices[i].LastSeen = now
			return u.Devices[i], true
		}
	}

	return models.Device{}, false
}

// ForcePasswordReset flags the user for a password reset and step-up.
func (s *UserStore) ForcePasswordReset(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.index[id]
	if !ok {
		return models.User{}, false
	}

	u.ForcePasswordReset = true
	u.StepUpRequired = true

	return u.Clone(), true
}

// SetStepUpRequired flags the user for step-up verification.
func (s *UserStore) SetStepUpRequired(id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.index[id]
	if !ok {
		return models.User{}, false
	}

	u.StepUpRequired = true

	return u.Clone(), true
}

// Lockdown deactivates the user, forces reset and step-up, untrusts every
// device and refreshes their lastSeen. Returns the affected device count.
func (s *UserStore) Lockdown(id string, now time.Time) (models.User, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.index[id]
	if !ok {
		return models.User{}, 0, false
	}

	u.Active = false
	u.StepUpRequired = true
	u.ForcePasswordReset = true
	for i := range u.Devices {
		u.Devices[i].Trusted = false
		u.Devices[i].LastSeen = now
	}

	return u.Clone(), len(u.Devices), true
}
