package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/cephas20k/secops/internal/models"
)

// ScheduleStore owns the recurring export schedule list.
type ScheduleStore struct {
	mu        sync.Mutex
	schedules []*models.ExportScheduleConfig
	index     map[string]*models.ExportScheduleConfig
}

// NewScheduleStore creates an empty ScheduleStore.
func NewScheduleStore() *ScheduleStore {
	return &ScheduleStore{index: make(map[string]*models.ExportScheduleConfig)}
}

// Upsert inserts or replaces a schedule, assigning an id when absent.
// Returns the stored clone.
func (s *ScheduleStore) Upsert(sched models.ExportScheduleConfig) models.ExportScheduleConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sched.ID == "" {
		sched.ID = uuid.NewString()
	}

	cp := sched.Clone()
	if existing, ok := s.index[sched.ID]; ok {
		*existing = cp
	} else {
		s.schedules = append(s.schedules, &cp)
		s.index[sched.ID] = &cp
	}

	return sched.Clone()
}

// Get returns a clone of the schedule, or false if absent.
func (s *ScheduleStore) Get(id string) (models.ExportScheduleConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, ok := s.index[id]
	if !ok {
		return models.ExportScheduleConfig{}, false
	}

	return sched.Clone(), true
}

// List returns clones of all schedules in insertion order.
func (s *ScheduleStore) List() []models.ExportScheduleConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ExportScheduleConfig, len(s.schedules))
	for i, sched := range s.schedules {
		out[i] = sched.Clone()
	}

	return out
}

// Mutate applies fn to the stored schedule under the lock and returns the
// updated clone. Returns false if the schedule is absent.
func (s *ScheduleStore) Mutate(id string, fn func(*models.ExportScheduleConfig)) (models.ExportScheduleConfig, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sched, ok := s.index[id]
	if !ok {
		return models.ExportScheduleConfig{}, false
	}

	fn(sched)

	return sched.Clone(), true
}
