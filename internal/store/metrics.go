package store

import (
	"sync"

	"github.com/cephas20k/secops/internal/models"
)

// MetricRingSize is how many API request samples are retained.
const MetricRingSize = 400

// MetricStore ring-buffers the most recent API request samples.
type MetricStore struct {
	mu      sync.Mutex
	samples []models.APIMetric
	next    int
	full    bool
}

// NewMetricStore creates an empty MetricStore.
func NewMetricStore() *MetricStore {
	return &MetricStore{samples: make([]models.APIMetric, MetricRingSize)}
}

// Record appends a sample, overwriting the oldest once the ring is full.
func (s *MetricStore) Record(m models.APIMetric) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.samples[s.next] = m
	s.next++
	if s.next == len(s.samples) {
		s.next = 0
		s.full = true
	}
}

// Last returns up to n samples, oldest first.
func (s *MetricStore) Last(n int) []models.APIMetric {
	s.mu.Lock()
	defer s.mu.Unlock()

	size := s.next
	if s.full {
		size = len(s.samples)
	}
	if n <= 0 || n > size {
		n = size
	}

	out := make([]models.APIMetric, 0, n)
	start := s.next - n
	if start < 0 {
		start += len(s.samples)
	}
	for i := 0; i < n; i++ {
		out = append(out, s.samples[(start+i)%len(s.samples)])
	}

	return out
}
