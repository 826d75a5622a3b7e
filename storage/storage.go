// Package storage keeps completed jobs in memory for artifact download.
// Nothing survives a restart; the caller owns long-term storage of the
// generated files.
package storage

import (
	"sync"

	"github.com/podforge/podforge/models"
)

type Storage struct {
	mu   sync.RWMutex
	jobs map[string]*models.Job
}

func NewStorage() *Storage {
	return &Storage{
		jobs: make(map[string]*models.Job),
	}
}

// Put stores a completed job under its ID.
func (s *Storage) Put(job *models.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

// Get returns the job for id, if any.
func (s *Storage) Get(id string) (*models.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	return job, ok
}
