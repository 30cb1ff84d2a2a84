package projectstore

import (
	"sync"

	"github.com/pesalink/pesalink-payment-service/internal/domain"
)

// InMemProjectStore is a mutex-guarded reference implementation of the external
// project/credentials store, used for local wiring and tests. The production store
// lives in another service; this core only ever reads from it.
type InMemProjectStore struct {
	mu       sync.RWMutex
	projects map[string]*domain.Project
}

func NewInMemProjectStore(projects ...*domain.Project) *InMemProjectStore {
	store := &InMemProjectStore{projects: make(map[string]*domain.Project)}
	for _, project := range projects {
		store.projects[project.ID] = project
	}
	return store
}

func (s *InMemProjectStore) ResolveAPIKey(apiKey string) (*domain.Project, domain.Environment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, project := range s.projects {
		switch apiKey {
		case project.LiveAPIKey:
			return project, domain.EnvLive, nil
		case project.SandboxAPIKey:
			return project, domain.EnvSandbox, nil
		}
	}
	return nil, "", domain.ErrInvalidAPIKey
}

func (s *InMemProjectStore) GetProjectByID(projectID string) (*domain.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	project, ok := s.projects[projectID]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return project, nil
}
