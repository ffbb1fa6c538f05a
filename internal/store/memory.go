package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sathesh-kumar-v/comply/internal/model"
)

// memoryActionStore keeps the registry in process memory, pre-loaded with
// the starter records. It backs local development and deployments without
// a database.
type memoryActionStore struct {
	mu      sync.RWMutex
	actions map[string]model.CorrectiveAction
	order   []string
}

func newMemoryActionStore() *memoryActionStore {
	s := &memoryActionStore{
		actions: make(map[string]model.CorrectiveAction),
	}
	for _, action := range seedActions() {
		s.actions[action.ID] = action
		s.order = append(s.order, action.ID)
	}
	return s
}

func (s *memoryActionStore) List(_ context.Context) ([]model.CorrectiveAction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.CorrectiveAction, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, cloneAction(s.actions[id]))
	}
	return out, nil
}

func (s *memoryActionStore) GetByID(_ context.Context, id string) (*model.CorrectiveAction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	action, ok := s.actions[id]
	if !ok {
		return nil, fmt.Errorf("action %s: %w", id, ErrNotFound)
	}
	clone := cloneAction(action)
	return &clone, nil
}

func (s *memoryActionStore) Create(_ context.Context, action *model.CorrectiveAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.actions[action.ID]; ok {
		return fmt.Errorf("action %s: %w", action.ID, ErrConflict)
	}
	s.actions[action.ID] = cloneAction(*action)
	s.order = append(s.order, action.ID)
	return nil
}

func (s *memoryActionStore) Update(_ context.Context, action *model.CorrectiveAction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.actions[action.ID]; !ok {
		return fmt.Errorf("action %s: %w", action.ID, ErrNotFound)
	}
	s.actions[action.ID] = cloneAction(*action)
	return nil
}

func (s *memoryActionStore) SaveAIMetadata(_ context.Context, id string, meta model.AIMetadata, lastUpdated time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	action, ok := s.actions[id]
	if !ok {
		return fmt.Errorf("action %s: %w", id, ErrNotFound)
	}
	action.AIMetadata = cloneMetadata(meta)
	action.LastUpdated = lastUpdated
	s.actions[id] = action
	return nil
}

func (s *memoryActionStore) NextID(_ context.Context, year int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return nextSequentialID(s.order, year), nil
}
