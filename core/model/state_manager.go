// Package model provides the shared plumbing of the estimators: fitted-state
// tracking, the transformer contract and weight snapshots.
package model

import (
	"sync"

	"github.com/YuminosukeSato/mda/pkg/errors"
)

// StateManager tracks whether an estimator is untrained or trained, together
// with the shape it was trained on.
type StateManager struct {
	mu     sync.RWMutex
	fitted bool

	nFeatures int
	nOutputs  int
}

// NewStateManager creates a StateManager in the untrained state.
func NewStateManager() *StateManager {
	return &StateManager{}
}

// IsFitted returns whether the model has been fitted.
func (s *StateManager) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fitted
}

// SetFitted marks the model as trained on nFeatures inputs producing nOutputs rows.
func (s *StateManager) SetFitted(nFeatures, nOutputs int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = true
	s.nFeatures = nFeatures
	s.nOutputs = nOutputs
}

// Reset returns to the untrained state.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fitted = false
	s.nFeatures = 0
	s.nOutputs = 0
}

// Dims returns the input feature count and output dimension seen during fitting.
func (s *StateManager) Dims() (nFeatures, nOutputs int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nOutputs
}

// RequireFitted returns a NotFittedError if the model has not been fitted.
func (s *StateManager) RequireFitted(modelName, method string) error {
	if !s.IsFitted() {
		return errors.NewNotFittedError(modelName, method)
	}
	return nil
}
