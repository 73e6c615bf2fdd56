package settings

import (
	"context"
	"sync"
)

type TestRepository struct {
	GetError error
	SetError error

	lock    sync.Mutex
	current Settings
	watch   chan Settings
}

func NewTestRepository(initial Settings) *TestRepository {
	return &TestRepository{current: initial, watch: make(chan Settings, 16)}
}

func (r *TestRepository) Get(ctx context.Context) (Settings, error) {
	if r.GetError != nil {
		return Settings{}, r.GetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.current, nil
}

func (r *TestRepository) Set(ctx context.Context, s Settings) error {
	if r.SetError != nil {
		return r.SetError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.current = s
	return nil
}

func (r *TestRepository) Watch(ctx context.Context) (<-chan Settings, error) {
	return r.watch, nil
}

// NotifyExternalChange simulates a write from another execution context.
func (r *TestRepository) NotifyExternalChange(s Settings) {
	r.lock.Lock()
	r.current = s
	r.lock.Unlock()
	r.watch <- s
}
