// Package cache provides the response cache used by the HTTP server.
// Calculations are pure, so a serialized response can be replayed for any
// identical request; the cache is strictly ephemeral and never a source of
// truth.
package cache

import (
	"context"
	"sync"
)

// Cache stores serialized calculation responses keyed by request hash.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

// Memory is an in-process Cache for single-instance deployments and tests.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.data[key]
	return val, ok
}

func (m *Memory) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}
