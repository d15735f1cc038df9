package archive

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrMediumUnavailable is returned by MemoryMedium when it is switched off.
var ErrMediumUnavailable = errors.New("medium unavailable")

// MemoryMedium is an in-process Medium. A positive Quota caps the total
// bytes of keys and values it will hold.
type MemoryMedium struct {
	mu          sync.Mutex
	data        map[string]string
	Quota       int
	Unavailable bool
	Writes      int
}

// NewMemoryMedium returns an empty MemoryMedium without a quota.
func NewMemoryMedium() *MemoryMedium {
	return &MemoryMedium{data: make(map[string]string)}
}

func (m *MemoryMedium) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Unavailable {
		return "", false, ErrMediumUnavailable
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryMedium) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Unavailable {
		return ErrMediumUnavailable
	}
	if m.Quota > 0 {
		used := len(key) + len(value)
		for k, v := range m.data {
			if k != key {
				used += len(k) + len(v)
			}
		}
		if used > m.Quota {
			return fmt.Errorf("set %q: %w", key, ErrQuotaExceeded)
		}
	}
	m.data[key] = value
	if key != probeKey {
		m.Writes++
	}
	return nil
}

func (m *MemoryMedium) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Unavailable {
		return ErrMediumUnavailable
	}
	delete(m.data, key)
	return nil
}

// Raw returns the stored value for key, for inspection in tests.
func (m *MemoryMedium) Raw(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

// Put stores a raw value, bypassing quota checks.
func (m *MemoryMedium) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}
