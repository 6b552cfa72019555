package config

import (
	"sync"

	"github.com/spf13/cast"
)

// Memory is a domain.Store that keeps values in memory only.
type Memory struct {
	mu     sync.RWMutex
	values map[string]any
}

func NewMemory(values map[string]any) *Memory {
	m := &Memory{values: make(map[string]any, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

func (m *Memory) GetString(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cast.ToString(m.values[key])
}

func (m *Memory) GetInt(key string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return cast.ToInt(m.values[key])
}

func (m *Memory) GetStringSlice(key string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	switch v := m.values[key].(type) {
	case nil:
		return nil
	case []string:
		return append([]string(nil), v...)
	default:
		return cast.ToStringSlice(v)
	}
}

func (m *Memory) Set(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
