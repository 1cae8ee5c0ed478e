package document

import (
	"context"
	"sort"
	"sync"
)

// mockStore implements the consumer interface for tests. It keeps JSON
// payloads and set members in memory unless a fn override is installed.
type mockStore struct {
	mu      sync.Mutex
	json    map[string][]byte
	sets    map[string]map[string]bool
	jsonSet func(ctx context.Context, key, path string, data []byte) error
	jsonGet func(ctx context.Context, key string, paths ...string) ([]byte, error)
}

func newMockStore() *mockStore {
	return &mockStore{
		json: make(map[string][]byte),
		sets: make(map[string]map[string]bool),
	}
}

func (m *mockStore) JSONSet(ctx context.Context, key, path string, data []byte) error {
	if m.jsonSet != nil {
		return m.jsonSet(ctx, key, path, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.json[key] = data
	return nil
}

func (m *mockStore) JSONGet(ctx context.Context, key string, paths ...string) ([]byte, error) {
	if m.jsonGet != nil {
		return m.jsonGet(ctx, key, paths...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if data, ok := m.json[key]; ok {
		return data, nil
	}
	return nil, errKeyNotFound()
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.json, key)
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.json[key]
	return ok, nil
}

func (m *mockStore) SAdd(ctx context.Context, key string, members ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sets[key] == nil {
		m.sets[key] = make(map[string]bool)
	}
	for _, member := range members {
		m.sets[key][member] = true
	}
	return nil
}

func (m *mockStore) SRem(ctx context.Context, key string, members ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, member := range members {
		delete(m.sets[key], member)
	}
	return nil
}

func (m *mockStore) SMembers(ctx context.Context, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	members := make([]string, 0, len(m.sets[key]))
	for member := range m.sets[key] {
		members = append(members, member)
	}
	sort.Strings(members)
	return members, nil
}

func (m *mockStore) SCard(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.sets[key])), nil
}
