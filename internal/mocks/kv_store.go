package mocks

import (
	"context"
	"sync"

	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
)

// MockKeyValueStore implements store.KeyValueStore for testing.
// With no function fields set it behaves as an empty store that accepts and
// discards every write.
type MockKeyValueStore struct {
	GetFn     func(ctx context.Context, key string) ([]byte, error)
	SetFn     func(ctx context.Context, key string, value []byte) error
	SetManyFn func(ctx context.Context, entries map[string][]byte) error
	DeleteFn  func(ctx context.Context, key string) error

	// Err is returned by every method whose function field is nil.
	Err error

	mu       sync.Mutex
	SetKeys  []string
	GetKeys  []string
	SetCalls int
}

var _ store.KeyValueStore = (*MockKeyValueStore)(nil)

// Get implements store.KeyValueStore
func (m *MockKeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	m.GetKeys = append(m.GetKeys, key)
	m.mu.Unlock()

	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return nil, store.ErrKeyNotFound
}

// Set implements store.KeyValueStore
func (m *MockKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	m.SetKeys = append(m.SetKeys, key)
	m.SetCalls++
	m.mu.Unlock()

	if m.SetFn != nil {
		return m.SetFn(ctx, key, value)
	}
	return m.Err
}

// SetMany implements store.KeyValueStore
func (m *MockKeyValueStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	m.mu.Lock()
	for key := range entries {
		m.SetKeys = append(m.SetKeys, key)
	}
	m.SetCalls++
	m.mu.Unlock()

	if m.SetManyFn != nil {
		return m.SetManyFn(ctx, entries)
	}
	return m.Err
}

// Delete implements store.KeyValueStore
func (m *MockKeyValueStore) Delete(ctx context.Context, key string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key)
	}
	return m.Err
}

// Writes returns how many Set and SetMany calls were made.
func (m *MockKeyValueStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SetCalls
}

// MockDeviceStore implements store.DeviceStore by handing out the same
// key-value store for every device.
type MockDeviceStore struct {
	KV       store.KeyValueStore
	CloseErr error

	mu      sync.Mutex
	Devices []string
}

var _ store.DeviceStore = (*MockDeviceStore)(nil)

// NewMockDeviceStore wraps kv.
func NewMockDeviceStore(kv store.KeyValueStore) *MockDeviceStore {
	return &MockDeviceStore{KV: kv}
}

// ForDevice implements store.DeviceStore
func (m *MockDeviceStore) ForDevice(deviceID string) store.KeyValueStore {
	m.mu.Lock()
	m.Devices = append(m.Devices, deviceID)
	m.mu.Unlock()
	return m.KV
}

// Close implements store.DeviceStore
func (m *MockDeviceStore) Close() error {
	return m.CloseErr
}
