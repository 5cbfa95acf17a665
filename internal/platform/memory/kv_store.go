// Package memory provides an in-process implementation of store.DeviceStore.
// It backs the "memory" database driver and the service tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
)

// KVStore keeps every device bucket in a map guarded by a single mutex.
type KVStore struct {
	mu      sync.RWMutex
	devices map[string]map[string][]byte
}

var _ store.DeviceStore = (*KVStore)(nil)

// NewKVStore creates an empty in-memory store.
func NewKVStore() *KVStore {
	return &KVStore{devices: make(map[string]map[string][]byte)}
}

// ForDevice returns the bucket of deviceID.
func (s *KVStore) ForDevice(deviceID string) store.KeyValueStore {
	return &deviceKV{parent: s, deviceID: deviceID}
}

// Close is a no-op.
func (s *KVStore) Close() error {
	return nil
}

// Len reports how many keys deviceID has stored.
func (s *KVStore) Len(deviceID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.devices[deviceID])
}

type deviceKV struct {
	parent   *KVStore
	deviceID string
}

func (d *deviceKV) check(key string) error {
	if err := store.ValidateKey(d.deviceID); err != nil {
		return fmt.Errorf("device id: %w", err)
	}
	return store.ValidateKey(key)
}

func (d *deviceKV) Get(ctx context.Context, key string) ([]byte, error) {
	if err := d.check(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d.parent.mu.RLock()
	defer d.parent.mu.RUnlock()

	value, ok := d.parent.devices[d.deviceID][key]
	if !ok {
		return nil, store.ErrKeyNotFound
	}
	return clone(value), nil
}

func (d *deviceKV) Set(ctx context.Context, key string, value []byte) error {
	return d.SetMany(ctx, map[string][]byte{key: value})
}

func (d *deviceKV) SetMany(ctx context.Context, entries map[string][]byte) error {
	for key := range entries {
		if err := d.check(key); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d.parent.mu.Lock()
	defer d.parent.mu.Unlock()

	bucket, ok := d.parent.devices[d.deviceID]
	if !ok {
		bucket = make(map[string][]byte, len(entries))
		d.parent.devices[d.deviceID] = bucket
	}
	for key, value := range entries {
		bucket[key] = clone(value)
	}
	return nil
}

func (d *deviceKV) Delete(ctx context.Context, key string) error {
	if err := d.check(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	d.parent.mu.Lock()
	defer d.parent.mu.Unlock()

	delete(d.parent.devices[d.deviceID], key)
	return nil
}

func clone(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
