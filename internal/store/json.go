package store

import (
	"context"
	"encoding/json"
	"errors"
)

// GetJSON loads key and decodes it into v.
// Returns ErrKeyNotFound when the key is absent and a StoreError wrapping
// ErrCorruptValue when the stored document does not decode into v.
func GetJSON(ctx context.Context, kv KeyValueStore, key string, v any) error {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return err
		}
		return NewStoreError(key, "get", "failed to read value", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return NewStoreError(key, "decode", err.Error(), ErrCorruptValue)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func SetJSON(ctx context.Context, kv KeyValueStore, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return NewStoreError(key, "encode", "failed to encode value", err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return NewStoreError(key, "set", "failed to write value", err)
	}
	return nil
}

// EncodeJSON encodes every value of values for use with SetMany.
func EncodeJSON(values map[string]any) (map[string][]byte, error) {
	entries := make(map[string][]byte, len(values))
	for key, v := range values {
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, NewStoreError(key, "encode", "failed to encode value", err)
		}
		entries[key] = raw
	}
	return entries, nil
}
