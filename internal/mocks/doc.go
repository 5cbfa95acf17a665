// Package mocks provides centralized mock implementations for testing.
//
// Each mock is a struct with function fields for every interface method, plus
// default return values used when a function field is nil. Mocks that are
// called concurrently record their calls behind a mutex.
//
// Usage:
//
//	kv := &mocks.MockKeyValueStore{
//	    SetFn: func(ctx context.Context, key string, value []byte) error {
//	        return errors.New("disk full")
//	    },
//	}
//	devices := mocks.NewMockDeviceStore(kv)
package mocks
