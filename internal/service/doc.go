// Package service provides the application services: timers, meditation
// sessions, predictions, settings and the device profile.
//
// Services take a device id on every call and work on that device's key-value
// bucket. Validation failures abort before anything is written. Storage
// failures are logged and swallowed: the caller gets the in-memory result, the
// same optimistic behavior a device app shows when its local storage fails.
package service
