// Package domain contains the core entities of MinSpirit: timers, meditation
// sessions, predictions, user settings and the user profile, together with the
// validation rules and list operations shared by every storage backend and
// delivery mechanism.
package domain
