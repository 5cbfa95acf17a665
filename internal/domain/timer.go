package domain

import "strings"

// Duration bounds accepted for timers, meditation sessions and timer tabs.
const (
	MinMinutes = 1
	MaxMinutes = 180
)

// Timer is a user-defined countdown preset.
type Timer struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Minutes int    `json:"minutes"`
}

// GetID implements Identifiable.
func (t Timer) GetID() int { return t.ID }

// NewTimer validates the input and returns a timer with the ID that follows
// the highest ID in existing.
func NewTimer(existing []Timer, title string, minutes int) (Timer, error) {
	t := Timer{
		ID:      NextID(existing),
		Title:   strings.TrimSpace(title),
		Minutes: minutes,
	}
	if err := t.Validate(); err != nil {
		return Timer{}, err
	}
	return t, nil
}

// Validate checks the title and the duration range.
func (t Timer) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}
	return ValidateMinutes(t.Minutes)
}

// Meditation is a meditation session preset. It has no title.
type Meditation struct {
	ID      int `json:"id"`
	Minutes int `json:"minutes"`
}

// GetID implements Identifiable.
func (m Meditation) GetID() int { return m.ID }

// NewMeditation validates minutes and assigns the next ID after existing.
func NewMeditation(existing []Meditation, minutes int) (Meditation, error) {
	if err := ValidateMinutes(minutes); err != nil {
		return Meditation{}, err
	}
	return Meditation{ID: NextID(existing), Minutes: minutes}, nil
}

// ValidateMinutes reports ErrInvalidMinutes unless minutes is in [MinMinutes, MaxMinutes].
func ValidateMinutes(minutes int) error {
	if minutes < MinMinutes || minutes > MaxMinutes {
		return ErrInvalidMinutes
	}
	return nil
}
