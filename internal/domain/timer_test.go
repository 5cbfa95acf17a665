package domain

import (
	"errors"
	"testing"
)

func TestNewTimer(t *testing.T) {
	t.Parallel()

	timer, err := NewTimer(nil, "Focus", 25)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if timer.ID != 1 {
		t.Errorf("Expected ID 1 on empty list, got %d", timer.ID)
	}

	existing := []Timer{{ID: 3, Title: "Deep work", Minutes: 90}}
	timer, err = NewTimer(existing, "  Focus  ", 25)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if timer.ID != 4 {
		t.Errorf("Expected ID 4, got %d", timer.ID)
	}
	if timer.Title != "Focus" {
		t.Errorf("Expected trimmed title, got %q", timer.Title)
	}
}

func TestNewTimer_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		title   string
		minutes int
		wantErr error
	}{
		{"empty title", "", 10, ErrEmptyTitle},
		{"blank title", "   ", 10, ErrEmptyTitle},
		{"zero minutes", "Nap", 0, ErrInvalidMinutes},
		{"too long", "Nap", 181, ErrInvalidMinutes},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewTimer(nil, tc.title, tc.minutes)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Expected error to wrap ErrValidation, got %v", err)
			}
		})
	}
}

func TestNewMeditation(t *testing.T) {
	t.Parallel()

	existing := []Meditation{{ID: 2, Minutes: 10}, {ID: 7, Minutes: 5}}
	m, err := NewMeditation(existing, 15)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if m.ID != 8 || m.Minutes != 15 {
		t.Errorf("Unexpected meditation %+v", m)
	}

	if _, err := NewMeditation(existing, 0); !errors.Is(err, ErrInvalidMinutes) {
		t.Errorf("Expected ErrInvalidMinutes, got %v", err)
	}
}
