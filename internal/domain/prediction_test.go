package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestCatalog(t *testing.T) {
	t.Parallel()

	catalog := Catalog()
	if len(catalog) != 30 {
		t.Fatalf("Expected 30 predictions, got %d", len(catalog))
	}
	if catalog[0].ID != 1 || catalog[0].Text != "A small shift today will lead to great change tomorrow." {
		t.Errorf("Unexpected first prediction %+v", catalog[0])
	}

	catalog[0].Text = "changed"
	if Catalog()[0].Text == "changed" {
		t.Error("Catalog must return a copy")
	}
}

func TestParseCatalog_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"empty":        "predictions: []",
		"duplicate id": "predictions:\n  - {id: 1, text: a}\n  - {id: 1, text: b}",
		"missing text": "predictions:\n  - {id: 1}",
		"bad id":       "predictions:\n  - {id: 0, text: a}",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(doc)); !errors.Is(err, ErrValidation) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}

	if _, err := ParseCatalog([]byte("predictions: [")); err == nil {
		t.Error("Expected decode error for malformed YAML")
	}
}

func TestPredictionShareMessage(t *testing.T) {
	t.Parallel()

	msg, err := PredictionShareMessage("Breathe.")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	want := "My generated prediction is 'Breathe.' I found it in the app MinSpirit: Countdown of Time!"
	if msg != want {
		t.Errorf("Expected %q, got %q", want, msg)
	}

	if _, err := PredictionShareMessage(""); !errors.Is(err, ErrNoPrediction) {
		t.Errorf("Expected ErrNoPrediction, got %v", err)
	}

	if !strings.HasPrefix(AppShareMessage, "Join MinSpirit") {
		t.Errorf("Unexpected app share message %q", AppShareMessage)
	}
}
