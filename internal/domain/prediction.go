package domain

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Prediction is a single entry of the prediction catalog.
type Prediction struct {
	ID   int    `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// GetID implements Identifiable.
func (p Prediction) GetID() int { return p.ID }

//go:embed catalog.yaml
var catalogYAML []byte

type catalogFile struct {
	Predictions []Prediction `yaml:"predictions"`
}

// ParseCatalog decodes a YAML prediction catalog and checks that it is
// non-empty with unique, positive IDs and non-empty texts.
func ParseCatalog(data []byte) ([]Prediction, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode prediction catalog: %w", err)
	}
	if len(file.Predictions) == 0 {
		return nil, fmt.Errorf("%w: prediction catalog is empty", ErrValidation)
	}

	seen := make(map[int]struct{}, len(file.Predictions))
	for _, p := range file.Predictions {
		if p.ID <= 0 {
			return nil, fmt.Errorf("%w: prediction ID %d must be positive", ErrValidation, p.ID)
		}
		if p.Text == "" {
			return nil, fmt.Errorf("%w: prediction %d has no text", ErrValidation, p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate prediction ID %d", ErrValidation, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return file.Predictions, nil
}

// Catalog returns a fresh copy of the built-in prediction catalog.
// The embedded file is validated at init, so Catalog never fails.
func Catalog() []Prediction {
	out := make([]Prediction, len(builtinCatalog))
	copy(out, builtinCatalog)
	return out
}

var builtinCatalog = mustParseCatalog(catalogYAML)

func mustParseCatalog(data []byte) []Prediction {
	predictions, err := ParseCatalog(data)
	if err != nil {
		// ALLOW-PANIC: the embedded catalog is part of the build
		panic(err)
	}
	return predictions
}

// PredictionShareMessage is the text handed to the platform share affordance.
func PredictionShareMessage(text string) (string, error) {
	if text == "" {
		return "", ErrNoPrediction
	}
	return fmt.Sprintf("My generated prediction is '%s' I found it in the app %s!", text, AppName), nil
}

// AppName is the public product name used in share texts.
const AppName = "MinSpirit: Countdown of Time"

// AppShareMessage is the invitation text shared from the settings screen.
const AppShareMessage = "Join " + AppName + "!\n"
