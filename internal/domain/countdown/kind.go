package countdown

import (
	"fmt"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
)

// Kind names one of the two independent countdowns a device owns.
type Kind string

const (
	KindTimer      Kind = "timer"
	KindMeditation Kind = "meditation"
)

// Kinds lists every countdown kind.
var Kinds = []Kind{KindTimer, KindMeditation}

// ParseKind validates a countdown kind name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindTimer, KindMeditation:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: unknown countdown kind %q", domain.ErrValidation, s)
}
