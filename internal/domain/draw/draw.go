// Package draw implements a random pick over a fixed catalog that does not
// repeat an item until every item of the catalog has been drawn once.
package draw

import (
	"errors"
	"math/rand"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
)

// ErrEmptyCatalog is returned when there is nothing to draw from.
var ErrEmptyCatalog = errors.New("catalog is empty")

// Source is the random source used for picks. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Draw picks one item from catalog whose ID is not in used.
//
// When every catalog ID is already used the cycle restarts: used is treated as
// empty and the whole catalog is available again. This happens at most once per
// call. The returned set is the used set for the caller to persist: it contains
// the picked ID and only IDs present in catalog.
func Draw[T domain.Identifiable](catalog []T, used []int, rng Source) (T, []int, error) {
	var zero T
	if len(catalog) == 0 {
		return zero, nil, ErrEmptyCatalog
	}

	usedSet := make(map[int]struct{}, len(used))
	for _, id := range used {
		usedSet[id] = struct{}{}
	}

	available := make([]T, 0, len(catalog))
	for _, item := range catalog {
		if _, ok := usedSet[item.GetID()]; !ok {
			available = append(available, item)
		}
	}

	if len(available) == 0 {
		usedSet = map[int]struct{}{}
		available = append(available, catalog...)
	}

	picked := available[rng.Intn(len(available))]
	usedSet[picked.GetID()] = struct{}{}

	// Keep catalog order so the persisted set is deterministic and never holds
	// IDs the catalog does not know.
	nextUsed := make([]int, 0, len(usedSet))
	for _, item := range catalog {
		if _, ok := usedSet[item.GetID()]; ok {
			nextUsed = append(nextUsed, item.GetID())
		}
	}

	return picked, nextUsed, nil
}

// NewSource returns a Source seeded with seed.
func NewSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}
