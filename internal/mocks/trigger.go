package mocks

import (
	"context"
	"sync"

	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/notify"
)

// MockTrigger implements notify.Trigger and records every signal it receives.
type MockTrigger struct {
	FireFn func(ctx context.Context, signal notify.Signal) error
	Err    error

	mu      sync.Mutex
	signals []notify.Signal
}

var _ notify.Trigger = (*MockTrigger)(nil)

// Fire implements notify.Trigger
func (m *MockTrigger) Fire(ctx context.Context, signal notify.Signal) error {
	m.mu.Lock()
	m.signals = append(m.signals, signal)
	m.mu.Unlock()

	if m.FireFn != nil {
		return m.FireFn(ctx, signal)
	}
	return m.Err
}

// Signals returns a copy of the recorded signals.
func (m *MockTrigger) Signals() []notify.Signal {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]notify.Signal, len(m.signals))
	copy(out, m.signals)
	return out
}

// Count returns how many recorded signals are of kind.
func (m *MockTrigger) Count(kind notify.SignalKind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, s := range m.signals {
		if s.Kind == kind {
			n++
		}
	}
	return n
}
