package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/countdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (p *fakePublisher) Publish(subject string, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.subjects = append(p.subjects, subject)
	p.payloads = append(p.payloads, data)
	return nil
}

type triggerFunc func(ctx context.Context, s Signal) error

func (f triggerFunc) Fire(ctx context.Context, s Signal) error { return f(ctx, s) }

func testSignal(kind SignalKind) Signal {
	return Signal{
		DeviceID:  "device-1",
		Kind:      kind,
		Countdown: countdown.KindMeditation,
		Message:   "Time is up",
		At:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestNATSTrigger_Fire(t *testing.T) {
	pub := &fakePublisher{}
	trigger := NewNATSTrigger(pub, "test.signals", nil)

	require.NoError(t, trigger.Fire(context.Background(), testSignal(SignalNotification)))

	require.Len(t, pub.subjects, 1)
	assert.Equal(t, "test.signals.notification", pub.subjects[0])

	var decoded Signal
	require.NoError(t, json.Unmarshal(pub.payloads[0], &decoded))
	assert.Equal(t, testSignal(SignalNotification), decoded)
}

func TestNATSTrigger_DefaultPrefix(t *testing.T) {
	trigger := NewNATSTrigger(&fakePublisher{}, "", nil)
	assert.Equal(t, "minspirit.signals.haptic", trigger.Subject(SignalHaptic))
	assert.NoError(t, trigger.Close())
}

func TestNATSTrigger_PublishError(t *testing.T) {
	pubErr := errors.New("nats: connection closed")
	trigger := NewNATSTrigger(&fakePublisher{err: pubErr}, "p", nil)

	err := trigger.Fire(context.Background(), testSignal(SignalSound))
	assert.ErrorIs(t, err, pubErr)
	assert.Contains(t, err.Error(), "p.sound")
}

func TestNATSTrigger_CancelledContext(t *testing.T) {
	pub := &fakePublisher{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewNATSTrigger(pub, "p", nil).Fire(ctx, testSignal(SignalSound))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, pub.subjects)
}

func TestLogTrigger_Fire(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	require.NoError(t, NewLogTrigger(logger).Fire(context.Background(), testSignal(SignalHaptic)))
	assert.Contains(t, buf.String(), `"kind":"haptic"`)
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
}

func TestMulti_FiresAllAndJoinsErrors(t *testing.T) {
	first := errors.New("first")
	var calls int
	m := Multi{
		triggerFunc(func(context.Context, Signal) error { calls++; return first }),
		triggerFunc(func(context.Context, Signal) error { calls++; return nil }),
	}

	err := m.Fire(context.Background(), testSignal(SignalSound))
	assert.ErrorIs(t, err, first)
	assert.Equal(t, 2, calls)

	assert.NoError(t, Multi{}.Fire(context.Background(), testSignal(SignalSound)))
}
