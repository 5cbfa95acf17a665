package runner

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Cipollinka/MinSpiritCountdown/internal/domain"
	"github.com/Cipollinka/MinSpiritCountdown/internal/domain/countdown"
	"github.com/Cipollinka/MinSpiritCountdown/internal/events"
	"github.com/Cipollinka/MinSpiritCountdown/internal/platform/logger"
	"github.com/Cipollinka/MinSpiritCountdown/internal/store"
	"github.com/jonboulle/clockwork"
)

// DefaultMeditationMinutes is the length of a meditation countdown before any
// session is selected.
const DefaultMeditationMinutes = 10

var (
	// ErrCountdownRunning is returned when a new duration is selected while the
	// countdown runs and the caller did not force the change.
	ErrCountdownRunning = errors.New("countdown is running, stop it first")

	// ErrRunnerStopped is returned by operations on a runner that was shut down.
	ErrRunnerStopped = errors.New("countdown runner is stopped")
)

// TabSource provides the timer tab durations of a device.
type TabSource interface {
	Tabs(ctx context.Context, deviceID string) (domain.TimerTabs, error)
}

// RunnerConfig holds configuration for the countdown runner
type RunnerConfig struct {
	// TickInterval is the wall time of one countdown second.
	// If zero, defaults to one second
	TickInterval time.Duration
}

// DefaultRunnerConfig returns a RunnerConfig with the real-time tick interval
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{TickInterval: time.Second}
}

// Snapshot is the observable state of one countdown.
type Snapshot struct {
	DeviceID         string         `json:"device_id"`
	Kind             countdown.Kind `json:"kind"`
	Minutes          int            `json:"minutes"`
	RemainingSeconds int            `json:"remaining_seconds"`
	Running          bool           `json:"running"`
	Display          string         `json:"display"`
}

type sessionKey struct {
	deviceID string
	kind     countdown.Kind
}

type session struct {
	state   countdown.State
	minutes int
	// gen changes whenever the ticking goroutine is replaced or stopped, so a
	// goroutine that lost the race never applies a stale tick.
	gen  uint64
	stop context.CancelFunc
}

func (s *session) halt() {
	if s.stop != nil {
		s.stop()
		s.stop = nil
	}
	s.gen++
}

// Runner owns the live countdowns of every device.
type Runner struct {
	clock   clockwork.Clock
	emitter events.EventEmitter
	tabs    TabSource
	config  RunnerConfig
	logger  *slog.Logger

	mu       sync.Mutex
	sessions map[sessionKey]*session

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner creates a Runner. tabs supplies the default timer duration; a nil
// clock selects the real clock.
func NewRunner(
	clock clockwork.Clock,
	emitter events.EventEmitter,
	tabs TabSource,
	config RunnerConfig,
	log *slog.Logger,
) (*Runner, error) {
	if emitter == nil {
		return nil, errors.New("countdown runner: emitter cannot be nil")
	}
	if tabs == nil {
		return nil, errors.New("countdown runner: tab source cannot be nil")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	if log == nil {
		log = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Runner{
		clock:    clock,
		emitter:  emitter,
		tabs:     tabs,
		config:   config,
		logger:   log.With(slog.String("component", "countdown_runner")),
		sessions: make(map[sessionKey]*session),
		ctx:      ctx,
		cancel:   cancel,
	}, nil
}

// defaultMinutes is the duration a countdown of kind shows before anything
// is selected and after a reset.
func (r *Runner) defaultMinutes(ctx context.Context, deviceID string, kind countdown.Kind) int {
	if kind == countdown.KindMeditation {
		return DefaultMeditationMinutes
	}
	tabs, err := r.tabs.Tabs(ctx, deviceID)
	if err != nil {
		logger.FromContextOrDefault(ctx, r.logger).Warn("cannot load timer tabs, using defaults",
			slog.String("device_id", deviceID),
			slog.String("error", err.Error()))
		tabs = domain.DefaultTimerTabs
	}
	return tabs.Default()
}

// acquire returns the session for k with r.mu held, creating it at the
// default duration. The caller must not hold r.mu and must unlock it.
func (r *Runner) acquire(ctx context.Context, k sessionKey) *session {
	r.mu.Lock()
	if s, ok := r.sessions[k]; ok {
		return s
	}
	r.mu.Unlock()

	minutes := r.defaultMinutes(ctx, k.deviceID, k.kind)
	state, _ := countdown.New(minutes)

	r.mu.Lock()
	if s, ok := r.sessions[k]; ok {
		return s
	}
	s := &session{state: state, minutes: minutes}
	r.sessions[k] = s
	return s
}

// release forgets s once it shows nothing a fresh session would not: stopped
// with the full default duration left. The caller must hold r.mu.
func (r *Runner) release(k sessionKey, s *session, defaultMinutes int) {
	if s.state.Running || s.minutes != defaultMinutes || s.state.RemainingSeconds != defaultMinutes*60 {
		return
	}
	if r.sessions[k] == s {
		s.halt()
		delete(r.sessions, k)
	}
}

func validateKey(deviceID string, kind countdown.Kind) (sessionKey, error) {
	if err := store.ValidateKey(deviceID); err != nil {
		return sessionKey{}, domain.ErrEmptyDeviceID
	}
	if _, err := countdown.ParseKind(string(kind)); err != nil {
		return sessionKey{}, err
	}
	return sessionKey{deviceID: deviceID, kind: kind}, nil
}

func (r *Runner) snapshot(k sessionKey, s *session) Snapshot {
	return Snapshot{
		DeviceID:         k.deviceID,
		Kind:             k.kind,
		Minutes:          s.minutes,
		RemainingSeconds: s.state.RemainingSeconds,
		Running:          s.state.Running,
		Display:          s.state.Display(),
	}
}

// Snapshot returns the current state of the countdown. A countdown nobody has
// touched is reported at its default duration without being tracked.
func (r *Runner) Snapshot(ctx context.Context, deviceID string, kind countdown.Kind) (Snapshot, error) {
	k, err := validateKey(deviceID, kind)
	if err != nil {
		return Snapshot{}, err
	}

	r.mu.Lock()
	if s, ok := r.sessions[k]; ok {
		snap := r.snapshot(k, s)
		r.mu.Unlock()
		return snap, nil
	}
	r.mu.Unlock()

	minutes := r.defaultMinutes(ctx, k.deviceID, k.kind)
	state, _ := countdown.New(minutes)
	return r.snapshot(k, &session{state: state, minutes: minutes}), nil
}

// Select stops the countdown and resets it to minutes. A running countdown is
// only replaced when force is set.
func (r *Runner) Select(
	ctx context.Context,
	deviceID string,
	kind countdown.Kind,
	minutes int,
	force bool,
) (Snapshot, error) {
	k, err := validateKey(deviceID, kind)
	if err != nil {
		return Snapshot{}, err
	}
	return r.replace(ctx, k, minutes, force, r.defaultMinutes(ctx, deviceID, kind))
}

// Reset stops the countdown and restores the default duration of its kind.
func (r *Runner) Reset(ctx context.Context, deviceID string, kind countdown.Kind) (Snapshot, error) {
	k, err := validateKey(deviceID, kind)
	if err != nil {
		return Snapshot{}, err
	}
	defaultMinutes := r.defaultMinutes(ctx, deviceID, kind)
	return r.replace(ctx, k, defaultMinutes, true, defaultMinutes)
}

func (r *Runner) replace(
	ctx context.Context,
	k sessionKey,
	minutes int,
	force bool,
	defaultMinutes int,
) (Snapshot, error) {
	if err := r.ctx.Err(); err != nil {
		return Snapshot{}, ErrRunnerStopped
	}
	next, err := countdown.New(minutes)
	if err != nil {
		return Snapshot{}, err
	}

	r.mu.Lock()
	s, ok := r.sessions[k]
	if ok && s.state.Running && !force {
		r.mu.Unlock()
		return Snapshot{}, ErrCountdownRunning
	}
	if !ok {
		s = &session{}
		r.sessions[k] = s
	}
	s.halt()
	s.state = next
	s.minutes = minutes
	snap := r.snapshot(k, s)
	r.release(k, s, defaultMinutes)
	r.mu.Unlock()

	r.emit(ctx, events.TypeReset, k, next)
	return snap, nil
}

// Start runs the countdown. Starting a running countdown is a no-op; starting
// one with no time left returns countdown.ErrNothingToCount.
func (r *Runner) Start(ctx context.Context, deviceID string, kind countdown.Kind) (Snapshot, error) {
	k, err := validateKey(deviceID, kind)
	if err != nil {
		return Snapshot{}, err
	}
	if err := r.ctx.Err(); err != nil {
		return Snapshot{}, ErrRunnerStopped
	}

	s := r.acquire(ctx, k)
	if err := r.ctx.Err(); err != nil {
		r.release(k, s, s.minutes)
		r.mu.Unlock()
		return Snapshot{}, ErrRunnerStopped
	}
	if s.state.Running {
		snap := r.snapshot(k, s)
		r.mu.Unlock()
		return snap, nil
	}

	next, err := s.state.Start()
	if err != nil {
		r.mu.Unlock()
		return Snapshot{}, err
	}

	s.halt()
	s.state = next
	tickCtx, stop := context.WithCancel(r.ctx)
	s.stop = stop
	r.wg.Add(1)
	go r.run(tickCtx, k, s.gen)

	snap := r.snapshot(k, s)
	r.mu.Unlock()

	r.emit(ctx, events.TypeStarted, k, next)
	return snap, nil
}

// Pause stops the countdown and keeps the remaining time.
func (r *Runner) Pause(ctx context.Context, deviceID string, kind countdown.Kind) (Snapshot, error) {
	k, err := validateKey(deviceID, kind)
	if err != nil {
		return Snapshot{}, err
	}
	defaultMinutes := r.defaultMinutes(ctx, deviceID, kind)

	r.mu.Lock()
	s, ok := r.sessions[k]
	if !ok {
		r.mu.Unlock()
		return r.Snapshot(ctx, deviceID, kind)
	}
	if !s.state.Running {
		snap := r.snapshot(k, s)
		r.mu.Unlock()
		return snap, nil
	}
	s.halt()
	s.state = s.state.Pause()
	state := s.state
	snap := r.snapshot(k, s)
	r.release(k, s, defaultMinutes)
	r.mu.Unlock()

	r.emit(ctx, events.TypePaused, k, state)
	return snap, nil
}

// Shutdown stops every running countdown, waits for their goroutines and
// drops all sessions.
func (r *Runner) Shutdown() {
	r.cancel()

	r.mu.Lock()
	for _, s := range r.sessions {
		s.halt()
	}
	clear(r.sessions)
	r.mu.Unlock()

	r.wg.Wait()
	r.logger.Info("countdown runner stopped")
}

// run feeds clock ticks into the reducer until the countdown stops.
func (r *Runner) run(ctx context.Context, k sessionKey, gen uint64) {
	defer r.wg.Done()

	ticker := r.clock.NewTicker(r.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			eventType, state, done := r.tick(k, gen)
			if eventType != "" {
				r.emit(r.ctx, eventType, k, state)
			}
			if done {
				return
			}
		}
	}
}

// tick applies one reducer step if gen still owns the session.
func (r *Runner) tick(k sessionKey, gen uint64) (string, countdown.State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[k]
	if !ok || s.gen != gen || !s.state.Running {
		return "", countdown.State{}, true
	}

	result := s.state.Tick()
	s.state = result.State
	switch {
	case result.Expired:
		// kept at 00:00 until reset or replaced
		s.halt()
		return events.TypeExpired, result.State, true
	case result.Decremented:
		return events.TypeTick, result.State, false
	default:
		return "", result.State, false
	}
}

func (r *Runner) emit(ctx context.Context, eventType string, k sessionKey, state countdown.State) {
	event := events.NewCountdownEvent(eventType, k.deviceID, k.kind, state, r.clock.Now())
	if err := r.emitter.EmitEvent(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, r.logger).Warn("countdown event handler failed",
			slog.String("device_id", k.deviceID),
			slog.String("kind", string(k.kind)),
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}
