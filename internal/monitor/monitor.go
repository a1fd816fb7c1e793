package monitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"vault-cap-monitor/internal/logfields"
	"vault-cap-monitor/internal/metrics"
	"vault-cap-monitor/internal/notify"
	"vault-cap-monitor/internal/units"
)

// VaultReader is the contract read capability the monitor samples each cycle.
type VaultReader interface {
	DepositCap(ctx context.Context) (*big.Int, error)
	TotalAssets(ctx context.Context) units.Reading
	MaxTokenSupply(ctx context.Context) units.Reading
}

// Dispatcher delivers change events. It must not fail the caller.
type Dispatcher interface {
	Notify(ctx context.Context, event notify.ChangeEvent)
}

// Service samples the vault at a fixed interval and dispatches cap changes.
type Service struct {
	reader     VaultReader
	dispatcher Dispatcher
	interval   time.Duration
	vault      string
	symbols    notify.Symbols
	clock      clockwork.Clock
	recorder   metrics.Recorder
	newID      func() string

	state CapState
}

// Option customises a Service.
type Option func(*Service)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Service) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithVaultAddress labels events and log lines with the monitored address.
func WithVaultAddress(addr string) Option {
	return func(s *Service) { s.vault = addr }
}

// WithSymbols sets the unit labels attached to change events.
func WithSymbols(sym notify.Symbols) Option {
	return func(s *Service) { s.symbols = sym }
}

// NewService builds a monitoring service.
func NewService(reader VaultReader, dispatcher Dispatcher, interval time.Duration, opts ...Option) (*Service, error) {
	if reader == nil {
		return nil, errors.New("vault reader is required")
	}
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("check interval must be positive")
	}

	s := &Service{
		reader:     reader,
		dispatcher: dispatcher,
		interval:   interval,
		clock:      clockwork.NewRealClock(),
		recorder:   metrics.NoopRecorder{},
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// State returns the current cap state.
func (s *Service) State() CapState { return s.state }

// Run performs an immediate check, then one check per interval until ctx is cancelled.
// A failed check is logged and never stops the loop.
func (s *Service) Run(ctx context.Context) error {
	s.runCycle(ctx)

	for {
		timer := s.clock.NewTimer(s.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.Chan():
			s.runCycle(ctx)
		}
	}
}

func (s *Service) runCycle(ctx context.Context) {
	if err := s.Check(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("Vault check failed", logfields.Vault(s.vault), logfields.Error(err))
	}
}

// Check runs a single sampling cycle.
func (s *Service) Check(ctx context.Context) error {
	start := s.clock.Now()
	result, err := s.check(ctx)
	elapsed := s.clock.Since(start)
	s.recorder.ObserveCycle(result, elapsed)
	slog.Debug("Cycle finished",
		slog.String("result", string(result)),
		logfields.DurationMS(float64(elapsed)/float64(time.Millisecond)))
	return err
}

func (s *Service) check(ctx context.Context) (metrics.CycleResult, error) {
	raw, err := s.reader.DepositCap(ctx)
	if err != nil {
		return metrics.CycleFailed, fmt.Errorf("fetch deposit cap: %w", err)
	}

	totalAssets := s.reader.TotalAssets(ctx)
	if !totalAssets.IsAvailable() {
		s.recorder.IncDegradedRead("totalAssets")
		slog.Warn("Total assets unavailable", logfields.Error(totalAssets.Err()))
	}
	maxSupply := s.reader.MaxTokenSupply(ctx)
	if !maxSupply.IsAvailable() {
		s.recorder.IncDegradedRead("maxTokenSupply")
		slog.Warn("Max token supply unavailable", logfields.Error(maxSupply.Err()))
	}

	snap := NewSnapshot(raw, totalAssets, maxSupply, s.clock.Now())
	s.recorder.SetDepositCap(snap.DepositCap.InexactFloat64())

	slog.Info("Checked vault",
		logfields.DepositCap(snap.DepositCap.String()),
		logfields.TotalAssets(totalAssets.String()),
		logfields.MaxTokenSupply(maxSupply.String()))

	decision := Evaluate(snap, s.state)
	switch decision.Outcome {
	case Initialization:
		s.state.Set(snap.DepositCapRaw)
		slog.Info("Initial cap detected", logfields.DepositCap(snap.DepositCap.String()))
		return metrics.CycleInitialized, nil
	case NoChange:
		return metrics.CycleUnchanged, nil
	}

	event := decision.Event
	event.ID = s.newID()
	event.VaultAddress = s.vault
	event.Symbols = s.symbols
	s.dispatcher.Notify(ctx, event)

	s.state.Set(snap.DepositCapRaw)
	return metrics.CycleChanged, nil
}
