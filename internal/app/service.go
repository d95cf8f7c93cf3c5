// Package app provides the application layer that orchestrates business logic.
// It fetches snapshots from the record store, runs the analysis engine over
// them, applies assignment policies and dispatches notifications. The CLI and
// the HTTP server are thin adapters over Service.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/josephgoksu/OpsWing/internal/analysis"
	"github.com/josephgoksu/OpsWing/internal/notify"
	"github.com/josephgoksu/OpsWing/internal/policy"
	"github.com/josephgoksu/OpsWing/internal/telemetry"
	"github.com/josephgoksu/OpsWing/models"
	"github.com/josephgoksu/OpsWing/store"
)

// ErrValidation marks input rejected before it reaches the store.
var ErrValidation = errors.New("validation failed")

// Options holds the collaborators of a Service. Store is required; the rest
// fall back to defaults.
type Options struct {
	Store     store.RecordStore
	Analyzer  *analysis.Analyzer
	Policy    *policy.Engine
	Notifier  *notify.Notifier
	Telemetry telemetry.Client

	// ManagerEmail receives KPI alerts and weekly reports by default.
	ManagerEmail string

	Now func() time.Time
}

// Service implements every OpsWing operation over a RecordStore.
type Service struct {
	store        store.RecordStore
	analyzer     *analysis.Analyzer
	policy       *policy.Engine
	notifier     *notify.Notifier
	telemetry    telemetry.Client
	managerEmail string
	now          func() time.Time
}

// New creates a Service.
func New(opts Options) *Service {
	s := &Service{
		store:        opts.Store,
		analyzer:     opts.Analyzer,
		policy:       opts.Policy,
		notifier:     opts.Notifier,
		telemetry:    opts.Telemetry,
		managerEmail: opts.ManagerEmail,
		now:          opts.Now,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.analyzer == nil {
		s.analyzer = analysis.New(analysis.DefaultConfig(), analysis.WithClock(s.now))
	}
	if s.notifier == nil {
		s.notifier = notify.NewNotifier(nil, notify.NewLogSender(nil), "")
	}
	if s.telemetry == nil {
		s.telemetry = telemetry.NewNoopClient()
	}
	return s
}

// Analyzer exposes the engine for callers that only need pure analysis.
func (s *Service) Analyzer() *analysis.Analyzer {
	return s.analyzer
}

// Close releases the store and flushes telemetry.
func (s *Service) Close() error {
	if err := s.telemetry.Close(); err != nil {
		slog.Debug("telemetry close failed", "error", err)
	}
	return s.store.Close()
}

// Track forwards an event to the telemetry client.
func (s *Service) Track(event string, props telemetry.Properties) {
	s.telemetry.Track(event, props)
}

func (s *Service) track(operation string, records int) {
	s.telemetry.Track(telemetry.EventAnalysisRun, telemetry.AnalysisRun(operation, records))
}

func (s *Service) today() string {
	return s.now().Format(models.DateLayout)
}

func validate(v any) error {
	if err := models.ValidateStruct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
