// Package scheduler runs the periodic refresh/scan loop.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/Synt4xB4ndit/sol-arb-bot/internal/catalog"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/control"
	"github.com/Synt4xB4ndit/sol-arb-bot/internal/scanner"
)

// Scheduler ticks on a fixed interval. Each tick refreshes the catalog when
// its own longer timer has elapsed (regardless of run state, so scanning can
// start with fresh data) and runs one scan cycle when the run flag is set.
// The two cadences are tracked as last-fired timestamps compared against the
// clock, which keeps them independently testable.
type Scheduler struct {
	log     zerolog.Logger
	state   *control.RunState
	catalog *catalog.Catalog
	scanner *scanner.Scanner

	tick         time.Duration
	refreshEvery time.Duration
	now          func() time.Time
	lastRefresh  time.Time
}

func New(log zerolog.Logger, state *control.RunState, cat *catalog.Catalog, scan *scanner.Scanner, tick, refreshEvery time.Duration) *Scheduler {
	if tick <= 0 {
		tick = 10 * time.Second
	}
	if refreshEvery <= 0 {
		refreshEvery = 5 * time.Minute
	}
	return &Scheduler{
		log:          log,
		state:        state,
		catalog:      cat,
		scanner:      scan,
		tick:         tick,
		refreshEvery: refreshEvery,
		now:          time.Now,
	}
}

// Tick advances both timers once. Exported so tests can drive the loop with a
// virtual clock.
func (s *Scheduler) Tick(ctx context.Context) {
	now := s.now()
	if s.lastRefresh.IsZero() || now.Sub(s.lastRefresh) >= s.refreshEvery {
		s.log.Debug().Msg("refreshing token catalog")
		s.catalog.Refresh(ctx)
		s.lastRefresh = now
	}
	if s.state.Running() {
		s.scanner.Cycle(ctx)
	}
}

// Run loops until the context is cancelled. The loop itself never terminates
// on component failure; everything below it fails soft.
func (s *Scheduler) Run(ctx context.Context) {
	s.Tick(ctx)
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("scheduler stopped")
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}
