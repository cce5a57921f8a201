// Package control holds the single shared cell the control plane toggles.
package control

import "sync/atomic"

// RunState is the process-wide scan switch. The control-plane handlers are the
// only writers; the scheduler reads it once per tick, so a stop takes effect
// at tick granularity, never mid-cycle.
type RunState struct {
	running atomic.Bool
}

func (s *RunState) Start()        { s.running.Store(true) }
func (s *RunState) Stop()         { s.running.Store(false) }
func (s *RunState) Running() bool { return s.running.Load() }
