// Package timer tracks elapsed work time for a selected project.
package timer

import (
	"errors"
	"fmt"
	"time"

	"github.com/sadopc/daybook/internal/store"
)

// ErrNoProject is returned by Start when no project has been selected.
var ErrNoProject = errors.New("no project selected")

// State is the current state of the engine.
type State int

const (
	Idle State = iota
	Running
	Paused
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	}
	return "idle"
}

// Engine counts whole seconds while running. Elapsed time only advances
// through Tick, so the owner decides the cadence.
type Engine struct {
	state   State
	elapsed int64
	project string
}

func New() *Engine {
	return &Engine{}
}

// Select sets the project the next session is recorded against.
func (e *Engine) Select(project string) {
	e.project = project
}

func (e *Engine) Project() string { return e.project }
func (e *Engine) State() State    { return e.state }
func (e *Engine) Running() bool   { return e.state == Running }
func (e *Engine) Paused() bool    { return e.state == Paused }

// Elapsed returns the counted seconds.
func (e *Engine) Elapsed() int64 { return e.elapsed }

// Start moves Idle or Paused to Running. It is a no-op while running.
func (e *Engine) Start() error {
	if e.project == "" {
		return ErrNoProject
	}
	e.state = Running
	return nil
}

// Tick adds one second while running.
func (e *Engine) Tick() {
	if e.state == Running {
		e.elapsed++
	}
}

// Pause freezes the counter. Pausing a non-running engine does nothing.
func (e *Engine) Pause() {
	if e.state != Running {
		return
	}
	e.state = Paused
}

// Toggle pauses a running engine and resumes a paused one.
func (e *Engine) Toggle() error {
	switch e.state {
	case Running:
		e.Pause()
		return nil
	case Paused:
		return e.Start()
	}
	return nil
}

// Reset returns the engine to Idle and zeroes the counter. When time was
// counted against a project it returns the completed work session.
func (e *Engine) Reset(now time.Time) (*store.Session, bool) {
	elapsed := e.elapsed
	e.state = Idle
	e.elapsed = 0

	if elapsed <= 0 || e.project == "" {
		return nil, false
	}
	return &store.Session{
		ID:       now.UnixMilli(),
		Project:  e.project,
		Duration: elapsed,
		Date:     now.UTC(),
		Type:     store.SessionWork,
	}, true
}

// Format renders seconds as HH:MM:SS.
func Format(secs int64) string {
	d := time.Duration(secs) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// Summary renders a session length as the confirmation notice shows it.
func Summary(secs int64) string {
	return fmt.Sprintf("%dmin %ds", secs/60, secs%60)
}
