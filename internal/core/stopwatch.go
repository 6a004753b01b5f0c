package core

import (
	"errors"
	"fmt"
	"time"
)

// Stopwatch errors.
var (
	ErrStopwatchRunning = errors.New("stopwatch: already started")
	ErrStopwatchIdle    = errors.New("stopwatch: not started")
	ErrStopwatchStopped = errors.New("stopwatch: already stopped")
	ErrStopwatchPaused  = errors.New("stopwatch: already paused")
	ErrStopwatchActive  = errors.New("stopwatch: not paused")
)

// Stopwatch measures elapsed play time with pause support.
// It reads time from an injected clock so simulation time can drive it.
type Stopwatch struct {
	now func() time.Duration

	last        time.Duration
	accumulated time.Duration

	started bool
	paused  bool
	stopped bool
}

// NewStopwatch creates a stopwatch reading the given clock.
func NewStopwatch(now func() time.Duration) *Stopwatch {
	return &Stopwatch{now: now}
}

// Start begins measuring. A stopped stopwatch is cleared first.
func (w *Stopwatch) Start() error {
	if w.stopped {
		w.Clear()
	}
	if w.started {
		return ErrStopwatchRunning
	}
	w.started = true
	w.last = w.now()
	return nil
}

// Pause freezes the elapsed time.
func (w *Stopwatch) Pause() error {
	switch {
	case w.stopped:
		return ErrStopwatchStopped
	case !w.started:
		return ErrStopwatchIdle
	case w.paused:
		return ErrStopwatchPaused
	}
	w.paused = true
	w.accumulated += w.now() - w.last
	return nil
}

// Resume continues measuring after Pause.
func (w *Stopwatch) Resume() error {
	switch {
	case w.stopped:
		return ErrStopwatchStopped
	case !w.started:
		return ErrStopwatchIdle
	case !w.paused:
		return ErrStopwatchActive
	}
	w.paused = false
	w.last = w.now()
	return nil
}

// Stop finalizes the measurement. Elapsed stays fixed afterwards.
func (w *Stopwatch) Stop() error {
	if w.stopped {
		return ErrStopwatchStopped
	}
	if !w.started {
		return ErrStopwatchIdle
	}
	w.stopped = true
	if !w.paused {
		w.accumulated += w.now() - w.last
	}
	return nil
}

// Elapsed returns the measured time so far.
func (w *Stopwatch) Elapsed() time.Duration {
	if !w.started {
		return 0
	}
	if w.stopped || w.paused {
		return w.accumulated
	}
	return w.accumulated + w.now() - w.last
}

// Clear resets the stopwatch to its initial state.
func (w *Stopwatch) Clear() {
	*w = Stopwatch{now: w.now}
}

// String formats the elapsed time as H:MM:SS.
func (w *Stopwatch) String() string {
	return FormatDuration(w.Elapsed())
}

// FormatDuration renders d as H:MM:SS, truncating fractional seconds.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
