package core

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Duration
}

func (c *fakeClock) Now() time.Duration { return c.now }

func TestStopwatchPauseResume(t *testing.T) {
	clock := &fakeClock{}
	w := NewStopwatch(clock.Now)

	if err := w.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	clock.now = 2 * time.Second
	if err := w.Pause(); err != nil {
		t.Fatalf("Pause() failed: %v", err)
	}
	clock.now = 10 * time.Second
	if w.Elapsed() != 2*time.Second {
		t.Errorf("paused Elapsed() = %v, expected 2s", w.Elapsed())
	}

	if err := w.Resume(); err != nil {
		t.Fatalf("Resume() failed: %v", err)
	}
	clock.now = 14 * time.Second
	if w.Elapsed() != 6*time.Second {
		t.Errorf("Elapsed() = %v, expected 6s", w.Elapsed())
	}

	clock.now = 20 * time.Second
	if err := w.Stop(); err != nil {
		t.Fatalf("Stop() failed: %v", err)
	}
	clock.now = 99 * time.Second
	if w.String() != "0:00:12" {
		t.Errorf("String() = %q, expected 0:00:12", w.String())
	}

	if err := w.Resume(); !errors.Is(err, ErrStopwatchStopped) {
		t.Errorf("Resume() after Stop should fail with ErrStopwatchStopped, got %v", err)
	}
}

func TestStopwatchMisuse(t *testing.T) {
	clock := &fakeClock{}
	w := NewStopwatch(clock.Now)

	if err := w.Pause(); !errors.Is(err, ErrStopwatchIdle) {
		t.Errorf("Pause() before Start = %v, expected ErrStopwatchIdle", err)
	}
	if err := w.Start(); err != nil {
		t.Fatal(err)
	}
	if err := w.Start(); !errors.Is(err, ErrStopwatchRunning) {
		t.Errorf("second Start() = %v, expected ErrStopwatchRunning", err)
	}
	if err := w.Resume(); !errors.Is(err, ErrStopwatchActive) {
		t.Errorf("Resume() without Pause = %v, expected ErrStopwatchActive", err)
	}
}

func TestStopwatchRestartAfterStop(t *testing.T) {
	clock := &fakeClock{}
	w := NewStopwatch(clock.Now)

	_ = w.Start()
	clock.now = 5 * time.Second
	_ = w.Stop()

	if err := w.Start(); err != nil {
		t.Fatalf("Start() after Stop should clear and restart, got %v", err)
	}
	clock.now = 6 * time.Second
	if w.Elapsed() != time.Second {
		t.Errorf("Elapsed() = %v, expected 1s", w.Elapsed())
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in       time.Duration
		expected string
	}{
		{0, "0:00:00"},
		{59*time.Second + 900*time.Millisecond, "0:00:59"},
		{61 * time.Second, "0:01:01"},
		{3*time.Hour + 4*time.Minute + 5*time.Second, "3:04:05"},
		{-time.Second, "0:00:00"},
	}

	for _, tc := range tests {
		if got := FormatDuration(tc.in); got != tc.expected {
			t.Errorf("FormatDuration(%v) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}
