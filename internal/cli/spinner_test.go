package cli

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestSpinnerStartStop(t *testing.T) {
	s := newSpinner("Rendering...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
	s.Stop()

	if s.Cancelled() {
		t.Error("Cancelled() = true after a plain Stop")
	}
}

func TestSpinnerContext(t *testing.T) {
	tests := []struct {
		name string
		ctx  func() (context.Context, context.CancelFunc)
	}{
		{"cancel", func() (context.Context, context.CancelFunc) {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx, cancel
		}},
		{"timeout", func() (context.Context, context.CancelFunc) {
			return context.WithTimeout(context.Background(), 20*time.Millisecond)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, cancel := tt.ctx()
			defer cancel()

			s := newSpinnerWithContext(ctx, "Waiting...")
			s.Start()
			time.Sleep(60 * time.Millisecond)
			if !s.Cancelled() {
				t.Error("Cancelled() = false after the context ended")
			}
			s.Stop()
		})
	}
}

func TestSpinnerStopWithMessage(t *testing.T) {
	s := newSpinner("Writing...")
	s.Start()
	s.StopWithSuccess("Done")

	s = newSpinner("Writing...")
	s.Start()
	s.StopWithError("Failed")
}

func TestSpinnerModel(t *testing.T) {
	var m tea.Model = spinnerModel{message: "Rendering"}
	first := m.View()
	m, cmd := m.Update(spinnerTick{})
	if cmd == nil {
		t.Error("tick did not schedule the next frame")
	}
	if m.View() == first {
		t.Error("tick did not advance the frame")
	}
	m, cmd = m.Update(spinnerDone{})
	if cmd == nil {
		t.Error("done did not quit the program")
	}
	if got := m.View(); got != "" {
		t.Errorf("View() after quit = %q, want empty", got)
	}
}
