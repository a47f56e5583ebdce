package view

import (
	"testing"
	"time"
)

func TestFormatClock(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{75 * time.Second, "01:15"},
		{time.Hour + 2*time.Minute + 3*time.Second, "1:02:03"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.d); got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestEnabled(t *testing.T) {
	if enabled(true) != "normal" || enabled(false) != "disabled" {
		t.Fatalf("unexpected widget state strings")
	}
}

func TestPointerCursor(t *testing.T) {
	if pointerCursor(true) != "crosshair" || pointerCursor(false) != "arrow" {
		t.Fatalf("unexpected cursors")
	}
}
