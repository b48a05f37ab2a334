package clock

import (
	"testing"
	"time"
)

func TestSystemClock(t *testing.T) {
	before := time.Now()
	got := System().Now()
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Errorf("system clock out of range: %v", got)
	}
}

func TestFakeClock(t *testing.T) {
	start := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	clk := NewFake(start)

	if !clk.Now().Equal(start) {
		t.Errorf("expected %v, got %v", start, clk.Now())
	}

	clk.Advance(90 * time.Second)
	want := start.Add(90 * time.Second)
	if !clk.Now().Equal(want) {
		t.Errorf("expected %v, got %v", want, clk.Now())
	}
}
