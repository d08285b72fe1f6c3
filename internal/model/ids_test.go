package model

import (
	"testing"
	"time"
)

func TestIDGeneratorNeverRepeatsWithinSameMillisecond(t *testing.T) {
	fixed := time.UnixMilli(1700000000000)
	gen := NewIDGenerator(func() time.Time { return fixed })

	first := gen.Next()
	second := gen.Next()
	third := gen.NextString()
	if first != 1700000000000 {
		t.Fatalf("expected first id to be the timestamp, got %d", first)
	}
	if second != first+1 {
		t.Fatalf("expected bumped id, got %d", second)
	}
	if third != "1700000000002" {
		t.Fatalf("unexpected string id: %s", third)
	}
}

func TestIDGeneratorFollowsClock(t *testing.T) {
	now := time.UnixMilli(1000)
	gen := NewIDGenerator(func() time.Time { return now })
	if got := gen.Next(); got != 1000 {
		t.Fatalf("unexpected id: %d", got)
	}
	now = time.UnixMilli(5000)
	if got := gen.Next(); got != 5000 {
		t.Fatalf("unexpected id after clock moved: %d", got)
	}
}
