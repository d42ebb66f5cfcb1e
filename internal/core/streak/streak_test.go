package streak

import (
	"testing"
	"time"
)

var kst = time.FixedZone("UTC+9", 9*3600)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, kst)
}

func TestAdvance_FirstEvent(t *testing.T) {
	got := Advance(State{}, day(2024, 1, 1))
	if got.Current != 1 || got.Longest != 1 {
		t.Fatalf("first event: got %+v", got)
	}
	if !got.LastDay.Equal(day(2024, 1, 1)) {
		t.Fatalf("last day not recorded: %v", got.LastDay)
	}
}

func TestAdvance_FirstEventKeepsPriorLongest(t *testing.T) {
	// participant with history but a reset LastDay still keeps the record
	got := Advance(State{Longest: 7}, day(2024, 1, 1))
	if got.Current != 1 || got.Longest != 7 {
		t.Fatalf("got %+v", got)
	}
}

func TestAdvance_ConsecutiveDaysMonotonic(t *testing.T) {
	s := State{}
	start := day(2024, 1, 1)
	for i := 0; i < 10; i++ {
		d := start.AddDate(0, 0, i)
		prev := s
		s = Advance(s, d)
		if s.Current != prev.Current+1 && !(prev.LastDay.IsZero() && s.Current == 1) {
			t.Fatalf("day %d: current %d after %d", i, s.Current, prev.Current)
		}
		if s.Longest < prev.Longest {
			t.Fatalf("longest decreased: %d -> %d", prev.Longest, s.Longest)
		}
	}
	if s.Current != 10 || s.Longest != 10 {
		t.Fatalf("after 10 consecutive days: %+v", s)
	}
}

func TestAdvance_GapResetsCurrentOnly(t *testing.T) {
	s := Advance(Advance(State{}, day(2024, 1, 1)), day(2024, 1, 2))
	s = Advance(s, day(2024, 1, 4)) // skipped Jan 3
	if s.Current != 1 || s.Longest != 2 {
		t.Fatalf("gap: got %+v", s)
	}
}

func TestAdvance_SameDayRepeatResets(t *testing.T) {
	// a second event on the same date resets rather than no-ops
	s := Advance(Advance(State{}, day(2024, 1, 1)), day(2024, 1, 2))
	s = Advance(s, day(2024, 1, 2))
	if s.Current != 1 || s.Longest != 2 {
		t.Fatalf("same day repeat: got %+v", s)
	}
}

func TestAdvance_OutOfOrderResets(t *testing.T) {
	s := Advance(Advance(State{}, day(2024, 1, 5)), day(2024, 1, 6))
	s = Advance(s, day(2024, 1, 3))
	if s.Current != 1 || s.Longest != 2 {
		t.Fatalf("out of order: got %+v", s)
	}
}

func TestAdvance_ObservedScenario(t *testing.T) {
	// events on Jan 1, Jan 2, Jan 4 2024 in UTC+9
	s := Advance(State{}, day(2024, 1, 1))
	if s.Current != 1 || s.Longest != 1 {
		t.Fatalf("after day 1: %+v", s)
	}
	s = Advance(s, day(2024, 1, 2))
	if s.Current != 2 || s.Longest != 2 {
		t.Fatalf("after day 2: %+v", s)
	}
	s = Advance(s, day(2024, 1, 4))
	if s.Current != 1 || s.Longest != 2 {
		t.Fatalf("after day 4: %+v", s)
	}
}
