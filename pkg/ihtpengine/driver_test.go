package ihtpengine

import (
	"context"
	"testing"
)

// recordingSink collects every (index, penalty, action) triple Record
// receives, for assertions on P5 (non-increasing incumbent) and the CSV
// contract shape.
type recordingSink struct {
	penalties []int
}

func (s *recordingSink) Record(index, penalty int, action string) {
	s.penalties = append(s.penalties, penalty)
}

// TestTabuDriver_NeverWorsensTheIncumbent is property P5: the incumbent
// penalty returned by Run is non-increasing relative to the initial state.
func TestTabuDriver_NeverWorsensTheIncumbent(t *testing.T) {
	st := newTestEngine(t)
	initial, _ := st.Evaluator.Evaluate()

	d := NewTabuDriver(st, TabuConfig{TabuSize: 5, AspirationFactor: 1.0, MaxIter: 25})
	sink := &recordingSink{}
	res, err := d.Run(context.Background(), sink)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Incumbent > initial {
		t.Fatalf("incumbent %d worse than initial %d", res.Incumbent, initial)
	}

	final, _ := st.Evaluator.Evaluate()
	if final != res.Incumbent {
		t.Fatalf("engine state after Run scores %d, but Result.Incumbent = %d (best snapshot not restored)", final, res.Incumbent)
	}
}

// TestTabuDriver_RespectsMaxIter checks the driver never exceeds its
// iteration budget.
func TestTabuDriver_RespectsMaxIter(t *testing.T) {
	st := newTestEngine(t)
	d := NewTabuDriver(st, TabuConfig{TabuSize: 3, AspirationFactor: 1.0, MaxIter: 7})
	res, err := d.Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Iterations > 7 {
		t.Fatalf("Iterations = %d, want <= 7", res.Iterations)
	}
}

// TestTabuDriver_CancelledContextStops checks that an already-cancelled
// context halts the loop immediately.
func TestTabuDriver_CancelledContextStops(t *testing.T) {
	st := newTestEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewTabuDriver(st, TabuConfig{TabuSize: 3, AspirationFactor: 1.0, MaxIter: 1000})
	res, err := d.Run(ctx, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Iterations != 0 {
		t.Fatalf("Iterations = %d, want 0 for an already-cancelled context", res.Iterations)
	}
}
