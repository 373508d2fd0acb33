package ihtpengine

import "context"

// TabuConfig holds the three parameters spec §4.9 names.
type TabuConfig struct {
	TabuSize         int     // cap of the FIFO tabu memory
	AspirationFactor float64 // factor: a tabu move is admissible anyway if p < incumbent*factor
	MaxIter          int
}

// TabuDriver runs the iterative best-improvement search of spec §4.9 over
// an EngineState, using a MoveGenerator for candidates and a SnapshotStore
// to remember the best-seen tensors.
type TabuDriver struct {
	st   *EngineState
	gen  *MoveGenerator
	snap *SnapshotStore
	cfg  TabuConfig

	tabu []Move // FIFO, oldest first
}

// NewTabuDriver returns a driver for st with the given configuration.
func NewTabuDriver(st *EngineState, cfg TabuConfig) *TabuDriver {
	return &TabuDriver{
		st:   st,
		gen:  newMoveGenerator(st),
		snap: NewSnapshotStore(),
		cfg:  cfg,
	}
}

// Result summarises a completed run. Budget is always populated and
// describes why the run stopped (spec §7: BudgetError is a terminal,
// non-error signal, carried here as a value field rather than as the
// returned error).
type Result struct {
	Iterations int
	Incumbent  int
	Breakdown  Breakdown
	Budget     BudgetError
}

// Run executes up to cfg.MaxIter iterations, logging each committed move
// and its resulting penalty to sink, and stops once no admissible
// non-tabu neighbour exists (the best admissible move is committed even
// when it does not improve), the iteration budget is exhausted, or ctx is
// done. Every normal stop leaves st holding the best-seen tensors (step 7:
// restore best snapshot) and is reported via Result.Budget with a nil
// error. The returned error is non-nil only for a genuine *InvariantError
// (a bug); st is then left as it was when the error arose.
func (d *TabuDriver) Run(ctx context.Context, sink ActionSink) (Result, error) {
	incumbent, breakdown := d.st.Evaluator.Evaluate()
	d.snap.Capture(d.st, incumbent, breakdown)

	iter := 0
	for ; iter < d.cfg.MaxIter; iter++ {
		if err := ctx.Err(); err != nil {
			break
		}

		candidates := d.gen.Generate()

		best := 0
		bestBreakdown := Breakdown{}
		var bestMove Move
		found := false

		for _, m := range candidates {
			if err := d.st.Commit(m); err != nil {
				continue // ActionError: inadmissible, skip. InvariantError would be a bug too, but probing must stay non-fatal here.
			}
			p, b := d.st.Evaluator.Evaluate()
			if err := d.st.Uncommit(m); err != nil {
				res := Result{Iterations: iter, Incumbent: incumbent, Breakdown: breakdown, Budget: BudgetError{Iterations: iter}}
				return res, &InvariantError{Reason: "TabuDriver.Run: rollback of a probed move failed"}
			}

			if d.blockedByTabu(m, p, incumbent) {
				continue
			}
			if !found || p < best {
				best, bestBreakdown, bestMove, found = p, b, m, true
			}
		}

		if !found {
			res := Result{Iterations: iter, Incumbent: incumbent, Breakdown: breakdown, Budget: BudgetError{Iterations: iter, NoMoreMoves: true}}
			d.snap.RestoreInto(d.st)
			return res, nil
		}

		if err := d.st.Commit(bestMove); err != nil {
			res := Result{Iterations: iter, Incumbent: incumbent, Breakdown: breakdown, Budget: BudgetError{Iterations: iter}}
			return res, &InvariantError{Reason: "TabuDriver.Run: committing the selected best move failed"}
		}
		if sink != nil {
			sink.Record(iter, best, bestMove.String(d.st.Instance))
		}
		d.pushTabu(bestMove)

		if best < incumbent {
			incumbent, breakdown = best, bestBreakdown
			d.snap.Capture(d.st, incumbent, breakdown)
		}
	}

	d.snap.RestoreInto(d.st)
	return Result{Iterations: iter, Incumbent: incumbent, Breakdown: breakdown, Budget: BudgetError{Iterations: iter}}, nil
}

// blockedByTabu implements spec §4.9's aspiration criterion: a tabu move m
// is still admissible if probing it scores p strictly below
// incumbent*AspirationFactor (at factor 1.0, this is exactly "improves on
// the incumbent"); otherwise a tabu move that merely reproduces or worsens
// the incumbent is skipped.
func (d *TabuDriver) blockedByTabu(m Move, p, incumbent int) bool {
	return d.isTabu(m) && float64(p) >= float64(incumbent)*d.cfg.AspirationFactor
}

func (d *TabuDriver) isTabu(m Move) bool {
	for _, t := range d.tabu {
		if t.Equal(m) {
			return true
		}
	}
	return false
}

func (d *TabuDriver) pushTabu(m Move) {
	d.tabu = append(d.tabu, m)
	if len(d.tabu) > d.cfg.TabuSize {
		d.tabu = d.tabu[1:]
	}
}

// ActionSink receives one (iteration, penalty, action string) event per
// committed move, matching the CSV log contract of spec §6.
type ActionSink interface {
	Record(index, penalty int, action string)
}
