// Package ihtpengine implements the solution-state engine and neighbourhood
// search driver for the Integrated Healthcare Timetabling Problem: the
// three decision tensors (PAS, SCP, NRA), the hard-constraint checker, the
// soft-constraint penalty evaluator, the move model and generator, and the
// tabu-search driver that ties them together.
package ihtpengine

import "fmt"

// ActionError is the recoverable hard-constraint-violation error kind of
// spec §7. It is raised by a tentative move application and is meant to be
// caught and discarded by the caller (TabuDriver), never propagated.
type ActionError struct {
	Rule   string // e.g. "H1", "H7"
	Reason string
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("ihtpengine: action rejected (%s): %s", e.Rule, e.Reason)
}

// InvariantError is the fatal internal-consistency error kind of spec §7:
// it must never arise from external input, only from a bug in the engine
// itself (an unknown id, an out-of-range tensor index, scheduling an
// already-scheduled patient, unscheduling one that isn't, assigning an
// unavailable nurse). Receiving one aborts the current search iteration.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "ihtpengine: invariant violated: " + e.Reason
}

// BudgetError is the terminal, non-error kind of spec §7: the driver
// exhausted its iteration budget (or found no further admissible move)
// without ending in an exceptional state. It is never returned as an
// `error` value; TabuDriver.Run reports it as a typed field on its result
// instead, since spec requires callers to still treat the last snapshot as
// valid output.
type BudgetError struct {
	Iterations int
	NoMoreMoves bool
}

func (e *BudgetError) Error() string {
	if e.NoMoreMoves {
		return fmt.Sprintf("ihtpengine: no admissible neighbour after %d iterations", e.Iterations)
	}
	return fmt.Sprintf("ihtpengine: iteration budget (%d) exhausted", e.Iterations)
}
