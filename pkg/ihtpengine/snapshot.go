package ihtpengine

// Snapshot is a deep, independent copy of the three decision tensors at one
// point in the search, paired with the penalty they scored (spec §4.10).
type Snapshot struct {
	PAS       *PASState
	SCP       *SCPState
	NRA       *NRAState
	Penalty   int
	Breakdown Breakdown
}

// SnapshotStore remembers the best-seen triple across a tabu search run. It
// only ever holds one snapshot: callers decide when a new candidate is
// better and call Capture; there is no history.
type SnapshotStore struct {
	best *Snapshot
}

// NewSnapshotStore returns an empty store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{}
}

// Capture records st's current tensors as the new best, deep-copying them
// so later mutation of st does not alias the snapshot.
func (sn *SnapshotStore) Capture(st *EngineState, penalty int, b Breakdown) {
	sn.best = &Snapshot{
		PAS:       st.PAS.clone(),
		SCP:       st.SCP.clone(),
		NRA:       st.NRA.clone(),
		Penalty:   penalty,
		Breakdown: b,
	}
}

// Best returns the stored snapshot, or nil if Capture was never called.
func (sn *SnapshotStore) Best() *Snapshot {
	return sn.best
}

// RestoreInto overwrites st's tensors with the stored snapshot's contents.
// It is a no-op if no snapshot has been captured.
func (sn *SnapshotStore) RestoreInto(st *EngineState) {
	if sn.best == nil {
		return
	}
	st.PAS.restoreFrom(sn.best.PAS)
	st.SCP.restoreFrom(sn.best.SCP)
	st.NRA.restoreFrom(sn.best.NRA)
}
