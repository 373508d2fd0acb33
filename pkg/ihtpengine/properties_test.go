package ihtpengine

import (
	"context"
	"testing"
)

// coverDay commits AssignNurse for every shift of day in room using nurse
// 0, so H8 never blocks whatever admission move a test goes on to try.
func coverDay(t *testing.T, st *EngineState, day, room int) {
	t.Helper()
	S := st.Instance.ShiftsPerDay()
	for offset := 0; offset < S; offset++ {
		shift := day*S + offset
		if err := st.Commit(Move{Kind: MoveAssignNurse, Shift: shift, Room: room, Nurse: 0}); err != nil {
			t.Fatalf("AssignNurse(shift %d, room %d): %v", shift, room, err)
		}
	}
}

// TestIsScheduledAgreesWithSCP is property P1: isScheduled(p) holds exactly
// when PAS has p placed and SCP records a surgery of the expected duration.
func TestIsScheduledAgreesWithSCP(t *testing.T) {
	st := newTestEngine(t)
	p0 := mustIdx(t, st, "P0")
	r1 := mustRoom(t, st, "R1")
	ot1 := mustOT(t, st, "OT1")
	coverDay(t, st, 0, r1)

	if st.PAS.isScheduled(p0) {
		t.Fatalf("P0 should start unscheduled")
	}
	if _, _, _, _, ok := st.SCP.lookupSurgery(p0); ok {
		t.Fatalf("unscheduled patient must have no SCP record")
	}

	m := Move{Kind: MoveScheduleAdmission, Day: 0, Room: r1, Patient: p0, OT: ot1}
	if err := st.Commit(m); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if !st.PAS.isScheduled(p0) {
		t.Fatalf("P0 should be scheduled after Commit")
	}
	day, room, ok := st.PAS.lookupSchedule(p0)
	if !ok || day != 0 || room != r1 {
		t.Fatalf("PAS placement = (%d, %d, %v), want (0, R1, true)", day, room, ok)
	}
	_, _, ot, duration, ok := st.SCP.lookupSurgery(p0)
	if !ok || ot != ot1 || duration != st.Instance.PatientAt(p0).SurgeryDuration {
		t.Fatalf("SCP record = (ot=%d, duration=%d, ok=%v), want (OT1, %d, true)", ot, duration, ok, st.Instance.PatientAt(p0).SurgeryDuration)
	}

	if err := st.Commit(Move{Kind: MoveUnscheduleAdmission, Day: 0, Room: r1, Patient: p0, OT: ot1}); err != nil {
		t.Fatalf("Commit unschedule: %v", err)
	}
	if st.PAS.isScheduled(p0) {
		t.Fatalf("P0 should be unscheduled again")
	}
	if _, _, _, _, ok := st.SCP.lookupSurgery(p0); ok {
		t.Fatalf("SCP record should be cleared alongside PAS")
	}
}

// TestHardConstraintsHoldAfterEveryCommit is property P2: after a sequence
// of committed moves, room capacity, gender uniformity, and room coverage
// hold for every (day, room) touched.
func TestHardConstraintsHoldAfterEveryCommit(t *testing.T) {
	st := newTestEngine(t)
	p0 := mustIdx(t, st, "P0")
	r1 := mustRoom(t, st, "R1")
	ot1 := mustOT(t, st, "OT1")
	coverDay(t, st, 0, r1)

	if err := st.Commit(Move{Kind: MoveScheduleAdmission, Day: 0, Room: r1, Patient: p0, OT: ot1}); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	inst := st.Instance
	for d := 0; d < inst.Days; d++ {
		for r := range inst.Rooms {
			n, gender, uniform := 0, "", true
			for p := range st.PAS.residentsOf(d, r) {
				n++
				g := inst.PersonBase(p).Gender
				if gender == "" {
					gender = g
				} else if g != gender {
					uniform = false
				}
			}
			if n > inst.Rooms[r].Capacity {
				t.Fatalf("room %d on day %d holds %d residents, over capacity %d", r, d, n, inst.Rooms[r].Capacity)
			}
			if !uniform {
				t.Fatalf("room %d on day %d mixes genders", r, d)
			}
		}
	}
	if !st.NRA.coverageOk(0, 1, r1) {
		t.Fatalf("R1 on day 0 should be covered after coverDay")
	}
}

// TestUnscheduledOptionalMonotone is property P4: unscheduling an optional
// patient changes the S8 breakdown term by exactly
// weight_unscheduled_optional (it was 0 while scheduled, 1*weight once
// removed), independent of how the other seven terms move.
func TestUnscheduledOptionalMonotone(t *testing.T) {
	st := newTestEngine(t)
	p1 := mustIdx(t, st, "P1") // optional
	r1 := mustRoom(t, st, "R1")
	ot1 := mustOT(t, st, "OT1")
	coverDay(t, st, 0, r1)

	m := Move{Kind: MoveScheduleAdmission, Day: 0, Room: r1, Patient: p1, OT: ot1}
	if err := st.Commit(m); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	_, scheduledBreakdown := st.Evaluator.Evaluate()
	if scheduledBreakdown.UnscheduledOptional != 0 {
		t.Fatalf("scheduled optional patient should contribute 0 to S8, got %d", scheduledBreakdown.UnscheduledOptional)
	}

	if err := st.Uncommit(m); err != nil {
		t.Fatalf("Uncommit: %v", err)
	}
	_, unscheduledBreakdown := st.Evaluator.Evaluate()
	if unscheduledBreakdown.UnscheduledOptional != 1 {
		t.Fatalf("unscheduled optional patient should contribute 1 to S8, got %d", unscheduledBreakdown.UnscheduledOptional)
	}

	if w := st.Instance.Weights.UnscheduledOptional; w == 0 {
		t.Fatalf("fixture weight_unscheduled_optional must be nonzero for this property to be observable")
	}
}

// TestOccupantPlacementFixedAcrossRun is property P6: occupants' PAS rows
// never change, even after a full TabuDriver run.
func TestOccupantPlacementFixedAcrossRun(t *testing.T) {
	st := newTestEngine(t)
	occ := mustIdx(t, st, "OCC0")
	beforeDay, beforeRoom, beforeOk := st.PAS.lookupSchedule(occ)

	d := NewTabuDriver(st, TabuConfig{TabuSize: 5, AspirationFactor: 1.0, MaxIter: 25})
	if _, err := d.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run: %v", err)
	}

	afterDay, afterRoom, afterOk := st.PAS.lookupSchedule(occ)
	if beforeDay != afterDay || beforeRoom != afterRoom || beforeOk != afterOk {
		t.Fatalf("occupant placement changed: before (%d,%d,%v), after (%d,%d,%v)", beforeDay, beforeRoom, beforeOk, afterDay, afterRoom, afterOk)
	}
}

// TestBreakdownSumsToTotal is property P7: for every committed state, the
// sum of the breakdown's eight terms equals the evaluator's total, given
// this fixture's weights are all 1.
func TestBreakdownSumsToTotal(t *testing.T) {
	st := newTestEngine(t)
	r1 := mustRoom(t, st, "R1")
	ot1 := mustOT(t, st, "OT1")
	coverDay(t, st, 0, r1)

	total, b := st.Evaluator.Evaluate()
	if total != b.Total() {
		t.Fatalf("initial: total %d != breakdown sum %d", total, b.Total())
	}

	p0 := mustIdx(t, st, "P0")
	if err := st.Commit(Move{Kind: MoveScheduleAdmission, Day: 0, Room: r1, Patient: p0, OT: ot1}); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	total, b = st.Evaluator.Evaluate()
	if total != b.Total() {
		t.Fatalf("after commit: total %d != breakdown sum %d", total, b.Total())
	}
}
