package ihtpengine

// ConstraintChecker groups the hard-constraint predicates (spec §4.5) used
// to admit a move. It holds no state of its own: every check reads from
// the EngineState's three tensors.
type ConstraintChecker struct {
	st *EngineState
}

func newConstraintChecker(st *EngineState) *ConstraintChecker {
	return &ConstraintChecker{st: st}
}

// CanScheduleAdmission reports whether placing patient in room starting on
// day, with the given surgery, would violate H1, H2, H3, H4, H6, H7, or H8.
// It never mutates state.
func (c *ConstraintChecker) CanScheduleAdmission(day, room, patient, surgeon, ot, duration int) *ActionError {
	pas, scp, nra := c.st.PAS, c.st.SCP, c.st.NRA

	if !pas.admissionWindowOk(day, patient) {
		return &ActionError{Rule: "H6", Reason: "admission day outside release/due window"}
	}
	if !pas.roomCompatible(room, patient) {
		return &ActionError{Rule: "H2", Reason: "room is incompatible for this patient"}
	}
	end := pas.endDayFor(day, patient)
	if !pas.capacityOk(day, end, room) {
		return &ActionError{Rule: "H7", Reason: "room is at capacity"}
	}
	if !pas.genderOk(day, end, room, patient) {
		return &ActionError{Rule: "H1", Reason: "gender mix in room"}
	}
	if !scp.surgeonOvertimeOk(day, surgeon, duration) {
		return &ActionError{Rule: "H3", Reason: "surgeon over capacity"}
	}
	if !scp.otOvertimeOk(day, ot, duration) {
		return &ActionError{Rule: "H4", Reason: "operating theatre over capacity"}
	}
	if !nra.coverageOk(day, end, room) {
		return &ActionError{Rule: "H8", Reason: "room not covered by a nurse for the full stay"}
	}
	return nil
}

// CanUnassignNurse reports whether removing nurse from (shift, room) would
// leave an occupied room uncovered (H8), per spec §9's recommendation to
// reject this explicitly rather than rely on an indirect guard.
func (c *ConstraintChecker) CanUnassignNurse(shift, room, nurse int) *ActionError {
	pas := c.st.PAS
	S := c.st.Instance.ShiftsPerDay()
	day := shift / S
	if pas.roomEmpty(day, room) {
		return nil
	}
	// removing coverage for this one shift is only a problem if no other
	// nurse also covers it -- there can be at most one (I11), so removing
	// the current holder always uncovers the shift if the room is occupied.
	return &ActionError{Rule: "H8", Reason: "removing this nurse would leave an occupied room uncovered"}
}
