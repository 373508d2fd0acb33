package ihtpengine

import (
	"fmt"

	"github.com/ihtp/scheduler/pkg/ihtpmodel"
)

// EngineState bundles the three decision tensors for one Instance plus the
// read-only components (ConstraintChecker, PenaltyEvaluator) that operate
// on them. It replaces what spec §9 calls "global mutable state": an
// explicit value threaded through the driver, rather than package-level
// globals, with save/restore as a single owned value per tensor.
type EngineState struct {
	Instance *ihtpmodel.Instance
	PAS      *PASState
	SCP      *SCPState
	NRA      *NRAState

	Checker   *ConstraintChecker
	Evaluator *PenaltyEvaluator
}

// NewEngineState builds an empty engine state for inst and pre-inserts its
// occupants as already scheduled, per spec §3's lifecycle: "PAS/SCP/NRA
// begin zero, then occupants are pre-inserted."
func NewEngineState(inst *ihtpmodel.Instance) (*EngineState, error) {
	st := &EngineState{
		Instance: inst,
		PAS:      NewPASState(inst),
		SCP:      NewSCPState(inst),
		NRA:      NewNRAState(inst),
	}
	st.Checker = newConstraintChecker(st)
	st.Evaluator = newPenaltyEvaluator(st)

	for p := 0; p < inst.NumOccupants(); p++ {
		occ := inst.OccupantAt(p)
		if err := st.PAS.scheduleInterval(0, occ.RoomIdx, p); err != nil {
			return nil, err
		}
		end := st.PAS.endDayFor(0, p)
		st.NRA.patientArrived(0, end, occ.RoomIdx, p)
	}
	return st, nil
}

// Commit permanently applies m, running the applicable hard-constraint
// checks first. It returns an *ActionError if m is inadmissible (the
// tensors are left untouched), or an *InvariantError if applying an
// otherwise-admitted move still hit an internal inconsistency (a bug).
func (st *EngineState) Commit(m Move) error {
	switch m.Kind {
	case MoveScheduleAdmission:
		return st.commitScheduleAdmission(m)
	case MoveUnscheduleAdmission:
		return st.commitUnscheduleAdmission(m)
	case MoveAssignNurse:
		return st.commitAssignNurse(m)
	case MoveUnassignNurse:
		return st.commitUnassignNurse(m)
	default:
		return &InvariantError{Reason: fmt.Sprintf("Commit: unknown move kind %v", m.Kind)}
	}
}

// Uncommit reverses a move that was just Commit-ed, without re-running
// hard-constraint checks (the move is known to have been legal). It is
// used both by the tentative-apply probe in TabuDriver and, conceptually,
// is the exact inverse relationship spec §5's "tentative-apply discipline"
// requires: Uncommit(m) after Commit(m) must restore every tensor to its
// prior bit-identical state (property P3).
func (st *EngineState) Uncommit(m Move) error {
	switch m.Kind {
	case MoveScheduleAdmission:
		return st.uncommitScheduleAdmission(m)
	case MoveUnscheduleAdmission:
		return st.uncommitUnscheduleAdmission(m)
	case MoveAssignNurse:
		return st.uncommitAssignNurse(m)
	case MoveUnassignNurse:
		return st.uncommitUnassignNurse(m)
	default:
		return &InvariantError{Reason: fmt.Sprintf("Uncommit: unknown move kind %v", m.Kind)}
	}
}

func (st *EngineState) commitScheduleAdmission(m Move) error {
	pat := st.Instance.PatientAt(m.Patient)
	surgeon, duration := pat.SurgeonIdx, pat.SurgeryDuration
	if ae := st.Checker.CanScheduleAdmission(m.Day, m.Room, m.Patient, surgeon, m.OT, duration); ae != nil {
		return ae
	}
	if err := st.PAS.scheduleInterval(m.Day, m.Room, m.Patient); err != nil {
		return err
	}
	if err := st.SCP.scheduleSurgery(m.Day, m.Patient, surgeon, m.OT, duration); err != nil {
		return err
	}
	end := st.PAS.endDayFor(m.Day, m.Patient)
	st.NRA.patientArrived(m.Day, end, m.Room, m.Patient)
	return nil
}

func (st *EngineState) uncommitScheduleAdmission(m Move) error {
	end := st.PAS.endDayFor(m.Day, m.Patient)
	st.NRA.patientDeparted(m.Day, end, m.Room, m.Patient)
	if err := st.SCP.unschedule(m.Patient); err != nil {
		return err
	}
	if err := st.PAS.unschedulePatient(m.Patient); err != nil {
		return err
	}
	return nil
}

func (st *EngineState) commitUnscheduleAdmission(m Move) error {
	day, room, ok := st.PAS.lookupSchedule(m.Patient)
	if !ok || day != m.Day || room != m.Room {
		return &InvariantError{Reason: fmt.Sprintf("commitUnscheduleAdmission: move does not match current placement of patient %d", m.Patient)}
	}
	_, _, ot, _, ok := st.SCP.lookupSurgery(m.Patient)
	if !ok || ot != m.OT {
		return &InvariantError{Reason: fmt.Sprintf("commitUnscheduleAdmission: move OT does not match current surgery record of patient %d", m.Patient)}
	}
	return st.uncommitScheduleAdmission(m)
}

func (st *EngineState) uncommitUnscheduleAdmission(m Move) error {
	return st.commitScheduleAdmissionUnchecked(m)
}

// commitScheduleAdmissionUnchecked re-applies a schedule without running
// hard-constraint checks, used only to invert a just-probed
// UnscheduleAdmission, where the placement is known to have been legal an
// instant ago.
func (st *EngineState) commitScheduleAdmissionUnchecked(m Move) error {
	pat := st.Instance.PatientAt(m.Patient)
	surgeon, duration := pat.SurgeonIdx, pat.SurgeryDuration
	if err := st.PAS.scheduleInterval(m.Day, m.Room, m.Patient); err != nil {
		return err
	}
	if err := st.SCP.scheduleSurgery(m.Day, m.Patient, surgeon, m.OT, duration); err != nil {
		return err
	}
	end := st.PAS.endDayFor(m.Day, m.Patient)
	st.NRA.patientArrived(m.Day, end, m.Room, m.Patient)
	return nil
}

func (st *EngineState) commitAssignNurse(m Move) error {
	if _, ok := st.NRA.nurseAt(m.Shift, m.Room); ok {
		return &ActionError{Rule: "I11", Reason: "room already covered by a nurse for this shift"}
	}
	return st.NRA.assignNurse(m.Shift, m.Room, m.Nurse)
}

func (st *EngineState) uncommitAssignNurse(m Move) error {
	return st.NRA.unassignNurse(m.Shift, m.Room, m.Nurse)
}

func (st *EngineState) commitUnassignNurse(m Move) error {
	if ae := st.Checker.CanUnassignNurse(m.Shift, m.Room, m.Nurse); ae != nil {
		return ae
	}
	return st.NRA.unassignNurse(m.Shift, m.Room, m.Nurse)
}

func (st *EngineState) uncommitUnassignNurse(m Move) error {
	return st.NRA.assignNurse(m.Shift, m.Room, m.Nurse)
}

// PatientPlacement and NurseAssignment implement ihtpmodel.SolutionSource,
// letting the solution serialiser read the final tensors without
// depending on pkg/ihtpengine.

func (st *EngineState) PatientPlacement(patient int) (day, room, ot int, scheduled bool) {
	day, room, scheduled = st.PAS.lookupSchedule(patient)
	if !scheduled {
		return 0, 0, 0, false
	}
	_, _, ot, _, _ = st.SCP.lookupSurgery(patient)
	return day, room, ot, true
}

func (st *EngineState) NurseAssignment(shift, room int) (nurse int, ok bool) {
	return st.NRA.nurseAt(shift, room)
}
