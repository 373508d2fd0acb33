package ihtpengine

import "github.com/ihtp/scheduler/pkg/ihtpmodel"

// MoveGenerator enumerates the legal neighbourhood around an EngineState's
// current tensors (spec §4.8). It never tests hard constraints itself --
// candidates are screened by ConstraintChecker when the driver probes them
// -- so the lists returned here can and do include inadmissible moves.
type MoveGenerator struct {
	st *EngineState
}

func newMoveGenerator(st *EngineState) *MoveGenerator {
	return &MoveGenerator{st: st}
}

// Generate returns every candidate move for the current tensors.
func (g *MoveGenerator) Generate() []Move {
	moves := g.admissionMoves()
	moves = append(moves, g.nurseMoves()...)
	return moves
}

// admissionMoves implements the patient half of spec §4.8: unschedule moves
// for every currently-scheduled non-occupant patient, and schedule moves
// for eligible unscheduled ones, subject to mandatory-first filtering --
// if any mandatory patient is currently unscheduled, optional unscheduled
// patients contribute no ScheduleAdmission candidates at all.
func (g *MoveGenerator) admissionMoves() []Move {
	inst := g.st.Instance
	pas, scp := g.st.PAS, g.st.SCP

	anyMandatoryUnscheduled := false
	for p := inst.NumOccupants(); p < inst.NumPersons(); p++ {
		if pat := inst.PatientAt(p); pat.Mandatory && !pas.isScheduled(p) {
			anyMandatoryUnscheduled = true
			break
		}
	}

	var moves []Move
	for p := inst.NumOccupants(); p < inst.NumPersons(); p++ {
		pat := inst.PatientAt(p)
		if pas.isScheduled(p) {
			day, room, _ := pas.lookupSchedule(p)
			_, _, ot, _, _ := scp.lookupSurgery(p)
			moves = append(moves, Move{Kind: MoveUnscheduleAdmission, Day: day, Room: room, Patient: p, OT: ot})
			continue
		}
		if anyMandatoryUnscheduled && !pat.Mandatory {
			continue
		}
		lastDay := inst.Days - 1
		if pat.HasDueDay() && pat.SurgeryDueDay < lastDay {
			lastDay = pat.SurgeryDueDay
		}
		for day := pat.SurgeryReleaseDay; day <= lastDay; day++ {
			for r := range inst.Rooms {
				if incompatibleRoom(pat, r) {
					continue
				}
				for ot := range inst.OTs {
					if ot == ihtpmodel.DummyOT {
						continue
					}
					moves = append(moves, Move{Kind: MoveScheduleAdmission, Day: day, Room: r, Patient: p, OT: ot})
				}
			}
		}
	}
	return moves
}

func incompatibleRoom(pat *ihtpmodel.Patient, room int) bool {
	for _, r := range pat.IncompatibleRooms {
		if r == room {
			return true
		}
	}
	return false
}

// nurseMoves implements the nurse half of spec §4.8: for every (nurse,
// working shift, room) pair, emit UnassignNurse if the nurse currently
// holds it, else AssignNurse.
func (g *MoveGenerator) nurseMoves() []Move {
	inst := g.st.Instance
	nra := g.st.NRA
	S := inst.ShiftsPerDay()

	var moves []Move
	for n := range inst.Nurses {
		for _, ws := range inst.Nurses[n].WorkingShifts {
			shift := ws.ShiftIndex(S)
			for r := range inst.Rooms {
				if cur, ok := nra.nurseAt(shift, r); ok && cur == n {
					moves = append(moves, Move{Kind: MoveUnassignNurse, Shift: shift, Room: r, Nurse: n})
				} else {
					moves = append(moves, Move{Kind: MoveAssignNurse, Shift: shift, Room: r, Nurse: n})
				}
			}
		}
	}
	return moves
}
