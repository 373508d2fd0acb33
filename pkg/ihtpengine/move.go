package ihtpengine

import (
	"fmt"

	"github.com/ihtp/scheduler/pkg/ihtpidx"
	"github.com/ihtp/scheduler/pkg/ihtpmodel"
)

// MoveKind tags which of the four move variants (spec §4.7) a Move value
// holds. The driver dispatches on it with a single switch, matching the
// "dynamic dispatch over move variants" design note (spec §9).
type MoveKind int

const (
	MoveScheduleAdmission MoveKind = iota
	MoveUnscheduleAdmission
	MoveAssignNurse
	MoveUnassignNurse
)

func (k MoveKind) String() string {
	switch k {
	case MoveScheduleAdmission:
		return "schedule_admission"
	case MoveUnscheduleAdmission:
		return "unschedule_admission"
	case MoveAssignNurse:
		return "assign_nurse"
	case MoveUnassignNurse:
		return "unassign_nurse"
	default:
		return "unknown"
	}
}

// Move is the tagged union of the four move variants: ScheduleAdmission and
// UnscheduleAdmission use Day/Room/Patient/OT; AssignNurse and
// UnassignNurse use Shift/Room/Nurse. All fields hold dense indices, not
// string ids.
type Move struct {
	Kind    MoveKind
	Day     int // admission moves
	Room    int // all moves
	Patient int // admission moves
	OT      int // admission moves
	Shift   int // nurse moves
	Nurse   int // nurse moves
}

// Equal implements the tabu-list equality rules of spec §4.7: admission
// moves of the same kind compare all four (day, room, patient, OT)
// components; nurse moves of the same kind compare only (room, nurse),
// deliberately ignoring the shift -- an aggressive, intentional
// diversification the driver must not "fix" into full-tuple equality
// (spec §9). Moves of different kinds are never equal, even if one is an
// Assign and the other an Unassign of the same (room, nurse): spec's
// aggressive-equality note describes shift-blindness within one direction,
// not direction-blindness, so that is not collapsed here.
func (m Move) Equal(o Move) bool {
	if m.Kind != o.Kind {
		return false
	}
	switch m.Kind {
	case MoveScheduleAdmission, MoveUnscheduleAdmission:
		return m.Day == o.Day && m.Room == o.Room && m.Patient == o.Patient && m.OT == o.OT
	case MoveAssignNurse, MoveUnassignNurse:
		return m.Room == o.Room && m.Nurse == o.Nurse
	}
	return false
}

// String renders a human-readable action string for the CSV log sink
// (spec §6), resolving dense indices back to their wire ids through inst's
// Indexer.
func (m Move) String(inst *ihtpmodel.Instance) string {
	roomID, _ := inst.Indexer.ByIndex(ihtpidx.KindRooms, m.Room)
	switch m.Kind {
	case MoveScheduleAdmission, MoveUnscheduleAdmission:
		patID, _ := inst.Indexer.ByIndex(ihtpidx.KindPatients, m.Patient)
		otID, _ := inst.Indexer.ByIndex(ihtpidx.KindOperatingTheatres, m.OT)
		verb := "schedule"
		if m.Kind == MoveUnscheduleAdmission {
			verb = "unschedule"
		}
		return fmt.Sprintf("%s patient %s in room %s on day %d via OT %s", verb, patID, roomID, m.Day, otID)
	case MoveAssignNurse, MoveUnassignNurse:
		nurseID, _ := inst.Indexer.ByIndex(ihtpidx.KindNurses, m.Nurse)
		verb := "assign"
		if m.Kind == MoveUnassignNurse {
			verb = "unassign"
		}
		return fmt.Sprintf("%s nurse %s to room %s for shift %d", verb, nurseID, roomID, m.Shift)
	}
	return "unknown move"
}
