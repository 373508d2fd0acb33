// Package ihtpmodel implements the immutable instance description (the
// InstanceModel component of spec §2/§3) together with its JSON loader and
// solution serialiser. These are the "external collaborators" the core
// engine (pkg/ihtpengine) depends on through a narrow, in-memory contract:
// everything here is built once, then read-only.
package ihtpmodel

import "github.com/ihtp/scheduler/pkg/ihtpidx"

// Weights holds the non-negative integer weight for each of the eight soft
// constraints. The json tags mirror the wire JSON keys exactly, including
// the "eccessive" misspelling the instance format uses.
type Weights struct {
	RoomMixedAge         int `json:"room_mixed_age"`
	RoomNurseSkill       int `json:"room_nurse_skill"`
	ContinuityOfCare     int `json:"continuity_of_care"`
	NurseExcessiveLoad   int `json:"nurse_eccessive_workload"`
	OpenOperatingTheatre int `json:"open_operating_theater"`
	SurgeonTransfer      int `json:"surgeon_transfer"`
	PatientDelay         int `json:"patient_delay"`
	UnscheduledOptional  int `json:"unscheduled_optional"`
}

// Room is time-independent: its capacity holds on every day.
type Room struct {
	ID       string
	Capacity int
}

// OperatingTheatre at index 0 is the dummy OT by construction: see DummyOT.
// Availability holds one entry per day, in minutes.
type OperatingTheatre struct {
	ID           string
	Availability []int
}

// Surgeon carries a daily maximum surgery time budget, in minutes.
type Surgeon struct {
	ID             string
	MaxSurgeryTime []int
}

// WorkingShift is one shift a nurse is available to work, with the nurse's
// maximum workload for that specific shift.
type WorkingShift struct {
	Day         int
	ShiftOffset int
	MaxLoad     int
}

// Nurse has a skill level and a sparse set of shifts it may be assigned to.
type Nurse struct {
	ID           string
	SkillLevel   int
	WorkingShifts []WorkingShift
}

// ShiftIndex returns the linear shift index for a WorkingShift under a grid
// with shiftsPerDay shift types per day.
func (w WorkingShift) ShiftIndex(shiftsPerDay int) int {
	return w.Day*shiftsPerDay + w.ShiftOffset
}

// MaxLoadForShift returns the nurse's max workload for a linear shift index,
// and whether the nurse actually works that shift.
func (n *Nurse) MaxLoadForShift(shift, shiftsPerDay int) (int, bool) {
	for _, ws := range n.WorkingShifts {
		if ws.ShiftIndex(shiftsPerDay) == shift {
			return ws.MaxLoad, true
		}
	}
	return 0, false
}

// Works reports whether the nurse has any working shift with this linear
// shift index.
func (n *Nurse) Works(shift, shiftsPerDay int) bool {
	_, ok := n.MaxLoadForShift(shift, shiftsPerDay)
	return ok
}

// Occupant is a person already in residence on day 0. Patient embeds it.
type Occupant struct {
	ID                  string
	Gender              string
	AgeGroup            int
	LengthOfStay        int
	WorkloadProduced    []int // indexed [0, LengthOfStay*shiftsPerDay)
	SkillLevelRequired  []int // indexed [0, LengthOfStay*shiftsPerDay)
	RoomIdx             int   // fixed room, as a dense room index
}

// Patient extends Occupant with the surgical-case-planning and admission
// fields. SurgeryDueDay is only meaningful when Mandatory is true.
type Patient struct {
	Occupant
	Mandatory          bool
	SurgeryReleaseDay  int
	SurgeryDueDay      int // -1 when not mandatory / not present
	SurgeryDuration    int
	SurgeonIdx         int
	IncompatibleRooms  []int // dense room indices
}

// HasDueDay reports whether SurgeryDueDay is meaningful (mandatory patients
// only, per spec §3).
func (p *Patient) HasDueDay() bool { return p.Mandatory && p.SurgeryDueDay >= 0 }

// Instance is the complete, immutable input to the engine: days, shift
// grid, age groups, weights, and every entity collection, plus the Indexer
// that maps between their string ids and the dense indices used throughout
// pkg/ihtpengine.
//
// The unified patient index space places all occupants first (indices
// [0, NumOccupants)) followed by all patients (indices
// [NumOccupants, NumOccupants+NumPatients)), per spec §3.
type Instance struct {
	Days        int
	SkillLevels int
	ShiftTypes  []string
	AgeGroups   []string
	Weights     Weights

	Rooms     []Room
	OTs       []OperatingTheatre // OTs[0] is the dummy OT
	Surgeons  []Surgeon
	Occupants []Occupant
	Patients  []Patient
	Nurses    []Nurse

	Indexer *ihtpidx.Indexer
}

// ShiftsPerDay returns S, the number of shift types per day.
func (inst *Instance) ShiftsPerDay() int { return len(inst.ShiftTypes) }

// NumShifts returns D*S, the total number of linear shift slots.
func (inst *Instance) NumShifts() int { return inst.Days * inst.ShiftsPerDay() }

// NumOccupants returns |O|.
func (inst *Instance) NumOccupants() int { return len(inst.Occupants) }

// NumPersons returns |O|+|P|, the size of the unified patient index space.
func (inst *Instance) NumPersons() int { return len(inst.Occupants) + len(inst.Patients) }

// IsOccupant reports whether p names an occupant (fixed placement) rather
// than an elective patient.
func (inst *Instance) IsOccupant(p int) bool { return p < len(inst.Occupants) }

// DummyOT is the synthetic OT index reserved for occupants (spec §3, I3).
const DummyOT = 0

// OccupantAt returns the Occupant at unified index p. p must satisfy
// IsOccupant(p).
func (inst *Instance) OccupantAt(p int) *Occupant {
	return &inst.Occupants[p]
}

// PatientAt returns the Patient at unified index p. p must satisfy
// !IsOccupant(p).
func (inst *Instance) PatientAt(p int) *Patient {
	return &inst.Patients[p-len(inst.Occupants)]
}

// PersonBase returns the common Occupant view of the person at unified
// index p, whether p is an occupant or a patient.
func (inst *Instance) PersonBase(p int) *Occupant {
	if inst.IsOccupant(p) {
		return inst.OccupantAt(p)
	}
	return &inst.PatientAt(p).Occupant
}

// PersonWorkload returns the workload a resident produces at shift offset
// `offset` counted from their admission shift (0-based into their own
// WorkloadProduced slice), or 0 if offset is out of their residency.
func (inst *Instance) PersonWorkload(p int, offset int) int {
	base := inst.PersonBase(p)
	if offset < 0 || offset >= len(base.WorkloadProduced) {
		return 0
	}
	return base.WorkloadProduced[offset]
}

// PersonSkillRequired is PersonWorkload's counterpart for skill level.
func (inst *Instance) PersonSkillRequired(p int, offset int) int {
	base := inst.PersonBase(p)
	if offset < 0 || offset >= len(base.SkillLevelRequired) {
		return 0
	}
	return base.SkillLevelRequired[offset]
}
