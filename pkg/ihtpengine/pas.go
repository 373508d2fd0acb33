package ihtpengine

import (
	"fmt"
	"strings"

	"github.com/ihtp/scheduler/pkg/ihtpidx"
	"github.com/ihtp/scheduler/pkg/ihtpmodel"
)

// pasCell is the linear index type for the PAS tensor: a bit set at
// pasCell(i) means patient p occupies room r on day d, where i packs
// (d, r, p) row-major as (d*numRooms+r)*numPersons+p, per spec §9's "big
// dense bitmap layout" guidance.
type pasCell uint32

// admission records a unified patient index's current placement, giving
// isScheduled/lookupSchedule O(1) access instead of a bitmap scan.
type admission struct {
	day, room int
	scheduled bool
}

// PASState is the Patient Admission Scheduling tensor: PAS[day, room,
// patient]. It is mutated only by the TabuDriver through the move
// pipeline (spec §4.2).
type PASState struct {
	inst       *ihtpmodel.Instance
	days       int
	numRooms   int
	numPersons int
	bm         ihtpidx.Bitmap[pasCell]
	adm        []admission // one per unified person index
}

// NewPASState returns an empty PASState sized for inst.
func NewPASState(inst *ihtpmodel.Instance) *PASState {
	numPersons := inst.NumPersons()
	numRooms := len(inst.Rooms)
	return &PASState{
		inst:       inst,
		days:       inst.Days,
		numRooms:   numRooms,
		numPersons: numPersons,
		bm:         ihtpidx.MakeBitmap[pasCell](inst.Days * numRooms * numPersons),
		adm:        make([]admission, numPersons),
	}
}

func (s *PASState) cell(day, room, person int) pasCell {
	return pasCell((day*s.numRooms+room)*s.numPersons + person)
}

// rowBounds returns the [lo, hi) range of linear cells covering every
// person in (day, room).
func (s *PASState) rowBounds(day, room int) (pasCell, pasCell) {
	lo := pasCell((day*s.numRooms + room) * s.numPersons)
	return lo, lo + pasCell(s.numPersons)
}

// scheduleInterval writes 1s for patient over [day, min(D, day+L)) in room,
// and records the admission. Callers (MoveGenerator-screened moves) must
// ensure the patient is not already scheduled; violating that is an
// InvariantError, not an ActionError, since it can only happen from a bug.
func (s *PASState) scheduleInterval(day, room, patient int) error {
	if s.adm[patient].scheduled {
		return &InvariantError{Reason: fmt.Sprintf("scheduleInterval: patient %d already scheduled", patient)}
	}
	los := s.inst.PersonBase(patient).LengthOfStay
	end := min(s.days, day+los)
	for d := day; d < end; d++ {
		s.bm.Set(s.cell(d, room, patient))
	}
	s.adm[patient] = admission{day: day, room: room, scheduled: true}
	return nil
}

// unschedulePatient clears every cell for patient. Calling it on a patient
// that isn't scheduled is an InvariantError.
func (s *PASState) unschedulePatient(patient int) error {
	a := s.adm[patient]
	if !a.scheduled {
		return &InvariantError{Reason: fmt.Sprintf("unschedulePatient: patient %d not scheduled", patient)}
	}
	los := s.inst.PersonBase(patient).LengthOfStay
	end := min(s.days, a.day+los)
	for d := a.day; d < end; d++ {
		s.bm.Remove(s.cell(d, a.room, patient))
	}
	s.adm[patient] = admission{}
	return nil
}

// isScheduled reports whether patient currently occupies any cell.
func (s *PASState) isScheduled(patient int) bool {
	return s.adm[patient].scheduled
}

// lookupSchedule returns the current (day, room) for patient.
func (s *PASState) lookupSchedule(patient int) (day, room int, ok bool) {
	a := s.adm[patient]
	return a.day, a.room, a.scheduled
}

// endDayFor returns the day just past patient's occupancy interval, given a
// hypothetical admission day (used before the admission record exists).
func (s *PASState) endDayFor(day, patient int) int {
	return min(s.days, day+s.inst.PersonBase(patient).LengthOfStay)
}

// admissionWindowOk implements H6: releaseDay <= day, and day <= dueDay if
// the patient is mandatory.
func (s *PASState) admissionWindowOk(day, patient int) bool {
	if s.inst.IsOccupant(patient) {
		return day == 0
	}
	p := s.inst.PatientAt(patient)
	if day < p.SurgeryReleaseDay {
		return false
	}
	if p.HasDueDay() && day > p.SurgeryDueDay {
		return false
	}
	return true
}

// roomCompatible implements H2: room must not be in the patient's
// incompatible room list. Occupants have none.
func (s *PASState) roomCompatible(room, patient int) bool {
	if s.inst.IsOccupant(patient) {
		return true
	}
	p := s.inst.PatientAt(patient)
	for _, r := range p.IncompatibleRooms {
		if r == room {
			return false
		}
	}
	return true
}

// capacityOk implements H7 over [day, end) for a hypothetical additional
// occupant of room: on every one of those days, the room's existing
// population plus one must not exceed capacity.
func (s *PASState) capacityOk(day, end, room int) bool {
	cap := s.inst.Rooms[room].Capacity
	for d := day; d < end; d++ {
		lo, hi := s.rowBounds(d, room)
		if s.bm.CountWithin(lo, hi)+1 > cap {
			return false
		}
	}
	return true
}

// genderOk implements H1 over [day, end) for a hypothetical patient placed
// in room: every already-present resident on each of those days must share
// patient's gender.
func (s *PASState) genderOk(day, end, room, patient int) bool {
	gender := s.inst.PersonBase(patient).Gender
	for d := day; d < end; d++ {
		lo, hi := s.rowBounds(d, room)
		base := int((d*s.numRooms + room) * s.numPersons)
		for cell := range s.bm.RangeWithin(lo, hi) {
			other := int(cell) - base
			if other == patient {
				continue
			}
			if s.inst.PersonBase(other).Gender != gender {
				return false
			}
		}
	}
	return true
}

// roomEmpty reports whether no resident occupies (day, room).
func (s *PASState) roomEmpty(day, room int) bool {
	lo, hi := s.rowBounds(day, room)
	return !s.bm.AnyWithin(lo, hi)
}

// residentsOf iterates the unified person indices occupying (day, room).
func (s *PASState) residentsOf(day, room int) func(yield func(int) bool) {
	lo, hi := s.rowBounds(day, room)
	base := int((day*s.numRooms + room) * s.numPersons)
	return func(yield func(int) bool) {
		for cell := range s.bm.RangeWithin(lo, hi) {
			if !yield(int(cell) - base) {
				return
			}
		}
	}
}

// clone deep-copies the tensor for snapshotting.
func (s *PASState) clone() *PASState {
	out := &PASState{
		inst:       s.inst,
		days:       s.days,
		numRooms:   s.numRooms,
		numPersons: s.numPersons,
		adm:        append([]admission(nil), s.adm...),
	}
	out.bm.CloneFrom(s.bm)
	return out
}

// restoreFrom overwrites s's contents with src's (same shape).
func (s *PASState) restoreFrom(src *PASState) {
	s.bm.CloneFrom(src.bm)
	copy(s.adm, src.adm)
}

// String renders a compact per-day, per-room occupant grid for debugging
// (spec's supplemented "hospital.print()" feature). Nothing in the module
// calls it.
func (s *PASState) String() string {
	var b strings.Builder
	for d := 0; d < s.days; d++ {
		fmt.Fprintf(&b, "day %d:\n", d)
		for r := 0; r < s.numRooms; r++ {
			b.WriteString("  room ")
			b.WriteString(s.inst.Rooms[r].ID)
			b.WriteString(": ")
			first := true
			for p := range s.residentsOf(d, r) {
				if !first {
					b.WriteString(", ")
				}
				first = false
				fmt.Fprintf(&b, "%d", p)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
