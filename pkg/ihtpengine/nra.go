package ihtpengine

import (
	"fmt"

	"github.com/ihtp/scheduler/pkg/ihtpidx"
	"github.com/ihtp/scheduler/pkg/ihtpmodel"
)

// nraCell is the linear index type for the NRA tensor, packed row-major as
// (shift*numRooms+room)*numNurses+nurse.
type nraCell uint32

// NRAState is the Nurse-to-Room Assignment tensor: NRA[shift, room, nurse],
// plus the two derived per-(shift,room) views spec §3 requires alongside
// it. It is mutated only by the TabuDriver through the move pipeline.
type NRAState struct {
	inst       *ihtpmodel.Instance
	shifts     int
	numRooms   int
	numNurses  int
	skillLevels int
	bm         ihtpidx.Bitmap[nraCell]

	workloadReq []int32 // [shift*numRooms+room]
	skillReq    []int32 // [shift*numRooms+room], derived from skillCounts
	skillCounts []int16 // [(shift*numRooms+room)*(skillLevels+1)+level]
}

// NewNRAState returns an empty NRAState sized for inst.
func NewNRAState(inst *ihtpmodel.Instance) *NRAState {
	shifts := inst.NumShifts()
	numRooms := len(inst.Rooms)
	numNurses := len(inst.Nurses)
	levels := inst.SkillLevels + 1
	return &NRAState{
		inst:        inst,
		shifts:      shifts,
		numRooms:    numRooms,
		numNurses:   numNurses,
		skillLevels: inst.SkillLevels,
		bm:          ihtpidx.MakeBitmap[nraCell](shifts * numRooms * numNurses),
		workloadReq: make([]int32, shifts*numRooms),
		skillReq:    make([]int32, shifts*numRooms),
		skillCounts: make([]int16, shifts*numRooms*levels),
	}
}

func (s *NRAState) cell(shift, room, nurse int) nraCell {
	return nraCell((shift*s.numRooms+room)*s.numNurses + nurse)
}

func (s *NRAState) rowBounds(shift, room int) (nraCell, nraCell) {
	lo := nraCell((shift*s.numRooms + room) * s.numNurses)
	return lo, lo + nraCell(s.numNurses)
}

func (s *NRAState) reqIdx(shift, room int) int { return shift*s.numRooms + room }

// assignNurse sets the (shift, room, nurse) bit. It is an InvariantError to
// assign a nurse to a shift it doesn't work, or to a cell already covered
// by some nurse (I11: at most one nurse per (shift, room)).
func (s *NRAState) assignNurse(shift, room, nurse int) error {
	n := &s.inst.Nurses[nurse]
	shiftsPerDay := s.inst.ShiftsPerDay()
	if !n.Works(shift, shiftsPerDay) {
		return &InvariantError{Reason: fmt.Sprintf("assignNurse: nurse %d does not work shift %d", nurse, shift)}
	}
	lo, hi := s.rowBounds(shift, room)
	if s.bm.AnyWithin(lo, hi) {
		return &InvariantError{Reason: fmt.Sprintf("assignNurse: (shift %d, room %d) already covered", shift, room)}
	}
	s.bm.Set(s.cell(shift, room, nurse))
	return nil
}

// unassignNurse clears the (shift, room, nurse) bit.
func (s *NRAState) unassignNurse(shift, room, nurse int) error {
	if !s.bm.Contains(s.cell(shift, room, nurse)) {
		return &InvariantError{Reason: fmt.Sprintf("unassignNurse: nurse %d not assigned to (shift %d, room %d)", nurse, shift, room)}
	}
	s.bm.Remove(s.cell(shift, room, nurse))
	return nil
}

// nurseAt returns the nurse assigned to (shift, room), if any.
func (s *NRAState) nurseAt(shift, room int) (int, bool) {
	lo, hi := s.rowBounds(shift, room)
	base := int((shift*s.numRooms + room) * s.numNurses)
	for cell := range s.bm.RangeWithin(lo, hi) {
		return int(cell) - base, true
	}
	return 0, false
}

// patientArrived folds patient's workload/skill contribution into the
// derived views for every shift in [day, endDay) within room, aligned so
// offset 0 of the patient's own arrays corresponds to shift day*S.
func (s *NRAState) patientArrived(day, endDay, room, patient int) {
	S := s.inst.ShiftsPerDay()
	for shift := day * S; shift < endDay*S; shift++ {
		offset := shift - day*S
		idx := s.reqIdx(shift, room)
		s.workloadReq[idx] += int32(s.inst.PersonWorkload(patient, offset))
		lvl := s.inst.PersonSkillRequired(patient, offset)
		if lvl < 0 {
			lvl = 0
		}
		if lvl > s.skillLevels {
			lvl = s.skillLevels
		}
		s.skillCounts[idx*(s.skillLevels+1)+lvl]++
		if int32(lvl) > s.skillReq[idx] {
			s.skillReq[idx] = int32(lvl)
		}
	}
}

// patientDeparted reverses patientArrived for the same interval.
func (s *NRAState) patientDeparted(day, endDay, room, patient int) {
	S := s.inst.ShiftsPerDay()
	for shift := day * S; shift < endDay*S; shift++ {
		offset := shift - day*S
		idx := s.reqIdx(shift, room)
		s.workloadReq[idx] -= int32(s.inst.PersonWorkload(patient, offset))
		lvl := s.inst.PersonSkillRequired(patient, offset)
		if lvl < 0 {
			lvl = 0
		}
		if lvl > s.skillLevels {
			lvl = s.skillLevels
		}
		base := idx * (s.skillLevels + 1)
		s.skillCounts[base+lvl]--
		if int32(lvl) == s.skillReq[idx] && s.skillCounts[base+lvl] == 0 {
			nl := lvl
			for nl > 0 && s.skillCounts[base+nl] == 0 {
				nl--
			}
			s.skillReq[idx] = int32(nl)
		}
	}
}

// coverageOk implements H8: every shift in [day, endDay) must have some
// nurse assigned to room.
func (s *NRAState) coverageOk(day, endDay, room int) bool {
	S := s.inst.ShiftsPerDay()
	for shift := day * S; shift < endDay*S; shift++ {
		if _, ok := s.nurseAt(shift, room); !ok {
			return false
		}
	}
	return true
}

// WorkloadReq returns the derived workload requirement for (shift, room).
func (s *NRAState) WorkloadReq(shift, room int) int { return int(s.workloadReq[s.reqIdx(shift, room)]) }

// SkillReq returns the derived skill requirement for (shift, room).
func (s *NRAState) SkillReq(shift, room int) int { return int(s.skillReq[s.reqIdx(shift, room)]) }

// nurseAssignments iterates (shift, room) pairs currently held by nurse.
func (s *NRAState) nurseAssignments(nurse int) func(yield func(shift, room int) bool) {
	return func(yield func(shift, room int) bool) {
		for shift := 0; shift < s.shifts; shift++ {
			for room := 0; room < s.numRooms; room++ {
				if s.bm.Contains(s.cell(shift, room, nurse)) {
					if !yield(shift, room) {
						return
					}
				}
			}
		}
	}
}

// clone deep-copies the tensor and its derived views for snapshotting.
func (s *NRAState) clone() *NRAState {
	out := &NRAState{
		inst:        s.inst,
		shifts:      s.shifts,
		numRooms:    s.numRooms,
		numNurses:   s.numNurses,
		skillLevels: s.skillLevels,
		workloadReq: append([]int32(nil), s.workloadReq...),
		skillReq:    append([]int32(nil), s.skillReq...),
		skillCounts: append([]int16(nil), s.skillCounts...),
	}
	out.bm.CloneFrom(s.bm)
	return out
}

// restoreFrom overwrites s's contents with src's (same shape).
func (s *NRAState) restoreFrom(src *NRAState) {
	s.bm.CloneFrom(src.bm)
	copy(s.workloadReq, src.workloadReq)
	copy(s.skillReq, src.skillReq)
	copy(s.skillCounts, src.skillCounts)
}
