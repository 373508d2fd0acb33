package ihtpengine

import (
	"fmt"

	"github.com/ihtp/scheduler/pkg/ihtpmodel"
)

// surgeryRecord is the current SCP placement for a unified person index.
// Only non-occupant patients ever have an active record: occupants are
// born scheduled in PAS without ever touching SCP (spec notes most
// constraints only apply to the patient tail; SCP's I2 invariant is one of
// them).
type surgeryRecord struct {
	day, surgeon, ot, duration int
	active                     bool
}

// SCPState is the Surgical Case Planning tensor: SCP[day, patient,
// surgeon, OT] holds minutes of surgery (0 if none). It is stored as a
// flat, row-major []int32 (spec §9's "arena-of-integers" layout), with
// running per-(day,surgeon) and per-(day,OT) minute totals maintained
// alongside it so overtime checks are O(1) instead of O(|P|).
type SCPState struct {
	inst         *ihtpmodel.Instance
	days         int
	numPersons   int
	numSurgeons  int
	numOTs       int
	cells        []int32
	rec          []surgeryRecord
	surgeonMins  []int32 // [day*numSurgeons+surgeon]
	otMins       []int32 // [day*numOTs+ot]
	dsoMins      []int32 // [(day*numSurgeons+surgeon)*numOTs+ot], used by S6 (surgeon_transfer)
}

// NewSCPState returns an empty SCPState sized for inst.
func NewSCPState(inst *ihtpmodel.Instance) *SCPState {
	numPersons := inst.NumPersons()
	numSurgeons := len(inst.Surgeons)
	numOTs := len(inst.OTs)
	return &SCPState{
		inst:        inst,
		days:        inst.Days,
		numPersons:  numPersons,
		numSurgeons: numSurgeons,
		numOTs:      numOTs,
		cells:       make([]int32, inst.Days*numPersons*numSurgeons*numOTs),
		rec:         make([]surgeryRecord, numPersons),
		surgeonMins: make([]int32, inst.Days*numSurgeons),
		otMins:      make([]int32, inst.Days*numOTs),
		dsoMins:     make([]int32, inst.Days*numSurgeons*numOTs),
	}
}

func (s *SCPState) dsoIdx(day, surgeon, ot int) int {
	return (day*s.numSurgeons+surgeon)*s.numOTs + ot
}

// DistinctOTs returns the number of non-dummy OTs surgeon has an active
// surgery in on day, used by PenaltyEvaluator's S6 (surgeon_transfer).
func (s *SCPState) DistinctOTs(day, surgeon int) int {
	n := 0
	for ot := 0; ot < s.numOTs; ot++ {
		if ot == ihtpmodel.DummyOT {
			continue
		}
		if s.dsoMins[s.dsoIdx(day, surgeon, ot)] > 0 {
			n++
		}
	}
	return n
}

// OTInUse reports whether ot (non-dummy) has any active surgery on day,
// used by PenaltyEvaluator's S5 (open_operating_theatre).
func (s *SCPState) OTInUse(day, ot int) bool {
	if ot == ihtpmodel.DummyOT {
		return false
	}
	return s.otMins[day*s.numOTs+ot] > 0
}

func (s *SCPState) cellIdx(day, patient, surgeon, ot int) int {
	return ((day*s.numPersons+patient)*s.numSurgeons+surgeon)*s.numOTs + ot
}

// scheduleSurgery places duration minutes of surgery for patient on day,
// performed by surgeon in ot. patient must not already have an active
// record.
func (s *SCPState) scheduleSurgery(day, patient, surgeon, ot, duration int) error {
	if s.rec[patient].active {
		return &InvariantError{Reason: fmt.Sprintf("scheduleSurgery: patient %d already has a surgery record", patient)}
	}
	s.cells[s.cellIdx(day, patient, surgeon, ot)] = int32(duration)
	s.rec[patient] = surgeryRecord{day: day, surgeon: surgeon, ot: ot, duration: duration, active: true}
	s.surgeonMins[day*s.numSurgeons+surgeon] += int32(duration)
	if ot != ihtpmodel.DummyOT {
		s.otMins[day*s.numOTs+ot] += int32(duration)
	}
	s.dsoMins[s.dsoIdx(day, surgeon, ot)] += int32(duration)
	return nil
}

// unschedule clears patient's surgery record, if any. Calling it with no
// active record is an InvariantError.
func (s *SCPState) unschedule(patient int) error {
	r := s.rec[patient]
	if !r.active {
		return &InvariantError{Reason: fmt.Sprintf("unschedule: patient %d has no surgery record", patient)}
	}
	s.cells[s.cellIdx(r.day, patient, r.surgeon, r.ot)] = 0
	s.surgeonMins[r.day*s.numSurgeons+r.surgeon] -= int32(r.duration)
	if r.ot != ihtpmodel.DummyOT {
		s.otMins[r.day*s.numOTs+r.ot] -= int32(r.duration)
	}
	s.dsoMins[s.dsoIdx(r.day, r.surgeon, r.ot)] -= int32(r.duration)
	s.rec[patient] = surgeryRecord{}
	return nil
}

// lookupSurgery returns patient's current surgery placement, if any.
func (s *SCPState) lookupSurgery(patient int) (day, surgeon, ot, duration int, ok bool) {
	r := s.rec[patient]
	return r.day, r.surgeon, r.ot, r.duration, r.active
}

// surgeonOvertimeOk implements H3: the surgeon's committed minutes plus
// extra must not exceed their daily maximum.
func (s *SCPState) surgeonOvertimeOk(day, surgeon, extra int) bool {
	have := int(s.surgeonMins[day*s.numSurgeons+surgeon])
	return have+extra <= s.inst.Surgeons[surgeon].MaxSurgeryTime[day]
}

// otOvertimeOk implements H4: the OT's committed minutes plus extra must
// not exceed its daily availability. The dummy OT has unlimited capacity
// (spec §9: it participates in neither S5, S6, nor H4).
func (s *SCPState) otOvertimeOk(day, ot, extra int) bool {
	if ot == ihtpmodel.DummyOT {
		return true
	}
	have := int(s.otMins[day*s.numOTs+ot])
	return have+extra <= s.inst.OTs[ot].Availability[day]
}

// clone deep-copies the tensor for snapshotting.
func (s *SCPState) clone() *SCPState {
	return &SCPState{
		inst:        s.inst,
		days:        s.days,
		numPersons:  s.numPersons,
		numSurgeons: s.numSurgeons,
		numOTs:      s.numOTs,
		cells:       append([]int32(nil), s.cells...),
		rec:         append([]surgeryRecord(nil), s.rec...),
		surgeonMins: append([]int32(nil), s.surgeonMins...),
		otMins:      append([]int32(nil), s.otMins...),
		dsoMins:     append([]int32(nil), s.dsoMins...),
	}
}

// restoreFrom overwrites s's contents with src's (same shape).
func (s *SCPState) restoreFrom(src *SCPState) {
	copy(s.cells, src.cells)
	copy(s.rec, src.rec)
	copy(s.surgeonMins, src.surgeonMins)
	copy(s.otMins, src.otMins)
	copy(s.dsoMins, src.dsoMins)
}
