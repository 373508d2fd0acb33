package ihtpengine

// Breakdown maps each soft-constraint rule name to its individual
// contribution to the total penalty (spec §4.6). Keys are always present,
// even when the contribution is zero, so property P7 ("sum of breakdown
// == total") is trivial to check.
type Breakdown struct {
	RoomMixedAge         int // S1
	RoomNurseSkill       int // S2
	ContinuityOfCare     int // S3
	NurseExcessiveLoad   int // S4
	OpenOperatingTheatre int // S5
	SurgeonTransfer      int // S6
	PatientDelay         int // S7
	UnscheduledOptional  int // S8
}

// Total returns S1+...+S8. Evaluate stores weighted terms, so this equals
// the total penalty it returns.
func (b Breakdown) Total() int {
	return b.RoomMixedAge + b.RoomNurseSkill + b.ContinuityOfCare + b.NurseExcessiveLoad +
		b.OpenOperatingTheatre + b.SurgeonTransfer + b.PatientDelay + b.UnscheduledOptional
}

// PenaltyEvaluator computes the eight soft-constraint penalties (spec
// §4.6) against an EngineState's current tensors. It holds no mutable
// state: every evaluation is a pure read.
type PenaltyEvaluator struct {
	st *EngineState
}

func newPenaltyEvaluator(st *EngineState) *PenaltyEvaluator {
	return &PenaltyEvaluator{st: st}
}

// Evaluate returns the weighted total penalty and its per-rule breakdown.
// Each Breakdown term is the rule's raw count multiplied by its weight, so
// total == b.Total().
func (e *PenaltyEvaluator) Evaluate() (total int, b Breakdown) {
	w := e.st.Instance.Weights
	b.RoomMixedAge = e.roomMixedAge() * w.RoomMixedAge
	b.RoomNurseSkill = e.roomNurseSkill() * w.RoomNurseSkill
	b.ContinuityOfCare = e.continuityOfCare() * w.ContinuityOfCare
	b.NurseExcessiveLoad = e.nurseExcessiveLoad() * w.NurseExcessiveLoad
	b.OpenOperatingTheatre = e.openOperatingTheatre() * w.OpenOperatingTheatre
	b.SurgeonTransfer = e.surgeonTransfer() * w.SurgeonTransfer
	b.PatientDelay = e.patientDelay() * w.PatientDelay
	b.UnscheduledOptional = e.unscheduledOptional() * w.UnscheduledOptional
	return b.Total(), b
}

// roomMixedAge implements S1: per (day, room) with >=1 resident,
// ageMax-ageMin, summed over all such cells.
func (e *PenaltyEvaluator) roomMixedAge() int {
	pas := e.st.PAS
	inst := e.st.Instance
	sum := 0
	for d := 0; d < inst.Days; d++ {
		for r := 0; r < len(inst.Rooms); r++ {
			minAge, maxAge, any := 0, 0, false
			for p := range pas.residentsOf(d, r) {
				age := inst.PersonBase(p).AgeGroup
				if !any {
					minAge, maxAge, any = age, age, true
					continue
				}
				if age < minAge {
					minAge = age
				}
				if age > maxAge {
					maxAge = age
				}
			}
			if any {
				sum += maxAge - minAge
			}
		}
	}
	return sum
}

// roomNurseSkill implements S2: for every (shift, room) covered by a
// nurse, if the derived skill requirement exceeds the nurse's skill,
// add the positive difference.
func (e *PenaltyEvaluator) roomNurseSkill() int {
	nra := e.st.NRA
	inst := e.st.Instance
	sum := 0
	for shift := 0; shift < inst.NumShifts(); shift++ {
		for r := 0; r < len(inst.Rooms); r++ {
			nurse, ok := nra.nurseAt(shift, r)
			if !ok {
				continue
			}
			if diff := nra.SkillReq(shift, r) - inst.Nurses[nurse].SkillLevel; diff > 0 {
				sum += diff
			}
		}
	}
	return sum
}

// continuityOfCare implements S3: for every scheduled resident, the number
// of distinct nurses seen across the resident's shifts (each shift using
// whichever nurse currently covers the resident's room), summed over
// residents.
func (e *PenaltyEvaluator) continuityOfCare() int {
	pas, nra := e.st.PAS, e.st.NRA
	inst := e.st.Instance
	S := inst.ShiftsPerDay()
	sum := 0
	for p := 0; p < inst.NumPersons(); p++ {
		day, room, ok := pas.lookupSchedule(p)
		if !ok {
			continue
		}
		end := pas.endDayFor(day, p)
		seen := make(map[int]struct{})
		for shift := day * S; shift < end*S; shift++ {
			if nurse, ok := nra.nurseAt(shift, room); ok {
				seen[nurse] = struct{}{}
			}
		}
		sum += len(seen)
	}
	return sum
}

// nurseExcessiveLoad implements S4: for every (shift, room) covered, if the
// derived workload requirement exceeds the covering nurse's max load for
// that shift, add the positive difference.
func (e *PenaltyEvaluator) nurseExcessiveLoad() int {
	nra := e.st.NRA
	inst := e.st.Instance
	S := inst.ShiftsPerDay()
	sum := 0
	for shift := 0; shift < inst.NumShifts(); shift++ {
		for r := 0; r < len(inst.Rooms); r++ {
			nurse, ok := nra.nurseAt(shift, r)
			if !ok {
				continue
			}
			maxLoad, works := inst.Nurses[nurse].MaxLoadForShift(shift, S)
			if !works {
				continue
			}
			if diff := nra.WorkloadReq(shift, r) - maxLoad; diff > 0 {
				sum += diff
			}
		}
	}
	return sum
}

// openOperatingTheatre implements S5: for every (day, OT) with OT != dummy
// and >=1 patient, add 1.
func (e *PenaltyEvaluator) openOperatingTheatre() int {
	scp := e.st.SCP
	inst := e.st.Instance
	sum := 0
	for d := 0; d < inst.Days; d++ {
		for ot := 0; ot < len(inst.OTs); ot++ {
			if scp.OTInUse(d, ot) {
				sum++
			}
		}
	}
	return sum
}

// surgeonTransfer implements S6 using the distinctOTs-1 formulation (the
// Open Question resolution recorded in DESIGN.md): for each (surgeon, day)
// the surgeon operates in more than one non-dummy OT, add distinctOTs-1.
func (e *PenaltyEvaluator) surgeonTransfer() int {
	scp := e.st.SCP
	inst := e.st.Instance
	sum := 0
	for d := 0; d < inst.Days; d++ {
		for s := 0; s < len(inst.Surgeons); s++ {
			if n := scp.DistinctOTs(d, s); n > 1 {
				sum += n - 1
			}
		}
	}
	return sum
}

// patientDelay implements S7: for each scheduled non-occupant patient,
// admissionDay - releaseDay.
func (e *PenaltyEvaluator) patientDelay() int {
	pas := e.st.PAS
	inst := e.st.Instance
	sum := 0
	for p := inst.NumOccupants(); p < inst.NumPersons(); p++ {
		day, _, ok := pas.lookupSchedule(p)
		if !ok {
			continue
		}
		sum += day - inst.PatientAt(p).SurgeryReleaseDay
	}
	return sum
}

// unscheduledOptional implements S8: count of optional, unscheduled
// patients. Mandatory patients left unscheduled are a hard failure (spec
// §4.6), never counted here.
func (e *PenaltyEvaluator) unscheduledOptional() int {
	pas := e.st.PAS
	inst := e.st.Instance
	sum := 0
	for p := inst.NumOccupants(); p < inst.NumPersons(); p++ {
		pat := inst.PatientAt(p)
		if pat.Mandatory {
			continue
		}
		if !pas.isScheduled(p) {
			sum++
		}
	}
	return sum
}
