package ihtpengine

import (
	"strings"
	"testing"

	"github.com/ihtp/scheduler/pkg/ihtpmodel"
)

// capacityInstanceJSON is built specifically to separate the admission day
// from a later day within the same stay: R0 has capacity 2, holds OCC0 for
// days 0-1, and PA fills R0's other day-1 slot. Day 0 alone still has a
// free slot. A length-of-stay-2 candidate admitted on day 0 looks fine by
// day 0's count alone but would push day 1 to 3 residents.
const capacityInstanceJSON = `{
  "days": 3,
  "skill_levels": 1,
  "shift_types": ["morning"],
  "age_groups": ["young"],
  "weights": {
    "room_mixed_age": 1, "room_nurse_skill": 1, "continuity_of_care": 1,
    "nurse_eccessive_workload": 1, "open_operating_theater": 1,
    "surgeon_transfer": 1, "patient_delay": 1, "unscheduled_optional": 1
  },
  "rooms": [{"id": "R0", "capacity": 2}],
  "operating_theaters": [{"id": "DUMMY", "availability": [0, 0, 0]}, {"id": "OT1", "availability": [480, 480, 480]}],
  "surgeons": [{"id": "SG0", "max_surgery_time": [480, 480, 480]}],
  "occupants": [
    {
      "id": "OCC0", "gender": "M", "age_group": 0, "length_of_stay": 2,
      "workload_produced": [1, 1], "skill_level_required": [1, 1], "room_id": "R0"
    }
  ],
  "patients": [
    {
      "id": "PA", "mandatory": true, "gender": "M", "age_group": 0, "length_of_stay": 1,
      "surgery_release_day": 0, "surgery_due_day": 1, "surgery_duration": 30,
      "surgeon_id": "SG0", "incompatible_room_ids": [],
      "workload_produced": [1], "skill_level_required": [1]
    },
    {
      "id": "PB", "mandatory": false, "gender": "M", "age_group": 0, "length_of_stay": 2,
      "surgery_release_day": 0, "surgery_duration": 30,
      "surgeon_id": "SG0", "incompatible_room_ids": [],
      "workload_produced": [1, 1], "skill_level_required": [1, 1]
    }
  ],
  "nurses": [
    {
      "id": "N0", "skill_level": 1,
      "working_shifts": [{"day": 0, "shift": 0, "max_load": 10}, {"day": 1, "shift": 0, "max_load": 10}, {"day": 2, "shift": 0, "max_load": 10}]
    }
  ]
}`

// TestScheduleAdmission_CapacityCheckedAcrossFullStay exercises H7 for a
// patient whose length of stay spans more than one day: the admission day
// alone has a free slot, but a later day within the stay is already at
// capacity. CanScheduleAdmission must reject this, not just check the
// admission day.
func TestScheduleAdmission_CapacityCheckedAcrossFullStay(t *testing.T) {
	inst, err := ihtpmodel.LoadInstance(strings.NewReader(capacityInstanceJSON))
	if err != nil {
		t.Fatalf("LoadInstance: %v", err)
	}
	st, err := NewEngineState(inst)
	if err != nil {
		t.Fatalf("NewEngineState: %v", err)
	}

	r0 := mustRoom(t, st, "R0")
	ot1 := mustOT(t, st, "OT1")
	pa := mustIdx(t, st, "PA")
	pb := mustIdx(t, st, "PB")

	if err := st.Commit(Move{Kind: MoveAssignNurse, Shift: 0, Room: r0, Nurse: 0}); err != nil {
		t.Fatalf("AssignNurse(day 0): %v", err)
	}
	if err := st.Commit(Move{Kind: MoveAssignNurse, Shift: 1, Room: r0, Nurse: 0}); err != nil {
		t.Fatalf("AssignNurse(day 1): %v", err)
	}

	// PA fills R0's remaining day-1 slot (OCC0 + PA == capacity 2).
	if err := st.Commit(Move{Kind: MoveScheduleAdmission, Day: 1, Room: r0, Patient: pa, OT: ot1}); err != nil {
		t.Fatalf("scheduling PA into R0's free day-1 slot should succeed: %v", err)
	}

	// PB's 2-day stay starting day 0 looks fine by day 0 alone (OCC0 + PB
	// == 2), but day 1 would hold OCC0 + PA + PB == 3, over capacity.
	err = st.Commit(Move{Kind: MoveScheduleAdmission, Day: 0, Room: r0, Patient: pb, OT: ot1})
	ae, ok := err.(*ActionError)
	if !ok {
		t.Fatalf("err = %v, want *ActionError", err)
	}
	if ae.Rule != "H7" {
		t.Fatalf("ae.Rule = %q, want H7", ae.Rule)
	}
	if st.PAS.isScheduled(pb) {
		t.Fatalf("rejected move must not mutate state")
	}
}
