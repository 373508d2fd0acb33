package ihtpengine

import (
	"strings"
	"testing"

	"github.com/ihtp/scheduler/pkg/ihtpmodel"
)

// testInstanceJSON describes a small instance for the H1, H6, H7 and H8
// tests (H2, H3 and H4 cannot trigger here: no patient has an incompatible
// room, and surgeon/OT budgets exceed all durations): an occupant already
// in R0 constrains H1
// (gender) and H7 (capacity) for anyone scheduled alongside them; P0 is
// mandatory with a tight due day (H6); P1 is optional and a different
// gender from the occupant.
const testInstanceJSON = `{
  "days": 3,
  "skill_levels": 2,
  "shift_types": ["morning", "evening", "night"],
  "age_groups": ["young", "old"],
  "weights": {
    "room_mixed_age": 1,
    "room_nurse_skill": 1,
    "continuity_of_care": 1,
    "nurse_eccessive_workload": 1,
    "open_operating_theater": 1,
    "surgeon_transfer": 1,
    "patient_delay": 1,
    "unscheduled_optional": 1
  },
  "rooms": [
    {"id": "R0", "capacity": 2},
    {"id": "R1", "capacity": 2}
  ],
  "operating_theaters": [
    {"id": "DUMMY", "availability": [0, 0, 0]},
    {"id": "OT1", "availability": [480, 480, 480]}
  ],
  "surgeons": [
    {"id": "SG0", "max_surgery_time": [480, 480, 480]}
  ],
  "occupants": [
    {
      "id": "OCC0", "gender": "M", "age_group": 0, "length_of_stay": 2,
      "workload_produced": [1, 1, 1, 1, 1, 1],
      "skill_level_required": [1, 1, 1, 1, 1, 1],
      "room_id": "R0"
    }
  ],
  "patients": [
    {
      "id": "P0", "mandatory": true, "gender": "M", "age_group": 0, "length_of_stay": 1,
      "surgery_release_day": 0, "surgery_due_day": 2, "surgery_duration": 60,
      "surgeon_id": "SG0", "incompatible_room_ids": [],
      "workload_produced": [1, 1, 1], "skill_level_required": [1, 1, 1]
    },
    {
      "id": "P1", "mandatory": false, "gender": "F", "age_group": 1, "length_of_stay": 1,
      "surgery_release_day": 0, "surgery_duration": 30,
      "surgeon_id": "SG0", "incompatible_room_ids": [],
      "workload_produced": [1, 1, 1], "skill_level_required": [1, 1, 1]
    }
  ],
  "nurses": [
    {
      "id": "N0", "skill_level": 2,
      "working_shifts": [
        {"day": 0, "shift": 0, "max_load": 10}, {"day": 0, "shift": 1, "max_load": 10}, {"day": 0, "shift": 2, "max_load": 10},
        {"day": 1, "shift": 0, "max_load": 10}, {"day": 1, "shift": 1, "max_load": 10}, {"day": 1, "shift": 2, "max_load": 10},
        {"day": 2, "shift": 0, "max_load": 10}, {"day": 2, "shift": 1, "max_load": 10}, {"day": 2, "shift": 2, "max_load": 10}
      ]
    }
  ]
}`

func loadTestInstance(t *testing.T) *ihtpmodel.Instance {
	t.Helper()
	inst, err := ihtpmodel.LoadInstance(strings.NewReader(testInstanceJSON))
	if err != nil {
		t.Fatalf("LoadInstance: %v", err)
	}
	return inst
}

func newTestEngine(t *testing.T) *EngineState {
	t.Helper()
	inst := loadTestInstance(t)
	st, err := NewEngineState(inst)
	if err != nil {
		t.Fatalf("NewEngineState: %v", err)
	}
	return st
}

// mustIdx looks up a unified patient index by its wire id, failing the test
// if it isn't found under either "occupants" or "patients".
func mustIdx(t *testing.T, st *EngineState, wireID string) int {
	t.Helper()
	inst := st.Instance
	for p := 0; p < inst.NumPersons(); p++ {
		if inst.PersonBase(p).ID == wireID {
			return p
		}
	}
	t.Fatalf("no person with id %q", wireID)
	return -1
}

func mustRoom(t *testing.T, st *EngineState, wireID string) int {
	t.Helper()
	for r, room := range st.Instance.Rooms {
		if room.ID == wireID {
			return r
		}
	}
	t.Fatalf("no room with id %q", wireID)
	return -1
}

func mustOT(t *testing.T, st *EngineState, wireID string) int {
	t.Helper()
	for i, ot := range st.Instance.OTs {
		if ot.ID == wireID {
			return i
		}
	}
	t.Fatalf("no OT with id %q", wireID)
	return -1
}
