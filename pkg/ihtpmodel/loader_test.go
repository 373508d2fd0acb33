package ihtpmodel

import (
	"strings"
	"testing"

	"github.com/ihtp/scheduler/pkg/ihtpidx"
)

const minimalInstanceJSON = `{
  "days": 2,
  "skill_levels": 1,
  "shift_types": ["morning", "evening"],
  "age_groups": ["young"],
  "weights": {
    "room_mixed_age": 1, "room_nurse_skill": 1, "continuity_of_care": 1,
    "nurse_eccessive_workload": 1, "open_operating_theater": 1,
    "surgeon_transfer": 1, "patient_delay": 1, "unscheduled_optional": 1
  },
  "rooms": [{"id": "R0", "capacity": 1}],
  "operating_theaters": [{"id": "DUMMY", "availability": [0, 0]}, {"id": "OT1", "availability": [100, 100]}],
  "surgeons": [{"id": "SG0", "max_surgery_time": [100, 100]}],
  "occupants": [],
  "patients": [
    {
      "id": "P0", "mandatory": false, "gender": "M", "age_group": 0, "length_of_stay": 1,
      "surgery_release_day": 0, "surgery_duration": 30, "surgeon_id": "SG0",
      "incompatible_room_ids": [], "workload_produced": [1, 1], "skill_level_required": [1, 1]
    }
  ],
  "nurses": [
    {"id": "N0", "skill_level": 1, "working_shifts": [{"day": 0, "shift": 0, "max_load": 5}]}
  ]
}`

func newReader(s string) *strings.Reader { return strings.NewReader(s) }

func TestLoadInstance_Valid(t *testing.T) {
	inst, err := LoadInstance(newReader(minimalInstanceJSON))
	if err != nil {
		t.Fatalf("LoadInstance: %v", err)
	}
	if inst.Days != 2 || inst.NumOccupants() != 0 || len(inst.Patients) != 1 || len(inst.Nurses) != 1 {
		t.Fatalf("unexpected instance shape: %+v", inst)
	}
	if got := inst.OTs[0].ID; got != "DUMMY" {
		t.Fatalf("first registered OT should become the dummy OT, got %q", got)
	}
	sgIdx, err := inst.Indexer.ByID(ihtpidx.KindSurgeons, "SG0")
	if err != nil || inst.PatientAt(0).SurgeonIdx != sgIdx {
		t.Fatalf("patient's surgeon_id should resolve to the surgeon's dense index")
	}
}

func TestLoadInstance_RejectsUnknownSurgeonRef(t *testing.T) {
	bad := strings.Replace(minimalInstanceJSON, `"surgeon_id": "SG0"`, `"surgeon_id": "NOPE"`, 1)
	if _, err := LoadInstance(newReader(bad)); err == nil {
		t.Fatalf("an unresolvable surgeon_id should be an InputError")
	} else if _, ok := err.(*InputError); !ok {
		t.Fatalf("err = %T, want *InputError", err)
	}
}

func TestLoadInstance_RejectsLengthMismatch(t *testing.T) {
	bad := strings.Replace(minimalInstanceJSON, `"workload_produced": [1, 1], "skill_level_required": [1, 1]`,
		`"workload_produced": [1], "skill_level_required": [1, 1]`, 1)
	if _, err := LoadInstance(newReader(bad)); err == nil {
		t.Fatalf("a workload_produced length mismatch should be an InputError")
	}
}

func TestLoadInstance_RequiresDueDayForMandatoryPatients(t *testing.T) {
	bad := strings.Replace(minimalInstanceJSON, `"mandatory": false`, `"mandatory": true`, 1)
	if _, err := LoadInstance(newReader(bad)); err == nil {
		t.Fatalf("a mandatory patient missing surgery_due_day should be an InputError")
	}
}

func TestLoadInstance_RejectsMalformedJSON(t *testing.T) {
	if _, err := LoadInstance(newReader("{not json")); err == nil {
		t.Fatalf("malformed json should be an InputError")
	}
}
