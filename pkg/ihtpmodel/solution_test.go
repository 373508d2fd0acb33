package ihtpmodel

import (
	"bytes"
	"encoding/json"
	"testing"
)

// fakeSolutionSource is a hand-built SolutionSource for testing the
// serialiser without depending on pkg/ihtpengine.
type fakeSolutionSource struct {
	placements map[int][3]int // patient -> (day, room, ot), absent means unscheduled
	assigns    map[[2]int]int // (shift, room) -> nurse
}

func (f *fakeSolutionSource) PatientPlacement(patient int) (day, room, ot int, scheduled bool) {
	p, ok := f.placements[patient]
	if !ok {
		return 0, 0, 0, false
	}
	return p[0], p[1], p[2], true
}

func (f *fakeSolutionSource) NurseAssignment(shift, room int) (nurse int, ok bool) {
	n, ok := f.assigns[[2]int{shift, room}]
	return n, ok
}

func TestWriteSolution_UnscheduledPatientOmitsRoomAndOT(t *testing.T) {
	inst, err := LoadInstance(newReader(minimalInstanceJSON))
	if err != nil {
		t.Fatalf("LoadInstance: %v", err)
	}
	src := &fakeSolutionSource{placements: map[int][3]int{}, assigns: map[[2]int]int{}}

	var buf bytes.Buffer
	if err := WriteSolution(&buf, inst, src); err != nil {
		t.Fatalf("WriteSolution: %v", err)
	}

	var got wireSolution
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if len(got.Patients) != 1 {
		t.Fatalf("expected one patient entry, got %d", len(got.Patients))
	}
	p := got.Patients[0]
	if p.ID != "P0" || p.AdmissionDay != "none" || p.Room != "" || p.OperatingTheatre != "" {
		t.Fatalf("unscheduled patient entry = %+v, want admission_day=none and no room/OT", p)
	}
}

func TestWriteSolution_ScheduledPatientIncludesPlacement(t *testing.T) {
	inst, err := LoadInstance(newReader(minimalInstanceJSON))
	if err != nil {
		t.Fatalf("LoadInstance: %v", err)
	}
	src := &fakeSolutionSource{
		placements: map[int][3]int{0: {0, 0, 1}}, // patient 0 -> day 0, room R0, OT1
		assigns:    map[[2]int]int{{0, 0}: 0},    // shift 0, room R0 -> nurse 0
	}

	var buf bytes.Buffer
	if err := WriteSolution(&buf, inst, src); err != nil {
		t.Fatalf("WriteSolution: %v", err)
	}

	var got wireSolution
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	p := got.Patients[0]
	if p.AdmissionDay != float64(0) || p.Room != "R0" || p.OperatingTheatre != "OT1" {
		t.Fatalf("scheduled patient entry = %+v", p)
	}

	if len(got.Nurses) != 1 || len(got.Nurses[0].Assignments) != 1 {
		t.Fatalf("expected one nurse with one assignment entry, got %+v", got.Nurses)
	}
	a := got.Nurses[0].Assignments[0]
	if a.Day != 0 || a.Shift != 0 || len(a.Rooms) != 1 || a.Rooms[0] != "R0" {
		t.Fatalf("nurse assignment = %+v, want day 0 shift 0 room R0", a)
	}
}
