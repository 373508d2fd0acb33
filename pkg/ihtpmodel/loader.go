package ihtpmodel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ihtp/scheduler/pkg/ihtpidx"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// InputError is the fatal, load-time error kind of spec §7: malformed
// instance JSON, unknown cross-reference ids, or length mismatches. The
// core engine never constructs one; only LoadInstance does, and it refuses
// to return an Instance when one occurs.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string { return "ihtpmodel: invalid instance: " + e.Reason }

var compiledInstanceSchema *jsonschema.Schema

func instanceSchema() (*jsonschema.Schema, error) {
	if compiledInstanceSchema != nil {
		return compiledInstanceSchema, nil
	}
	c := jsonschema.NewCompiler()
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader([]byte(instanceSchemaJSON)))
	if err != nil {
		return nil, fmt.Errorf("ihtpmodel: parse embedded schema: %w", err)
	}
	const schemaURL = "https://ihtp.example/schema/instance.json"
	if err := c.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("ihtpmodel: add embedded schema: %w", err)
	}
	sch, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("ihtpmodel: compile embedded schema: %w", err)
	}
	compiledInstanceSchema = sch
	return sch, nil
}

// LoadInstance parses, schema-validates, and resolves an instance document
// into an Instance. It is the sole entry point external callers (cmd/ihtp)
// use to build the value the engine operates on; the engine package never
// touches raw JSON.
func LoadInstance(r io.Reader) (*Instance, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &InputError{Reason: "read: " + err.Error()}
	}

	sch, err := instanceSchema()
	if err != nil {
		return nil, err
	}
	var anyDoc any
	if err := json.Unmarshal(raw, &anyDoc); err != nil {
		return nil, &InputError{Reason: "malformed json: " + err.Error()}
	}
	if err := sch.Validate(anyDoc); err != nil {
		return nil, &InputError{Reason: "schema validation: " + err.Error()}
	}

	var w wireInstance
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, &InputError{Reason: "decode: " + err.Error()}
	}
	return resolve(&w)
}

func resolve(w *wireInstance) (inst *Instance, err error) {
	// Indexer.Register panics on a repeated id; the schema does not check
	// uniqueness, so a repeated id in the document is reported here.
	defer func() {
		if r := recover(); r != nil {
			inst, err = nil, &InputError{Reason: fmt.Sprint(r)}
		}
	}()
	inst = &Instance{
		Days:        w.Days,
		SkillLevels: w.SkillLevels,
		ShiftTypes:  w.ShiftTypes,
		AgeGroups:   w.AgeGroups,
		Weights:     w.Weights,
		Indexer:     ihtpidx.NewIndexer(),
	}
	S := len(w.ShiftTypes)

	roomIdx := make(map[string]int, len(w.Rooms))
	for _, r := range w.Rooms {
		idx := inst.Indexer.Register(ihtpidx.KindRooms, r.ID)
		roomIdx[r.ID] = idx
		inst.Rooms = append(inst.Rooms, Room{ID: r.ID, Capacity: r.Capacity})
	}

	for _, ot := range w.OperatingTheaters {
		idx := inst.Indexer.Register(ihtpidx.KindOperatingTheatres, ot.ID)
		if len(ot.Availability) != w.Days {
			return nil, &InputError{Reason: fmt.Sprintf("operating theater %q: availability length %d != days %d", ot.ID, len(ot.Availability), w.Days)}
		}
		inst.OTs = append(inst.OTs, OperatingTheatre{ID: ot.ID, Availability: ot.Availability})
		_ = idx
	}
	if len(inst.OTs) == 0 {
		return nil, &InputError{Reason: "at least one operating theater (the dummy OT) is required"}
	}

	surgeonIdx := make(map[string]int, len(w.Surgeons))
	for _, s := range w.Surgeons {
		idx := inst.Indexer.Register(ihtpidx.KindSurgeons, s.ID)
		surgeonIdx[s.ID] = idx
		if len(s.MaxSurgeryTime) != w.Days {
			return nil, &InputError{Reason: fmt.Sprintf("surgeon %q: max_surgery_time length %d != days %d", s.ID, len(s.MaxSurgeryTime), w.Days)}
		}
		inst.Surgeons = append(inst.Surgeons, Surgeon{ID: s.ID, MaxSurgeryTime: s.MaxSurgeryTime})
	}

	for _, o := range w.Occupants {
		inst.Indexer.Register(ihtpidx.KindPatients, o.ID)
		rIdx, ok := roomIdx[o.RoomID]
		if !ok {
			return nil, &InputError{Reason: fmt.Sprintf("occupant %q: unknown room_id %q", o.ID, o.RoomID)}
		}
		if want := o.LengthOfStay * S; len(o.WorkloadProduced) != want || len(o.SkillLevelRequired) != want {
			return nil, &InputError{Reason: fmt.Sprintf("occupant %q: workload/skill arrays must have length length_of_stay*shift_types = %d", o.ID, want)}
		}
		inst.Occupants = append(inst.Occupants, Occupant{
			ID:                 o.ID,
			Gender:             o.Gender,
			AgeGroup:           o.AgeGroup,
			LengthOfStay:       o.LengthOfStay,
			WorkloadProduced:   o.WorkloadProduced,
			SkillLevelRequired: o.SkillLevelRequired,
			RoomIdx:            rIdx,
		})
	}

	for _, p := range w.Patients {
		inst.Indexer.Register(ihtpidx.KindPatients, p.ID)
		sIdx, ok := surgeonIdx[p.SurgeonID]
		if !ok {
			return nil, &InputError{Reason: fmt.Sprintf("patient %q: unknown surgeon_id %q", p.ID, p.SurgeonID)}
		}
		incompat := make([]int, 0, len(p.IncompatibleRoomIDs))
		for _, rid := range p.IncompatibleRoomIDs {
			ri, ok := roomIdx[rid]
			if !ok {
				return nil, &InputError{Reason: fmt.Sprintf("patient %q: unknown incompatible room id %q", p.ID, rid)}
			}
			incompat = append(incompat, ri)
		}
		if want := p.LengthOfStay * S; len(p.WorkloadProduced) != want || len(p.SkillLevelRequired) != want {
			return nil, &InputError{Reason: fmt.Sprintf("patient %q: workload/skill arrays must have length length_of_stay*shift_types = %d", p.ID, want)}
		}
		dueDay := -1
		if p.Mandatory {
			if p.SurgeryDueDay == nil {
				return nil, &InputError{Reason: fmt.Sprintf("mandatory patient %q: missing surgery_due_day", p.ID)}
			}
			dueDay = *p.SurgeryDueDay
		}
		inst.Patients = append(inst.Patients, Patient{
			Occupant: Occupant{
				ID:                 p.ID,
				Gender:             p.Gender,
				AgeGroup:           p.AgeGroup,
				LengthOfStay:       p.LengthOfStay,
				WorkloadProduced:   p.WorkloadProduced,
				SkillLevelRequired: p.SkillLevelRequired,
				RoomIdx:            -1,
			},
			Mandatory:         p.Mandatory,
			SurgeryReleaseDay: p.SurgeryReleaseDay,
			SurgeryDueDay:     dueDay,
			SurgeryDuration:   p.SurgeryDuration,
			SurgeonIdx:        sIdx,
			IncompatibleRooms: incompat,
		})
	}

	for _, n := range w.Nurses {
		inst.Indexer.Register(ihtpidx.KindNurses, n.ID)
		shifts := make([]WorkingShift, 0, len(n.WorkingShifts))
		for _, ws := range n.WorkingShifts {
			shifts = append(shifts, WorkingShift{Day: ws.Day, ShiftOffset: ws.Shift, MaxLoad: ws.MaxLoad})
		}
		inst.Nurses = append(inst.Nurses, Nurse{ID: n.ID, SkillLevel: n.SkillLevel, WorkingShifts: shifts})
	}

	return inst, nil
}
