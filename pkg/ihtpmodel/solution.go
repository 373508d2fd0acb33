package ihtpmodel

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ihtp/scheduler/pkg/ihtpidx"
)

type wireSolutionPatient struct {
	ID                string `json:"id"`
	AdmissionDay      any    `json:"admission_day"` // int, or the string "none"
	Room              string `json:"room,omitempty"`
	OperatingTheatre  string `json:"operating_theater,omitempty"`
}

type wireSolutionAssignment struct {
	Day   int      `json:"day"`
	Shift int      `json:"shift"`
	Rooms []string `json:"rooms"`
}

type wireSolutionNurse struct {
	ID          string                   `json:"id"`
	Assignments []wireSolutionAssignment `json:"assignments"`
}

type wireSolution struct {
	Patients []wireSolutionPatient `json:"patients"`
	Nurses   []wireSolutionNurse   `json:"nurses"`
}

// SolutionSource is the read-only view the serialiser needs of a finished
// search. pkg/ihtpengine's EngineState satisfies it through small exported
// wrappers so this package has no dependency on ihtpengine.
type SolutionSource interface {
	PatientPlacement(patient int) (day, room, ot int, scheduled bool)
	NurseAssignment(shift, room int) (nurse int, ok bool)
}

// WriteSolution renders src against inst into the JSON shape spec §6
// defines, one patient entry per non-occupant patient and one nurse entry
// per nurse with one assignment per working shift.
func WriteSolution(w io.Writer, inst *Instance, src SolutionSource) error {
	sol := wireSolution{}

	for p := inst.NumOccupants(); p < inst.NumPersons(); p++ {
		patID, err := inst.Indexer.ByIndex(ihtpidx.KindPatients, p)
		if err != nil {
			return fmt.Errorf("write solution: %w", err)
		}
		day, room, ot, scheduled := src.PatientPlacement(p)
		entry := wireSolutionPatient{ID: patID, AdmissionDay: "none"}
		if scheduled {
			roomID, err := inst.Indexer.ByIndex(ihtpidx.KindRooms, room)
			if err != nil {
				return fmt.Errorf("write solution: %w", err)
			}
			otID, err := inst.Indexer.ByIndex(ihtpidx.KindOperatingTheatres, ot)
			if err != nil {
				return fmt.Errorf("write solution: %w", err)
			}
			entry.AdmissionDay = day
			entry.Room = roomID
			entry.OperatingTheatre = otID
		}
		sol.Patients = append(sol.Patients, entry)
	}

	S := inst.ShiftsPerDay()
	for n := range inst.Nurses {
		nurseID, err := inst.Indexer.ByIndex(ihtpidx.KindNurses, n)
		if err != nil {
			return fmt.Errorf("write solution: %w", err)
		}
		nurseEntry := wireSolutionNurse{ID: nurseID}
		for _, ws := range inst.Nurses[n].WorkingShifts {
			shift := ws.ShiftIndex(S)
			var rooms []string
			for r := range inst.Rooms {
				if nurse, ok := src.NurseAssignment(shift, r); ok && nurse == n {
					roomID, err := inst.Indexer.ByIndex(ihtpidx.KindRooms, r)
					if err != nil {
						return fmt.Errorf("write solution: %w", err)
					}
					rooms = append(rooms, roomID)
				}
			}
			nurseEntry.Assignments = append(nurseEntry.Assignments, wireSolutionAssignment{
				Day:   ws.Day,
				Shift: ws.ShiftOffset,
				Rooms: rooms,
			})
		}
		sol.Nurses = append(sol.Nurses, nurseEntry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(sol)
}
