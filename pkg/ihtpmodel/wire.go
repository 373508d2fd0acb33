package ihtpmodel

// This file contains the wire JSON shapes for instance documents (spec §6),
// kept separate from the resolved domain types in model.go: wire structs
// carry string cross-references (room ids, surgeon ids, ...); loader.go
// resolves them into the dense indices the engine operates on.

type wireInstance struct {
	Days              int                   `json:"days"`
	SkillLevels       int                   `json:"skill_levels"`
	ShiftTypes        []string              `json:"shift_types"`
	AgeGroups         []string              `json:"age_groups"`
	Weights           Weights               `json:"weights"`
	Rooms             []wireRoom            `json:"rooms"`
	OperatingTheaters []wireOT              `json:"operating_theaters"`
	Surgeons          []wireSurgeon         `json:"surgeons"`
	Occupants         []wireOccupant        `json:"occupants"`
	Patients          []wirePatient         `json:"patients"`
	Nurses            []wireNurse           `json:"nurses"`
}

type wireRoom struct {
	ID       string `json:"id"`
	Capacity int    `json:"capacity"`
}

type wireOT struct {
	ID           string `json:"id"`
	Availability []int  `json:"availability"`
}

type wireSurgeon struct {
	ID             string `json:"id"`
	MaxSurgeryTime []int  `json:"max_surgery_time"`
}

type wireOccupant struct {
	ID                 string `json:"id"`
	Gender             string `json:"gender"`
	AgeGroup           int    `json:"age_group"`
	LengthOfStay       int    `json:"length_of_stay"`
	WorkloadProduced   []int  `json:"workload_produced"`
	SkillLevelRequired []int  `json:"skill_level_required"`
	RoomID             string `json:"room_id"`
}

type wirePatient struct {
	ID                  string `json:"id"`
	Mandatory           bool   `json:"mandatory"`
	Gender              string `json:"gender"`
	AgeGroup            int    `json:"age_group"`
	LengthOfStay        int    `json:"length_of_stay"`
	SurgeryReleaseDay   int    `json:"surgery_release_day"`
	SurgeryDueDay       *int   `json:"surgery_due_day,omitempty"`
	SurgeryDuration     int    `json:"surgery_duration"`
	SurgeonID           string `json:"surgeon_id"`
	IncompatibleRoomIDs []string `json:"incompatible_room_ids"`
	WorkloadProduced    []int  `json:"workload_produced"`
	SkillLevelRequired  []int  `json:"skill_level_required"`
}

type wireWorkingShift struct {
	Day     int `json:"day"`
	Shift   int `json:"shift"`
	MaxLoad int `json:"max_load"`
}

type wireNurse struct {
	ID            string             `json:"id"`
	SkillLevel    int                `json:"skill_level"`
	WorkingShifts []wireWorkingShift `json:"working_shifts"`
}
