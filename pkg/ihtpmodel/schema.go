package ihtpmodel

// instanceSchemaJSON is the JSON Schema (2020-12) for instance documents,
// embedded directly in the binary rather than shipped as a separate asset
// file, matching the teacher's pattern of embedding static content
// (static/static.go) instead of reading it off disk at runtime. It only
// enforces shape and required fields; cross-reference resolution (room
// ids, surgeon ids, ...) happens afterwards in loader.go, since a JSON
// Schema can't express "this id must appear in that other array".
const instanceSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://ihtp.example/schema/instance.json",
  "type": "object",
  "required": ["days", "skill_levels", "shift_types", "age_groups", "weights", "rooms", "operating_theaters", "surgeons", "occupants", "patients", "nurses"],
  "properties": {
    "days": {"type": "integer", "minimum": 1},
    "skill_levels": {"type": "integer", "minimum": 1},
    "shift_types": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "age_groups": {"type": "array", "items": {"type": "string"}, "minItems": 1},
    "weights": {
      "type": "object",
      "required": ["room_mixed_age", "room_nurse_skill", "continuity_of_care", "nurse_eccessive_workload", "open_operating_theater", "surgeon_transfer", "patient_delay", "unscheduled_optional"],
      "properties": {
        "room_mixed_age": {"type": "integer", "minimum": 0},
        "room_nurse_skill": {"type": "integer", "minimum": 0},
        "continuity_of_care": {"type": "integer", "minimum": 0},
        "nurse_eccessive_workload": {"type": "integer", "minimum": 0},
        "open_operating_theater": {"type": "integer", "minimum": 0},
        "surgeon_transfer": {"type": "integer", "minimum": 0},
        "patient_delay": {"type": "integer", "minimum": 0},
        "unscheduled_optional": {"type": "integer", "minimum": 0}
      }
    },
    "rooms": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "capacity"],
        "properties": {
          "id": {"type": "string"},
          "capacity": {"type": "integer", "minimum": 0}
        }
      }
    },
    "operating_theaters": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "availability"],
        "properties": {
          "id": {"type": "string"},
          "availability": {"type": "array", "items": {"type": "integer", "minimum": 0}}
        }
      }
    },
    "surgeons": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "max_surgery_time"],
        "properties": {
          "id": {"type": "string"},
          "max_surgery_time": {"type": "array", "items": {"type": "integer", "minimum": 0}}
        }
      }
    },
    "occupants": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "gender", "age_group", "length_of_stay", "workload_produced", "skill_level_required", "room_id"],
        "properties": {
          "id": {"type": "string"},
          "gender": {"type": "string"},
          "age_group": {"type": "integer", "minimum": 0},
          "length_of_stay": {"type": "integer", "minimum": 1},
          "workload_produced": {"type": "array", "items": {"type": "integer"}},
          "skill_level_required": {"type": "array", "items": {"type": "integer"}},
          "room_id": {"type": "string"}
        }
      }
    },
    "patients": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "mandatory", "gender", "age_group", "length_of_stay", "surgery_release_day", "surgery_duration", "surgeon_id", "incompatible_room_ids", "workload_produced", "skill_level_required"],
        "properties": {
          "id": {"type": "string"},
          "mandatory": {"type": "boolean"},
          "gender": {"type": "string"},
          "age_group": {"type": "integer", "minimum": 0},
          "length_of_stay": {"type": "integer", "minimum": 1},
          "surgery_release_day": {"type": "integer", "minimum": 0},
          "surgery_due_day": {"type": "integer", "minimum": 0},
          "surgery_duration": {"type": "integer", "minimum": 0},
          "surgeon_id": {"type": "string"},
          "incompatible_room_ids": {"type": "array", "items": {"type": "string"}},
          "workload_produced": {"type": "array", "items": {"type": "integer"}},
          "skill_level_required": {"type": "array", "items": {"type": "integer"}}
        }
      }
    },
    "nurses": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "skill_level", "working_shifts"],
        "properties": {
          "id": {"type": "string"},
          "skill_level": {"type": "integer", "minimum": 0},
          "working_shifts": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["day", "shift", "max_load"],
              "properties": {
                "day": {"type": "integer", "minimum": 0},
                "shift": {"type": "integer", "minimum": 0},
                "max_load": {"type": "integer", "minimum": 0}
              }
            }
          }
        }
      }
    }
  }
}`
