package goalstore

import "time"

// GoalType is the organizational level of an objective.
type GoalType string

const (
	GoalCompany    GoalType = "company"
	GoalDepartment GoalType = "department"
	GoalTeam       GoalType = "team"
	GoalIndividual GoalType = "individual"
)

// ProgressType controls whether objective progress is derived or stored.
type ProgressType string

const (
	ProgressAutomatic ProgressType = "automatic"
	ProgressManual    ProgressType = "manual"
)

// Status is the user-managed objective lifecycle state. It is never derived
// from progress; the summary builders only read it.
type Status string

const (
	StatusActive Status = "active"
	StatusAtRisk Status = "at_risk"
	StatusDone   Status = "done"
)

// CheckInStatus is the status a user asserts alongside a weekly measurement,
// independent of the computed traffic light.
type CheckInStatus string

const (
	CheckInGreen  CheckInStatus = "green"
	CheckInYellow CheckInStatus = "yellow"
	CheckInRed    CheckInStatus = "red"
)

// Document is a normalized goal document loaded from YAML.
type Document struct {
	Objectives []Objective
	Source     string
}

// Objective represents a single objective and its key results.
type Objective struct {
	ID           string
	Title        string
	GoalType     GoalType
	ParentID     string
	ProgressType ProgressType
	Progress     float64
	Score        *float64
	OwnerID      string
	TeamID       string
	Status       Status
	KeyResults   []KeyResult
	SourceFile   string
}

// KeyResult captures a single weighted measure of an objective.
type KeyResult struct {
	ID      string
	Title   string
	Weight  int
	Target  float64
	Current float64
	Unit    string
}

// CheckIn is one weekly measurement snapshot for a key result. WeekStart is
// always normalized to the Monday of its ISO week (see WeekStart).
type CheckIn struct {
	ID          string
	KeyResultID string
	UserID      string
	WeekStart   time.Time
	Value       float64
	Status      CheckInStatus
	Comment     string
}

// ObjectiveRecord maps an objective id to its normalized data and source.
type ObjectiveRecord struct {
	Objective Objective
	Source    string
}

// KeyResultRecord maps a key result id to its normalized data and origin.
type KeyResultRecord struct {
	KeyResult KeyResult
	Objective Objective
	Source    string
}

// Store is the in-memory representation of loaded goal documents.
type Store struct {
	Documents []Document

	objectives map[string]ObjectiveRecord
	keyResults map[string]KeyResultRecord
}

// ObjectiveLookup returns the objective record for the given id, if present.
func (s *Store) ObjectiveLookup(id string) (ObjectiveRecord, bool) {
	if s == nil {
		return ObjectiveRecord{}, false
	}
	rec, ok := s.objectives[id]
	return rec, ok
}

// KeyResultLookup returns the key result record for the given id, if present.
func (s *Store) KeyResultLookup(id string) (KeyResultRecord, bool) {
	if s == nil {
		return KeyResultRecord{}, false
	}
	rec, ok := s.keyResults[id]
	return rec, ok
}

// Objectives returns every objective across all documents in load order.
func (s *Store) Objectives() []Objective {
	if s == nil {
		return nil
	}
	var out []Objective
	for _, doc := range s.Documents {
		out = append(out, doc.Objectives...)
	}
	return out
}

// KeyResults returns every key result across all documents in load order.
func (s *Store) KeyResults() []KeyResult {
	if s == nil {
		return nil
	}
	var out []KeyResult
	for _, doc := range s.Documents {
		for _, obj := range doc.Objectives {
			out = append(out, obj.KeyResults...)
		}
	}
	return out
}
