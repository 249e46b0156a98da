package goalstore

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

type rawDocument struct {
	Objectives []rawObjective `yaml:"objectives"`
}

type rawObjective struct {
	ID           string         `yaml:"objective_id"`
	Title        string         `yaml:"title"`
	GoalType     string         `yaml:"goal_type"`
	ParentID     string         `yaml:"parent_id"`
	ProgressType string         `yaml:"progress_type"`
	Progress     *float64       `yaml:"progress"`
	Score        *float64       `yaml:"score"`
	OwnerID      string         `yaml:"owner_id"`
	TeamID       string         `yaml:"team_id"`
	Status       string         `yaml:"status"`
	KeyResults   []rawKeyResult `yaml:"key_results"`
}

type rawKeyResult struct {
	ID      string   `yaml:"kr_id"`
	Title   string   `yaml:"title"`
	Weight  *int     `yaml:"weight"`
	Target  *float64 `yaml:"target"`
	Current *float64 `yaml:"current"`
	Unit    string   `yaml:"unit"`
}

// ValidationError captures a single field-specific validation issue.
type ValidationError struct {
	File    string
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.File, e.Field, e.Message)
}

// ValidationErrors aggregates multiple validation problems.
type ValidationErrors []ValidationError

func (errs ValidationErrors) Error() string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "\n")
}

// ParseAndValidateDocument unmarshals and validates a YAML goal document.
func ParseAndValidateDocument(data []byte, source string) (Document, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Document{}, ValidationErrors{{
			File:    source,
			Field:   "yaml",
			Message: err.Error(),
		}}
	}
	return validateRawDocument(raw, source)
}

func validateRawDocument(raw rawDocument, source string) (Document, error) {
	var errs ValidationErrors

	if len(raw.Objectives) == 0 {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   "objectives",
			Message: "must contain at least one objective",
		})
	}

	objIDs := make(map[string]struct{})
	var normalized []Objective

	for idx, rawObj := range raw.Objectives {
		objPath := fmt.Sprintf("objectives[%d]", idx)
		obj, objErrs := validateObjective(rawObj, objPath, source)
		errs = append(errs, objErrs...)

		if obj.ID != "" {
			if _, exists := objIDs[obj.ID]; exists {
				errs = append(errs, ValidationError{
					File:    source,
					Field:   objPath + ".objective_id",
					Message: fmt.Sprintf("duplicate objective_id %q within document", obj.ID),
				})
			} else {
				objIDs[obj.ID] = struct{}{}
			}
		}
		normalized = append(normalized, obj)
	}

	if len(errs) > 0 {
		return Document{}, errs
	}

	return Document{
		Objectives: normalized,
		Source:     source,
	}, nil
}

func validateObjective(raw rawObjective, fieldPath string, source string) (Objective, ValidationErrors) {
	var errs ValidationErrors

	if strings.TrimSpace(raw.ID) == "" {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".objective_id",
			Message: "objective_id is required",
		})
	}
	if strings.TrimSpace(raw.Title) == "" {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".title",
			Message: "title is required",
		})
	}
	if strings.TrimSpace(raw.OwnerID) == "" {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".owner_id",
			Message: "owner_id is required",
		})
	}

	goalType, gtErr := ParseGoalType(raw.GoalType)
	if gtErr != nil {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".goal_type",
			Message: gtErr.Error(),
		})
	}

	progressType, ptErr := parseProgressType(raw.ProgressType)
	if ptErr != nil {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".progress_type",
			Message: ptErr.Error(),
		})
	}

	status, stErr := parseStatus(raw.Status)
	if stErr != nil {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".status",
			Message: stErr.Error(),
		})
	}

	var progress float64
	if raw.Progress != nil {
		progress = *raw.Progress
		if progress < 0 || progress > 100 {
			errs = append(errs, ValidationError{
				File:    source,
				Field:   fieldPath + ".progress",
				Message: "must be between 0 and 100",
			})
		}
	} else if progressType == ProgressManual {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".progress",
			Message: "progress is required when progress_type is manual",
		})
	}

	var score *float64
	if raw.Score != nil {
		if *raw.Score < 0.0 || *raw.Score > 1.0 {
			errs = append(errs, ValidationError{
				File:    source,
				Field:   fieldPath + ".score",
				Message: "must be between 0.0 and 1.0",
			})
		} else {
			v := *raw.Score
			score = &v
		}
	}

	parentID := strings.TrimSpace(raw.ParentID)
	if parentID != "" && parentID == strings.TrimSpace(raw.ID) {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".parent_id",
			Message: "objective cannot be its own parent",
		})
	}

	krIDs := make(map[string]struct{})
	var normalizedKRs []KeyResult

	for krIdx, rawKR := range raw.KeyResults {
		krPath := fmt.Sprintf("%s.key_results[%d]", fieldPath, krIdx)
		kr, krErrs := validateKeyResult(rawKR, krPath, source)
		errs = append(errs, krErrs...)

		if kr.ID != "" {
			if _, exists := krIDs[kr.ID]; exists {
				errs = append(errs, ValidationError{
					File:    source,
					Field:   krPath + ".kr_id",
					Message: fmt.Sprintf("duplicate kr_id %q within objective", kr.ID),
				})
			} else {
				krIDs[kr.ID] = struct{}{}
			}
		}
		normalizedKRs = append(normalizedKRs, kr)
	}

	// Key result weights are not required to sum to 100 here; the
	// aggregator normalizes by total weight.

	obj := Objective{
		ID:           strings.TrimSpace(raw.ID),
		Title:        strings.TrimSpace(raw.Title),
		GoalType:     goalType,
		ParentID:     parentID,
		ProgressType: progressType,
		Progress:     progress,
		Score:        score,
		OwnerID:      strings.TrimSpace(raw.OwnerID),
		TeamID:       strings.TrimSpace(raw.TeamID),
		Status:       status,
		KeyResults:   normalizedKRs,
		SourceFile:   source,
	}

	return obj, errs
}

func validateKeyResult(raw rawKeyResult, fieldPath string, source string) (KeyResult, ValidationErrors) {
	var errs ValidationErrors

	if strings.TrimSpace(raw.ID) == "" {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".kr_id",
			Message: "kr_id is required",
		})
	}
	if strings.TrimSpace(raw.Title) == "" {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".title",
			Message: "title is required",
		})
	}
	if raw.Weight == nil {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".weight",
			Message: "weight is required",
		})
	} else if *raw.Weight < 0 || *raw.Weight > 100 {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".weight",
			Message: "must be between 0 and 100",
		})
	}
	if raw.Target == nil {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".target",
			Message: "target is required",
		})
	} else if *raw.Target < 0 {
		errs = append(errs, ValidationError{
			File:    source,
			Field:   fieldPath + ".target",
			Message: "must not be negative",
		})
	}

	kr := KeyResult{
		ID:    strings.TrimSpace(raw.ID),
		Title: strings.TrimSpace(raw.Title),
		Unit:  strings.TrimSpace(raw.Unit),
	}
	if raw.Weight != nil {
		kr.Weight = *raw.Weight
	}
	if raw.Target != nil {
		kr.Target = *raw.Target
	}
	if raw.Current != nil {
		kr.Current = *raw.Current
	}

	return kr, errs
}

// ParseGoalType parses and validates a goal type value.
func ParseGoalType(value string) (GoalType, error) {
	switch GoalType(strings.TrimSpace(value)) {
	case GoalCompany:
		return GoalCompany, nil
	case GoalDepartment:
		return GoalDepartment, nil
	case GoalTeam:
		return GoalTeam, nil
	case GoalIndividual:
		return GoalIndividual, nil
	default:
		return GoalType(value), fmt.Errorf("invalid goal_type %q (expected company, department, team, or individual)", value)
	}
}

func parseProgressType(value string) (ProgressType, error) {
	switch ProgressType(strings.TrimSpace(value)) {
	case ProgressAutomatic, ProgressType(""):
		return ProgressAutomatic, nil
	case ProgressManual:
		return ProgressManual, nil
	default:
		return ProgressType(value), fmt.Errorf("invalid progress_type %q (expected automatic or manual)", value)
	}
}

func parseStatus(value string) (Status, error) {
	switch Status(strings.TrimSpace(value)) {
	case StatusActive, Status(""):
		return StatusActive, nil
	case StatusAtRisk:
		return StatusAtRisk, nil
	case StatusDone:
		return StatusDone, nil
	default:
		return Status(value), fmt.Errorf("invalid status %q (expected active, at_risk, or done)", value)
	}
}

// ParseCheckInStatus parses and validates a user-asserted check-in status.
func ParseCheckInStatus(value string) (CheckInStatus, error) {
	switch CheckInStatus(strings.TrimSpace(value)) {
	case CheckInGreen:
		return CheckInGreen, nil
	case CheckInYellow:
		return CheckInYellow, nil
	case CheckInRed:
		return CheckInRed, nil
	default:
		return CheckInStatus(value), fmt.Errorf("invalid check-in status %q (expected green, yellow, or red)", value)
	}
}
