package align

import (
	"fmt"

	"goalboard/internal/goalstore"
)

// IsValidAlignment reports whether a child goal type may sit under a parent
// goal type. An empty parent means the objective has no parent, which is
// only valid at company level. Every other pairing must match exactly one
// step of the company → department → team → individual cascade; skipping a
// level is invalid.
func IsValidAlignment(child, parent goalstore.GoalType) bool {
	if parent == "" {
		return child == goalstore.GoalCompany
	}
	switch child {
	case goalstore.GoalDepartment:
		return parent == goalstore.GoalCompany
	case goalstore.GoalTeam:
		return parent == goalstore.GoalDepartment
	case goalstore.GoalIndividual:
		return parent == goalstore.GoalTeam
	default:
		return false
	}
}

// ValidateObjectives checks the hierarchy of a full objective set: parent
// references must resolve, no objective may sit on a parent cycle, and
// every parent/child pairing must satisfy the cascade. This is the write
// gate; the tree builder assumes data that already passed it.
func ValidateObjectives(objectives []goalstore.Objective) goalstore.ValidationErrors {
	var errs goalstore.ValidationErrors

	byID := make(map[string]goalstore.Objective, len(objectives))
	for _, obj := range objectives {
		byID[obj.ID] = obj
	}

	for _, obj := range objectives {
		if obj.ParentID == "" {
			if !IsValidAlignment(obj.GoalType, "") {
				errs = append(errs, goalstore.ValidationError{
					File:    obj.SourceFile,
					Field:   "objective " + obj.ID,
					Message: fmt.Sprintf("%s objective requires a parent", obj.GoalType),
				})
			}
			continue
		}

		parent, ok := byID[obj.ParentID]
		if !ok {
			errs = append(errs, goalstore.ValidationError{
				File:    obj.SourceFile,
				Field:   "objective " + obj.ID,
				Message: fmt.Sprintf("parent_id %q does not reference a known objective", obj.ParentID),
			})
			continue
		}

		if !IsValidAlignment(obj.GoalType, parent.GoalType) {
			errs = append(errs, goalstore.ValidationError{
				File:    obj.SourceFile,
				Field:   "objective " + obj.ID,
				Message: fmt.Sprintf("%s objective cannot align to %s parent %s", obj.GoalType, parent.GoalType, parent.ID),
			})
		}

		if cycleID := findCycle(obj, byID); cycleID != "" {
			errs = append(errs, goalstore.ValidationError{
				File:    obj.SourceFile,
				Field:   "objective " + obj.ID,
				Message: fmt.Sprintf("parent chain loops back through %s", cycleID),
			})
		}
	}

	return errs
}

// findCycle walks the parent chain from obj with a seen set, returning the
// first id revisited. The walk is bounded by the seen set, never recursion.
func findCycle(obj goalstore.Objective, byID map[string]goalstore.Objective) string {
	seen := map[string]struct{}{obj.ID: {}}
	current := obj.ParentID
	for current != "" {
		if _, repeated := seen[current]; repeated {
			return current
		}
		seen[current] = struct{}{}
		parent, ok := byID[current]
		if !ok {
			return ""
		}
		current = parent.ParentID
	}
	return ""
}
