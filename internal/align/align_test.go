package align

import (
	"testing"

	"goalboard/internal/goalstore"
)

func TestIsValidAlignmentCascade(t *testing.T) {
	cases := []struct {
		name   string
		child  goalstore.GoalType
		parent goalstore.GoalType
		want   bool
	}{
		{"company without parent", goalstore.GoalCompany, "", true},
		{"department under company", goalstore.GoalDepartment, goalstore.GoalCompany, true},
		{"team under department", goalstore.GoalTeam, goalstore.GoalDepartment, true},
		{"individual under team", goalstore.GoalIndividual, goalstore.GoalTeam, true},
		{"company with parent", goalstore.GoalCompany, goalstore.GoalTeam, false},
		{"team skipping to company", goalstore.GoalTeam, goalstore.GoalCompany, false},
		{"individual skipping to department", goalstore.GoalIndividual, goalstore.GoalDepartment, false},
		{"department without parent", goalstore.GoalDepartment, "", false},
		{"team without parent", goalstore.GoalTeam, "", false},
		{"individual without parent", goalstore.GoalIndividual, "", false},
	}
	for _, tc := range cases {
		if got := IsValidAlignment(tc.child, tc.parent); got != tc.want {
			t.Errorf("%s: IsValidAlignment(%s, %s) = %v, want %v", tc.name, tc.child, tc.parent, got, tc.want)
		}
	}
}

func TestValidateObjectivesRejectsBrokenHierarchy(t *testing.T) {
	objectives := []goalstore.Objective{
		{ID: "OBJ-CO", GoalType: goalstore.GoalCompany, SourceFile: "goals.yml"},
		{ID: "OBJ-DEPT", GoalType: goalstore.GoalDepartment, ParentID: "OBJ-CO", SourceFile: "goals.yml"},
		{ID: "OBJ-TEAM", GoalType: goalstore.GoalTeam, ParentID: "OBJ-CO", SourceFile: "goals.yml"},
		{ID: "OBJ-ORPHAN", GoalType: goalstore.GoalTeam, ParentID: "OBJ-MISSING", SourceFile: "goals.yml"},
	}
	errs := ValidateObjectives(objectives)
	if len(errs) != 2 {
		t.Fatalf("expected 2 validation errors, got %d: %v", len(errs), errs)
	}
}

func TestValidateObjectivesAcceptsFullCascade(t *testing.T) {
	objectives := []goalstore.Objective{
		{ID: "OBJ-CO", GoalType: goalstore.GoalCompany},
		{ID: "OBJ-DEPT", GoalType: goalstore.GoalDepartment, ParentID: "OBJ-CO"},
		{ID: "OBJ-TEAM", GoalType: goalstore.GoalTeam, ParentID: "OBJ-DEPT"},
		{ID: "OBJ-IND", GoalType: goalstore.GoalIndividual, ParentID: "OBJ-TEAM"},
	}
	if errs := ValidateObjectives(objectives); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestValidateObjectivesDetectsCycle(t *testing.T) {
	objectives := []goalstore.Objective{
		{ID: "OBJ-A", GoalType: goalstore.GoalDepartment, ParentID: "OBJ-B"},
		{ID: "OBJ-B", GoalType: goalstore.GoalDepartment, ParentID: "OBJ-A"},
	}
	errs := ValidateObjectives(objectives)
	if len(errs) == 0 {
		t.Fatalf("expected cycle errors, got none")
	}
}

func TestBuildForestPlacesChildren(t *testing.T) {
	objectives := []goalstore.Objective{
		{ID: "OBJ-CO", Title: "Company", GoalType: goalstore.GoalCompany},
		{ID: "OBJ-D1", Title: "Dept one", GoalType: goalstore.GoalDepartment, ParentID: "OBJ-CO"},
		{ID: "OBJ-D2", Title: "Dept two", GoalType: goalstore.GoalDepartment, ParentID: "OBJ-CO"},
		{ID: "OBJ-T1", Title: "Team", GoalType: goalstore.GoalTeam, ParentID: "OBJ-D1"},
	}
	roots := BuildForest(objectives)
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	if roots[0].ID != "OBJ-CO" {
		t.Fatalf("root = %s, want OBJ-CO", roots[0].ID)
	}
	if len(roots[0].Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(roots[0].Children))
	}
	// Children preserve input order, never re-sorted.
	if roots[0].Children[0].ID != "OBJ-D1" || roots[0].Children[1].ID != "OBJ-D2" {
		t.Fatalf("children out of order: %s, %s", roots[0].Children[0].ID, roots[0].Children[1].ID)
	}
	if len(roots[0].Children[0].Children) != 1 || roots[0].Children[0].Children[0].ID != "OBJ-T1" {
		t.Fatalf("grandchild misplaced: %#v", roots[0].Children[0].Children)
	}
}

func TestBuildForestOrphanAndSelfReferenceBecomeRoots(t *testing.T) {
	objectives := []goalstore.Objective{
		{ID: "OBJ-ORPHAN", ParentID: "OBJ-GONE"},
		{ID: "OBJ-SELF", ParentID: "OBJ-SELF"},
		{ID: "OBJ-ROOT"},
	}
	roots := BuildForest(objectives)
	if len(roots) != 3 {
		t.Fatalf("expected 3 roots, got %d", len(roots))
	}
	seen := map[string]int{}
	for _, root := range roots {
		seen[root.ID]++
	}
	for _, id := range []string{"OBJ-ORPHAN", "OBJ-SELF", "OBJ-ROOT"} {
		if seen[id] != 1 {
			t.Fatalf("root %s appeared %d times, want exactly once", id, seen[id])
		}
	}
}

func TestBuildForestCycleMembersBecomeRoots(t *testing.T) {
	objectives := []goalstore.Objective{
		{ID: "OBJ-A", ParentID: "OBJ-B"},
		{ID: "OBJ-B", ParentID: "OBJ-A"},
		{ID: "OBJ-ROOT"},
	}
	roots := BuildForest(objectives)
	if len(roots) != 3 {
		t.Fatalf("expected 3 roots, got %d", len(roots))
	}
	seen := map[string]int{}
	for _, root := range roots {
		seen[root.ID]++
		if len(root.Children) != 0 {
			t.Fatalf("root %s should have no children, got %d", root.ID, len(root.Children))
		}
	}
	for _, id := range []string{"OBJ-A", "OBJ-B", "OBJ-ROOT"} {
		if seen[id] != 1 {
			t.Fatalf("root %s appeared %d times, want exactly once", id, seen[id])
		}
	}
}

func TestBuildForestCycleKeepsOffCycleChildren(t *testing.T) {
	objectives := []goalstore.Objective{
		{ID: "OBJ-A", ParentID: "OBJ-B"},
		{ID: "OBJ-B", ParentID: "OBJ-A"},
		{ID: "OBJ-C", ParentID: "OBJ-A"},
	}
	roots := BuildForest(objectives)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	var a *Node
	for _, root := range roots {
		if root.ID == "OBJ-A" {
			a = root
		}
	}
	if a == nil {
		t.Fatalf("OBJ-A missing from roots: %#v", roots)
	}
	if len(a.Children) != 1 || a.Children[0].ID != "OBJ-C" {
		t.Fatalf("OBJ-C should stay under OBJ-A, got %#v", a.Children)
	}
}

func TestBuildForestDuplicateIDPlacedOnce(t *testing.T) {
	objectives := []goalstore.Objective{
		{ID: "OBJ-X", Title: "first"},
		{ID: "OBJ-X", Title: "second"},
	}
	roots := BuildForest(objectives)
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	if roots[0].Title != "first" {
		t.Fatalf("first definition should win, got %q", roots[0].Title)
	}
}

func TestBuildForestAnnotatesProgress(t *testing.T) {
	objectives := []goalstore.Objective{
		{
			ID:       "OBJ-CO",
			GoalType: goalstore.GoalCompany,
			KeyResults: []goalstore.KeyResult{
				{Current: 80, Target: 100, Weight: 100},
			},
		},
	}
	roots := BuildForest(objectives)
	if roots[0].Progress != 80 {
		t.Fatalf("progress = %d, want 80", roots[0].Progress)
	}
	if roots[0].Light != "green" {
		t.Fatalf("light = %s, want green", roots[0].Light)
	}
}
