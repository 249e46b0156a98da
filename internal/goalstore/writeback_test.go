package goalstore

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func sampleDocument(source string) Document {
	return Document{
		Source: source,
		Objectives: []Objective{
			{
				ID:           "OBJ-1",
				Title:        "Grow revenue",
				GoalType:     GoalCompany,
				ProgressType: ProgressAutomatic,
				Progress:     70,
				OwnerID:      "alice@example.com",
				Status:       StatusActive,
				KeyResults: []KeyResult{
					{ID: "KR-1", Title: "New ARR", Weight: 60, Target: 100, Current: 50},
					{ID: "KR-2", Title: "Renewals", Weight: 40, Target: 100, Current: 100},
				},
			},
		},
	}
}

func TestWriteDocumentRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "company.yml")
	doc := sampleDocument(path)

	if err := WriteDocument(doc); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	reloaded, err := ParseAndValidateDocument(data, path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	got := reloaded.Objectives[0]
	if got.ID != "OBJ-1" || got.Progress != 70 || len(got.KeyResults) != 2 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.KeyResults[1].Current != 100 {
		t.Fatalf("key result current = %v, want 100", got.KeyResults[1].Current)
	}
}

func TestRenderDiffShowsProgressChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "company.yml")
	doc := sampleDocument(path)

	if err := WriteDocument(doc); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	doc.Objectives[0].Progress = 85
	doc.Objectives[0].KeyResults[0].Current = 80

	diff, err := RenderDiff([]Document{doc})
	if err != nil {
		t.Fatalf("diff failed: %v", err)
	}
	if !strings.Contains(diff, "progress: 85") {
		t.Fatalf("diff missing progress change:\n%s", diff)
	}
	if !strings.Contains(diff, "progress: 70") {
		t.Fatalf("diff missing old progress:\n%s", diff)
	}
	if !strings.Contains(diff, "--- goals/company.yml") {
		t.Fatalf("diff missing header:\n%s", diff)
	}
}

func TestRenderDiffEmptyWhenUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "company.yml")
	doc := sampleDocument(path)

	if err := WriteDocument(doc); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	diff, err := RenderDiff([]Document{doc})
	if err != nil {
		t.Fatalf("diff failed: %v", err)
	}
	if strings.TrimSpace(diff) != "" {
		t.Fatalf("expected empty diff, got:\n%s", diff)
	}
}
