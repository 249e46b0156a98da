package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"goalboard/internal/heatmap"
	"goalboard/internal/progress"
)

const ReportSchemaVersion = 1

// ObjectiveReport is one objective's computed line in a progress report.
type ObjectiveReport struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	GoalType string         `json:"goal_type"`
	TeamID   string         `json:"team_id,omitempty"`
	Owner    string         `json:"owner"`
	Progress int            `json:"progress"`
	Light    progress.Light `json:"light"`
	Score    float64        `json:"score"`
}

// ProgressReport is a dated snapshot of computed objective progress plus
// the hero summary.
type ProgressReport struct {
	SchemaVersion int               `json:"schema_version"`
	AsOf          string            `json:"as_of"`
	Objectives    []ObjectiveReport `json:"objectives"`
	Hero          heatmap.Hero      `json:"hero"`
}

// WriteReport writes a progress report atomically, canonicalizing the
// objective order by id.
func WriteReport(path string, rep ProgressReport) error {
	if path == "" {
		return fmt.Errorf("report path is required")
	}
	if rep.AsOf == "" {
		return fmt.Errorf("report as_of is required")
	}
	rep.SchemaVersion = ReportSchemaVersion
	sort.SliceStable(rep.Objectives, func(i, j int) bool {
		return rep.Objectives[i].ID < rep.Objectives[j].ID
	})

	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure report dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp report: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename report: %w", err)
	}
	return nil
}

// LoadReport reads and validates a progress report.
func LoadReport(path string) (*ProgressReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var rep ProgressReport
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	if rep.SchemaVersion != ReportSchemaVersion {
		return nil, fmt.Errorf("unsupported report schema_version %d", rep.SchemaVersion)
	}
	if rep.AsOf == "" {
		return nil, fmt.Errorf("report missing as_of")
	}
	return &rep, nil
}

// ReportPathForDate returns the date-named path for a report in dir.
func ReportPathForDate(dir string, asOf time.Time) string {
	date := asOf.UTC().Format("2006-01-02")
	return filepath.Join(dir, date+".json")
}

// LatestReportPath returns the most recent report file in dir.
func LatestReportPath(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read reports dir: %w", err)
	}
	var candidates []string
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		name := ent.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		// YYYY-MM-DD.json compares lexicographically in chronological order.
		candidates = append(candidates, filepath.Join(dir, name))
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("no reports found in %s", dir)
	}
	sort.Strings(candidates)
	return candidates[len(candidates)-1], nil
}
