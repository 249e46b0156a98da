package goalstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"gopkg.in/yaml.v3"
)

// MarshalDocument renders a document back to its YAML wire form.
func MarshalDocument(doc Document) ([]byte, error) {
	raw := rawDocument{
		Objectives: make([]rawObjective, len(doc.Objectives)),
	}

	for i, obj := range doc.Objectives {
		progress := obj.Progress
		rawObj := rawObjective{
			ID:           obj.ID,
			Title:        obj.Title,
			GoalType:     string(obj.GoalType),
			ParentID:     obj.ParentID,
			ProgressType: string(obj.ProgressType),
			Progress:     &progress,
			OwnerID:      obj.OwnerID,
			TeamID:       obj.TeamID,
			Status:       string(obj.Status),
			KeyResults:   make([]rawKeyResult, len(obj.KeyResults)),
		}
		if obj.Score != nil {
			score := *obj.Score
			rawObj.Score = &score
		}

		for j, kr := range obj.KeyResults {
			weight := kr.Weight
			target := kr.Target
			current := kr.Current
			rawObj.KeyResults[j] = rawKeyResult{
				ID:      kr.ID,
				Title:   kr.Title,
				Weight:  &weight,
				Target:  &target,
				Current: &current,
				Unit:    kr.Unit,
			}
		}

		raw.Objectives[i] = rawObj
	}

	data, err := yaml.Marshal(&raw)
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}
	return data, nil
}

// WriteDocument writes a document back to its source YAML file atomically.
func WriteDocument(doc Document) error {
	if doc.Source == "" {
		return fmt.Errorf("document has no source path")
	}

	data, err := MarshalDocument(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(doc.Source)
	tmp, err := os.CreateTemp(dir, filepath.Base(doc.Source)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpName, doc.Source); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// RenderDiff produces a unified diff between each document's current file
// content and its proposed writeback form. An empty string means nothing
// would change.
func RenderDiff(docs []Document) (string, error) {
	var diffStrings []string

	for _, doc := range docs {
		if doc.Source == "" {
			return "", fmt.Errorf("document has no source path")
		}
		newBytes, err := MarshalDocument(doc)
		if err != nil {
			return "", err
		}
		oldBytes, _ := os.ReadFile(doc.Source)

		baseName := filepath.Base(doc.Source)
		diff := difflib.UnifiedDiff{
			A:        strings.Split(string(oldBytes), "\n"),
			B:        strings.Split(string(newBytes), "\n"),
			FromFile: filepath.Join("goals", baseName),
			ToFile:   filepath.Join("updated", baseName),
			Context:  3,
		}
		diffText, err := difflib.GetUnifiedDiffString(diff)
		if err != nil {
			return "", fmt.Errorf("diff %s: %w", baseName, err)
		}
		if strings.TrimSpace(diffText) != "" {
			diffStrings = append(diffStrings, diffText)
		}
	}

	return strings.Join(diffStrings, "\n"), nil
}
