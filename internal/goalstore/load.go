package goalstore

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// LoadFromDir loads and validates all goal YAML files from the provided
// directory. Cross-document checks cover id uniqueness only; alignment of
// the parent/child hierarchy is validated by the align package on top of
// the returned store.
func LoadFromDir(goalsDir string) (*Store, error) {
	if goalsDir == "" {
		goalsDir = "goals"
	}

	files, err := filepath.Glob(filepath.Join(goalsDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("scan goals dir: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no goal YAML files found in %s", goalsDir)
	}
	sort.Strings(files)

	var docs []Document
	var vErrs ValidationErrors

	for _, path := range files {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		doc, parseErr := ParseAndValidateDocument(data, path)
		if parseErr != nil {
			if ve, ok := parseErr.(ValidationErrors); ok {
				vErrs = append(vErrs, ve...)
				continue
			}
			return nil, parseErr
		}
		docs = append(docs, doc)
	}

	if len(vErrs) > 0 {
		return nil, vErrs
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no goal documents found in %s", goalsDir)
	}

	duplicateErrs := validateCrossDocumentUniqueness(docs)
	if len(duplicateErrs) > 0 {
		return nil, duplicateErrs
	}

	return buildStore(docs), nil
}

func validateCrossDocumentUniqueness(docs []Document) ValidationErrors {
	var errs ValidationErrors

	type objOrigin struct {
		file string
	}
	type krOrigin struct {
		file  string
		objID string
	}
	objSeen := make(map[string]objOrigin)
	krSeen := make(map[string]krOrigin)

	for _, doc := range docs {
		for objIdx, obj := range doc.Objectives {
			if obj.ID != "" {
				if origin, exists := objSeen[obj.ID]; exists {
					errs = append(errs, ValidationError{
						File:    doc.Source,
						Field:   fmt.Sprintf("objectives[%d].objective_id", objIdx),
						Message: fmt.Sprintf("objective_id %q already defined in %s", obj.ID, origin.file),
					})
				} else {
					objSeen[obj.ID] = objOrigin{file: doc.Source}
				}
			}

			for krIdx, kr := range obj.KeyResults {
				if kr.ID == "" {
					continue
				}
				if origin, exists := krSeen[kr.ID]; exists {
					errs = append(errs, ValidationError{
						File:    doc.Source,
						Field:   fmt.Sprintf("objectives[%d].key_results[%d].kr_id", objIdx, krIdx),
						Message: fmt.Sprintf("kr_id %q already defined in %s (objective %s)", kr.ID, origin.file, origin.objID),
					})
					continue
				}
				krSeen[kr.ID] = krOrigin{
					file:  doc.Source,
					objID: obj.ID,
				}
			}
		}
	}

	return errs
}

func buildStore(docs []Document) *Store {
	store := &Store{
		objectives: make(map[string]ObjectiveRecord),
		keyResults: make(map[string]KeyResultRecord),
	}

	for _, doc := range docs {
		store.Documents = append(store.Documents, doc)

		for _, obj := range doc.Objectives {
			objCopy := obj
			objCopy.SourceFile = doc.Source

			store.objectives[obj.ID] = ObjectiveRecord{
				Objective: objCopy,
				Source:    doc.Source,
			}

			for _, kr := range obj.KeyResults {
				store.keyResults[kr.ID] = KeyResultRecord{
					KeyResult: kr,
					Objective: objCopy,
					Source:    doc.Source,
				}
			}
		}
	}

	return store
}

// ListObjectiveIDs returns all objective ids in sorted order.
func (s *Store) ListObjectiveIDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.objectives))
	for id := range s.objectives {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
