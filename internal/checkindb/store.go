package checkindb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"goalboard/internal/goalstore"
)

// Store manages check-in history in SQLite. One row exists per
// (key_result_id, user_id, week_start); submitting again for the same week
// overwrites the earlier measurement, while history across distinct weeks
// is retained indefinitely.
type Store struct {
	DBPath string
	db     *sql.DB
}

// Open opens or creates the check-in database. An empty path falls back to
// the GOALBOARD_CHECKINS_DB environment variable, then the default
// checkins/checkins.sqlite.
func Open(path string) (*Store, error) {
	if path == "" {
		path = os.Getenv("GOALBOARD_CHECKINS_DB")
	}
	if path == "" {
		path = filepath.Join("checkins", "checkins.sqlite")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve checkins db path: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("ensure checkins db dir: %w", err)
	}

	db, err := sql.Open("sqlite", absPath)
	if err != nil {
		return nil, fmt.Errorf("open checkins db: %w", err)
	}

	store := &Store{
		DBPath: absPath,
		db:     db,
	}

	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) ensureSchema() error {
	schema := `
CREATE TABLE IF NOT EXISTS check_ins (
	id TEXT PRIMARY KEY,
	key_result_id TEXT NOT NULL,
	user_id TEXT NOT NULL,
	week_start TEXT NOT NULL,
	value REAL NOT NULL,
	status TEXT NOT NULL,
	comment TEXT,
	recorded_at TEXT NOT NULL,
	UNIQUE (key_result_id, user_id, week_start)
);

CREATE INDEX IF NOT EXISTS idx_checkins_kr_week ON check_ins(key_result_id, week_start);

CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	ts TEXT NOT NULL,
	actor TEXT NOT NULL,
	type TEXT NOT NULL,
	payload_json TEXT NOT NULL
);
`
	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("create checkins schema: %w", err)
	}
	return nil
}

// Upsert records a weekly check-in. The week start is normalized to the
// Monday of its ISO week before storage. Returns the row id and whether a
// new row was created (false means an existing week was overwritten).
func (s *Store) Upsert(ci goalstore.CheckIn, now time.Time) (string, bool, error) {
	if ci.KeyResultID == "" {
		return "", false, fmt.Errorf("key result id is required")
	}
	if ci.UserID == "" {
		return "", false, fmt.Errorf("user id is required")
	}
	if _, err := goalstore.ParseCheckInStatus(string(ci.Status)); err != nil {
		return "", false, err
	}

	week := goalstore.WeekStart(ci.WeekStart).Format("2006-01-02")
	recordedAt := now.UTC().Format(time.RFC3339)

	var existingID string
	err := s.db.QueryRow(
		"SELECT id FROM check_ins WHERE key_result_id = ? AND user_id = ? AND week_start = ?",
		ci.KeyResultID, ci.UserID, week,
	).Scan(&existingID)

	created := false
	switch {
	case err == sql.ErrNoRows:
		existingID = uuid.NewString()
		_, err = s.db.Exec(`
			INSERT INTO check_ins (id, key_result_id, user_id, week_start, value, status, comment, recorded_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, existingID, ci.KeyResultID, ci.UserID, week, ci.Value, string(ci.Status), ci.Comment, recordedAt)
		if err != nil {
			return "", false, fmt.Errorf("insert check-in: %w", err)
		}
		created = true
	case err != nil:
		return "", false, fmt.Errorf("check existing check-in: %w", err)
	default:
		_, err = s.db.Exec(`
			UPDATE check_ins
			SET value = ?, status = ?, comment = ?, recorded_at = ?
			WHERE id = ?
		`, ci.Value, string(ci.Status), ci.Comment, recordedAt, existingID)
		if err != nil {
			return "", false, fmt.Errorf("update check-in: %w", err)
		}
	}

	eventType := "checkin_updated"
	if created {
		eventType = "checkin_created"
	}
	s.logEvent(ci.UserID, eventType, map[string]any{
		"check_in_id":   existingID,
		"key_result_id": ci.KeyResultID,
		"week_start":    week,
		"value":         ci.Value,
		"status":        string(ci.Status),
	}, now)

	return existingID, created, nil
}

// ListByKeyResult returns all check-ins for a key result ordered by week.
func (s *Store) ListByKeyResult(keyResultID string) ([]goalstore.CheckIn, error) {
	rows, err := s.db.Query(`
		SELECT id, key_result_id, user_id, week_start, value, status, comment
		FROM check_ins
		WHERE key_result_id = ?
		ORDER BY week_start ASC, user_id ASC
	`, keyResultID)
	if err != nil {
		return nil, fmt.Errorf("query check-ins: %w", err)
	}
	defer rows.Close()

	return scanCheckIns(rows)
}

// ListSince returns all check-ins whose week start falls on or after the
// week containing t, ordered by week.
func (s *Store) ListSince(t time.Time) ([]goalstore.CheckIn, error) {
	week := goalstore.WeekStart(t).Format("2006-01-02")
	rows, err := s.db.Query(`
		SELECT id, key_result_id, user_id, week_start, value, status, comment
		FROM check_ins
		WHERE week_start >= ?
		ORDER BY week_start ASC, key_result_id ASC, user_id ASC
	`, week)
	if err != nil {
		return nil, fmt.Errorf("query check-ins: %w", err)
	}
	defer rows.Close()

	return scanCheckIns(rows)
}

// ListAll returns every stored check-in ordered by week.
func (s *Store) ListAll() ([]goalstore.CheckIn, error) {
	rows, err := s.db.Query(`
		SELECT id, key_result_id, user_id, week_start, value, status, comment
		FROM check_ins
		ORDER BY week_start ASC, key_result_id ASC, user_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query check-ins: %w", err)
	}
	defer rows.Close()

	return scanCheckIns(rows)
}

// LatestByKeyResult returns the chronologically latest check-in per key
// result id.
func (s *Store) LatestByKeyResult() (map[string]goalstore.CheckIn, error) {
	all, err := s.ListAll()
	if err != nil {
		return nil, err
	}
	latest := make(map[string]goalstore.CheckIn)
	for _, ci := range all {
		prev, ok := latest[ci.KeyResultID]
		if !ok || ci.WeekStart.After(prev.WeekStart) {
			latest[ci.KeyResultID] = ci
		}
	}
	return latest, nil
}

func scanCheckIns(rows *sql.Rows) ([]goalstore.CheckIn, error) {
	var out []goalstore.CheckIn
	for rows.Next() {
		var ci goalstore.CheckIn
		var week string
		var status string
		var comment sql.NullString
		if err := rows.Scan(&ci.ID, &ci.KeyResultID, &ci.UserID, &week, &ci.Value, &status, &comment); err != nil {
			return nil, fmt.Errorf("scan check-in: %w", err)
		}
		parsed, err := time.ParseInLocation("2006-01-02", week, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parse week_start %q: %w", week, err)
		}
		ci.WeekStart = parsed
		ci.Status = goalstore.CheckInStatus(status)
		if comment.Valid {
			ci.Comment = comment.String
		}
		out = append(out, ci)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate check-ins: %w", err)
	}
	return out, nil
}

// logEvent appends an audit event; failures are swallowed because the
// check-in itself already committed.
func (s *Store) logEvent(actor, eventType string, payload any, now time.Time) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return
	}
	_, _ = s.db.Exec(
		"INSERT INTO events (ts, actor, type, payload_json) VALUES (?, ?, ?, ?)",
		now.UTC().Format(time.RFC3339), actor, eventType, string(payloadJSON),
	)
}

// Event is one audit record of a check-in mutation.
type Event struct {
	ID          int64
	TS          time.Time
	Actor       string
	Type        string
	PayloadJSON string
}

// ListEvents returns up to limit audit events, newest first.
func (s *Store) ListEvents(limit int) ([]Event, error) {
	rows, err := s.db.Query(`
		SELECT id, ts, actor, type, payload_json
		FROM events
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		var ts string
		if err := rows.Scan(&ev.ID, &ts, &ev.Actor, &ev.Type, &ev.PayloadJSON); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			return nil, fmt.Errorf("parse event ts %q: %w", ts, err)
		}
		ev.TS = parsed
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return out, nil
}
