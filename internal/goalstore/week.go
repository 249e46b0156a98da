package goalstore

import "time"

// WeekStart returns the Monday 00:00 UTC of the ISO week containing t.
// Callers feeding non-UTC dates get them normalized to UTC first; a date
// that is already a Monday maps to itself.
func WeekStart(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
