package heatmap

import (
	"math"
	"time"

	"goalboard/internal/goalstore"
	"goalboard/internal/progress"
)

// WeekCount is the number of weekly buckets in a heatmap row, covering
// [now - 4 weeks, now] inclusive.
const WeekCount = 5

// Bucket is one week of a key result's heatmap row.
type Bucket struct {
	Date  time.Time      `json:"date"`
	Value int            `json:"value"`
	Light progress.Light `json:"light"`
}

// Row is the weekly progress history for a single key result, oldest
// bucket first.
type Row struct {
	KeyResultID string   `json:"kr_id"`
	Title       string   `json:"title"`
	Buckets     []Bucket `json:"buckets"`
}

// BuildHeatmap produces one row per key result with exactly WeekCount
// weekly buckets ending at the week containing now. A bucket is filled
// only by a check-in whose week start matches that bucket's week exactly;
// weeks without a check-in render as zero-valued gray buckets. When
// several check-ins land in the same key result week, the last one in
// input order wins, mirroring the upsert lifecycle of the check-in store.
func BuildHeatmap(krs []goalstore.KeyResult, checkins []goalstore.CheckIn, now time.Time) []Row {
	type weekKey struct {
		krID string
		week time.Time
	}
	byWeek := make(map[weekKey]goalstore.CheckIn, len(checkins))
	for _, ci := range checkins {
		byWeek[weekKey{krID: ci.KeyResultID, week: goalstore.WeekStart(ci.WeekStart)}] = ci
	}

	currentWeek := goalstore.WeekStart(now)
	rows := make([]Row, 0, len(krs))

	for _, kr := range krs {
		row := Row{
			KeyResultID: kr.ID,
			Title:       kr.Title,
			Buckets:     make([]Bucket, 0, WeekCount),
		}
		for i := WeekCount - 1; i >= 0; i-- {
			week := currentWeek.AddDate(0, 0, -7*i)
			bucket := Bucket{
				Date:  week,
				Light: progress.LightGray,
			}
			if ci, ok := byWeek[weekKey{krID: kr.ID, week: week}]; ok {
				bucket.Value = int(math.Round(ci.Value))
				bucket.Light = progress.Classify(float64(bucket.Value))
			}
			row.Buckets = append(row.Buckets, bucket)
		}
		rows = append(rows, row)
	}

	return rows
}
