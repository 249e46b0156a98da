package heatmap

import (
	"math"
	"time"

	"goalboard/internal/goalstore"
	"goalboard/internal/progress"
)

// Summary counts heatmap rows by the traffic light of their latest bucket.
// Gray rows count toward none of the three track buckets. DueThisWeek
// counts rows still owing a check-in for the current week.
type Summary struct {
	OnTrack     int `json:"on_track"`
	AtRisk      int `json:"at_risk"`
	OffTrack    int `json:"off_track"`
	DueThisWeek int `json:"due_this_week"`
}

// TeamHeat is one team's aggregate row in the team heatmap.
type TeamHeat struct {
	TeamID      string         `json:"team_id"`
	AvgProgress int            `json:"avg_progress"`
	Light       progress.Light `json:"light"`
	MemberCount int            `json:"member_count"`
}

// Hero is the headline statistic block for a dashboard header.
type Hero struct {
	AvgProgress      int     `json:"avg_progress"`
	CompletionRate   int     `json:"completion_rate"`
	AtRiskObjectives int     `json:"at_risk_objectives"`
	ObjectiveCount   int     `json:"objective_count"`
	ScoreAverage     float64 `json:"score_average"`
}

// unassignedTeam buckets objectives that carry no team reference. They all
// collapse into this one synthetic group.
const unassignedTeam = "unassigned"

// BuildWeeklySummary scans each row's latest bucket and tallies track
// status. A row is due this week when it has no buckets at all, its latest
// bucket predates the current week, or its latest value is exactly zero;
// the triggers are independent but a row contributes at most once.
func BuildWeeklySummary(rows []Row, now time.Time) Summary {
	currentWeek := goalstore.WeekStart(now)
	var sum Summary

	for _, row := range rows {
		if len(row.Buckets) == 0 {
			sum.DueThisWeek++
			continue
		}

		latest := row.Buckets[0]
		for _, bucket := range row.Buckets[1:] {
			if bucket.Date.After(latest.Date) {
				latest = bucket
			}
		}

		switch latest.Light {
		case progress.LightGreen:
			sum.OnTrack++
		case progress.LightYellow:
			sum.AtRisk++
		case progress.LightRed:
			sum.OffTrack++
		}

		if latest.Date.Before(currentWeek) || latest.Value == 0 {
			sum.DueThisWeek++
		}
	}

	return sum
}

// BuildTeamHeatmap groups objectives by team, averages their progress, and
// classifies each group. Objectives without a team collapse into a single
// "unassigned" group. MemberCount is the number of distinct owners, a proxy
// for headcount rather than an authoritative roster. Group order follows
// first appearance in the input.
func BuildTeamHeatmap(objectives []goalstore.Objective) []TeamHeat {
	type group struct {
		total  int
		count  int
		owners map[string]struct{}
	}
	groups := make(map[string]*group)
	var order []string

	for _, obj := range objectives {
		teamID := obj.TeamID
		if teamID == "" {
			teamID = unassignedTeam
		}
		g, ok := groups[teamID]
		if !ok {
			g = &group{owners: make(map[string]struct{})}
			groups[teamID] = g
			order = append(order, teamID)
		}
		g.total += progress.ObjectiveProgress(obj)
		g.count++
		if obj.OwnerID != "" {
			g.owners[obj.OwnerID] = struct{}{}
		}
	}

	heats := make([]TeamHeat, 0, len(order))
	for _, teamID := range order {
		g := groups[teamID]
		avg := int(math.Round(float64(g.total) / float64(g.count)))
		heats = append(heats, TeamHeat{
			TeamID:      teamID,
			AvgProgress: avg,
			Light:       progress.Classify(float64(avg)),
			MemberCount: len(g.owners),
		})
	}

	return heats
}

// BuildHeroSummary computes the headline statistics across the full
// objective set. Scores mix stored cycle-close values with scores derived
// from live progress when none was recorded. Empty input yields the zero
// summary rather than an error so a dashboard always has something to show.
func BuildHeroSummary(objectives []goalstore.Objective) Hero {
	hero := Hero{ObjectiveCount: len(objectives)}
	if len(objectives) == 0 {
		return hero
	}

	var progressTotal int
	var doneCount int
	var scoreTotal float64

	for _, obj := range objectives {
		progressTotal += progress.ObjectiveProgress(obj)
		if obj.Status == goalstore.StatusDone {
			doneCount++
		}
		if obj.Status == goalstore.StatusAtRisk {
			hero.AtRiskObjectives++
		}
		scoreTotal += progress.ObjectiveScore(obj)
	}

	n := float64(len(objectives))
	hero.AvgProgress = int(math.Round(float64(progressTotal) / n))
	hero.CompletionRate = int(math.Round(float64(doneCount) / n * 100))
	hero.ScoreAverage = math.Round(scoreTotal/n*100) / 100

	return hero
}
