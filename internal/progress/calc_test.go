package progress

import (
	"math"
	"testing"

	"goalboard/internal/goalstore"
)

func TestProgressClamping(t *testing.T) {
	cases := []struct {
		name            string
		current, target float64
		want            float64
	}{
		{"half way", 50, 100, 50},
		{"exactly on target", 100, 100, 100},
		{"over target clamps", 150, 100, 100},
		{"negative current clamps", -10, 100, 0},
		{"zero target", 42, 0, 0},
		{"zero current zero target", 0, 0, 0},
		{"fractional", 1, 3, 100.0 / 3},
	}
	for _, tc := range cases {
		got := Progress(tc.current, tc.target)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("%s: Progress(%v, %v) = %v, want %v", tc.name, tc.current, tc.target, got, tc.want)
		}
		if got < 0 || got > 100 {
			t.Errorf("%s: Progress(%v, %v) = %v outside [0,100]", tc.name, tc.current, tc.target, got)
		}
	}
}

func TestCalcProgressDoesNotRenormalize(t *testing.T) {
	krs := []goalstore.KeyResult{
		{Current: 50, Target: 100, Weight: 60},
		{Current: 100, Target: 100, Weight: 40},
	}
	if got, want := CalcProgress(krs), 70; got != want {
		t.Fatalf("CalcProgress = %d, want %d", got, want)
	}

	// Weights summing to 50 skew the result; this form keeps the quirk.
	skewed := []goalstore.KeyResult{
		{Current: 100, Target: 100, Weight: 50},
	}
	if got, want := CalcProgress(skewed), 50; got != want {
		t.Fatalf("CalcProgress with partial weights = %d, want %d", got, want)
	}
}

func TestCalcProgressEmpty(t *testing.T) {
	if got := CalcProgress(nil); got != 0 {
		t.Fatalf("CalcProgress(nil) = %d, want 0", got)
	}
}

func TestCalcProgressFromProgressSingleIdentity(t *testing.T) {
	if got, want := CalcProgressFromProgress([]WeightedProgress{{Progress: 33.4, Weight: 7}}), 33; got != want {
		t.Fatalf("single item = %d, want %d", got, want)
	}
	if got, want := CalcProgressFromProgress([]WeightedProgress{{Progress: 33.5, Weight: 7}}), 34; got != want {
		t.Fatalf("single item rounds half up = %d, want %d", got, want)
	}
}

func TestCalcProgressFromProgressZeroWeight(t *testing.T) {
	items := []WeightedProgress{
		{Progress: 100, Weight: 0},
		{Progress: 50, Weight: 0},
	}
	if got := CalcProgressFromProgress(items); got != 0 {
		t.Fatalf("zero total weight = %d, want 0", got)
	}
}

func TestCalcProgressFromProgressRenormalizes(t *testing.T) {
	items := []WeightedProgress{
		{Progress: 50, Weight: 30},
		{Progress: 100, Weight: 20},
	}
	if got, want := CalcProgressFromProgress(items), 70; got != want {
		t.Fatalf("renormalized = %d, want %d", got, want)
	}
}

func TestCalcProgressFromProgressRoundsOnceAtEnd(t *testing.T) {
	// 33*(1/3) + 45*(2/3) = 11 + 30 = 41 exactly; per-term rounding would
	// compound error on less convenient inputs.
	items := []WeightedProgress{
		{Progress: 33, Weight: 1},
		{Progress: 45, Weight: 2},
	}
	if got, want := CalcProgressFromProgress(items), 41; got != want {
		t.Fatalf("final-sum rounding = %d, want %d", got, want)
	}
}

func TestCalcProgressFromProgressEmpty(t *testing.T) {
	if got := CalcProgressFromProgress(nil); got != 0 {
		t.Fatalf("empty = %d, want 0", got)
	}
}

func TestObjectiveProgressManualOverride(t *testing.T) {
	obj := goalstore.Objective{
		ProgressType: goalstore.ProgressManual,
		Progress:     62.4,
		KeyResults: []goalstore.KeyResult{
			{Current: 0, Target: 100, Weight: 100},
		},
	}
	if got, want := ObjectiveProgress(obj), 62; got != want {
		t.Fatalf("manual progress = %d, want %d", got, want)
	}
}

func TestObjectiveProgressAutomatic(t *testing.T) {
	obj := goalstore.Objective{
		ProgressType: goalstore.ProgressAutomatic,
		KeyResults: []goalstore.KeyResult{
			{Current: 50, Target: 100, Weight: 60},
			{Current: 100, Target: 100, Weight: 40},
		},
	}
	if got, want := ObjectiveProgress(obj), 70; got != want {
		t.Fatalf("automatic progress = %d, want %d", got, want)
	}
}

func TestScore(t *testing.T) {
	cases := []struct {
		progress float64
		want     float64
	}{
		{0, 0},
		{70, 0.70},
		{100, 1},
		{150, 1},
		{-10, 0},
	}
	for _, tc := range cases {
		if got := Score(tc.progress); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Score(%v) = %v, want %v", tc.progress, got, tc.want)
		}
	}
}

func TestObjectiveScorePrefersStored(t *testing.T) {
	stored := 0.45
	obj := goalstore.Objective{
		ProgressType: goalstore.ProgressManual,
		Progress:     90,
		Score:        &stored,
	}
	if got := ObjectiveScore(obj); got != 0.45 {
		t.Fatalf("stored score = %v, want 0.45", got)
	}

	obj.Score = nil
	if got := ObjectiveScore(obj); math.Abs(got-0.9) > 1e-9 {
		t.Fatalf("computed score = %v, want 0.9", got)
	}
}

func TestEndToEndObjectivePipeline(t *testing.T) {
	obj := goalstore.Objective{
		ProgressType: goalstore.ProgressAutomatic,
		KeyResults: []goalstore.KeyResult{
			{Current: 50, Target: 100, Weight: 60},
			{Current: 100, Target: 100, Weight: 40},
		},
	}

	if got, want := Progress(obj.KeyResults[0].Current, obj.KeyResults[0].Target), 50.0; got != want {
		t.Fatalf("first KR progress = %v, want %v", got, want)
	}
	if got, want := Progress(obj.KeyResults[1].Current, obj.KeyResults[1].Target), 100.0; got != want {
		t.Fatalf("second KR progress = %v, want %v", got, want)
	}

	pct := ObjectiveProgress(obj)
	if pct != 70 {
		t.Fatalf("objective progress = %d, want 70", pct)
	}
	if got, want := Classify(float64(pct)), LightGreen; got != want {
		t.Fatalf("classification = %s, want %s", got, want)
	}
	if got := Score(float64(pct)); math.Abs(got-0.70) > 1e-9 {
		t.Fatalf("score = %v, want 0.70", got)
	}
}
