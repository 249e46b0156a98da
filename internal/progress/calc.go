package progress

import (
	"math"

	"goalboard/internal/goalstore"
)

// WeightedProgress pairs an already-computed progress percentage with its
// weight share for the renormalizing aggregation form.
type WeightedProgress struct {
	Progress float64
	Weight   int
}

// Progress converts a key result's current/target pair into a bounded
// percentage. A zero target means there is no meaningful target and yields
// 0 rather than a division blow-up.
func Progress(current, target float64) float64 {
	if target == 0 {
		return 0
	}
	pct := (current / target) * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0
	}
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// CalcProgress aggregates raw current/target key results into an objective
// percentage using weight/100 shares. It deliberately does not renormalize:
// weights that do not sum to 100 skew the result, matching the legacy
// calculation path. See CalcProgressFromProgress for the normalizing form.
func CalcProgress(krs []goalstore.KeyResult) int {
	var sum float64
	for _, kr := range krs {
		sum += Progress(kr.Current, kr.Target) * float64(kr.Weight) / 100
	}
	return int(math.Round(sum))
}

// CalcProgressFromProgress aggregates pre-computed progress values into an
// objective percentage, normalizing by the total weight so that weight sums
// other than 100 still average correctly. Rounding happens once on the
// final sum, never per term.
func CalcProgressFromProgress(items []WeightedProgress) int {
	var totalWeight int
	for _, item := range items {
		totalWeight += item.Weight
	}
	if totalWeight == 0 {
		return 0
	}

	var sum float64
	for _, item := range items {
		sum += item.Progress * float64(item.Weight) / float64(totalWeight)
	}
	return int(math.Round(sum))
}

// ObjectiveProgress computes an objective's progress percentage. Manual
// objectives use their stored value as-is; automatic objectives derive it
// from their key results via the normalizing aggregation.
func ObjectiveProgress(obj goalstore.Objective) int {
	if obj.ProgressType == goalstore.ProgressManual {
		stored := math.Round(obj.Progress)
		if stored < 0 {
			return 0
		}
		if stored > 100 {
			return 100
		}
		return int(stored)
	}

	items := make([]WeightedProgress, 0, len(obj.KeyResults))
	for _, kr := range obj.KeyResults {
		items = append(items, WeightedProgress{
			Progress: Progress(kr.Current, kr.Target),
			Weight:   kr.Weight,
		})
	}
	return CalcProgressFromProgress(items)
}

// Score maps a finalized progress percentage to the 0.0-1.0 reporting scale
// used at cycle close.
func Score(progress float64) float64 {
	score := progress / 100
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// ObjectiveScore returns the stored score when one was recorded at cycle
// close, falling back to the score computed from current progress.
func ObjectiveScore(obj goalstore.Objective) float64 {
	if obj.Score != nil {
		return *obj.Score
	}
	return Score(float64(ObjectiveProgress(obj)))
}
