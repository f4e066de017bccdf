package domain

// ScoreCategory names one of the four scored facets.
type ScoreCategory string

const (
	CategoryBpmRange ScoreCategory = "bpmRange"
	CategoryKeyMode  ScoreCategory = "keyMode"
	CategoryVibe     ScoreCategory = "vibe"
	CategoryLength   ScoreCategory = "length"
)

// Display bounds for every headline and category score.
const (
	ScoreFloor   = 51
	ScoreCeiling = 99
)

// ScoreBreakdownItem is one scored category. RawScore is the unclamped
// internal value retained for explanation text; DisplayScore is what the
// presentation layer shows.
type ScoreBreakdownItem struct {
	Category     ScoreCategory
	RawScore     int
	DisplayScore int
	Value        string // human-readable facet value, e.g. "128 BPM"
	Explanation  string // fallback narrative when AI feedback is absent
}

// CompositeScore is the headline sync-readiness result.
type CompositeScore struct {
	FinalScore   int
	Breakdown    [4]ScoreBreakdownItem
	MatchedGenre string // empty when no genre bucket matched
}

// ClampScore bounds a raw score to the display range.
func ClampScore(score int) int {
	if score < ScoreFloor {
		return ScoreFloor
	}
	if score > ScoreCeiling {
		return ScoreCeiling
	}
	return score
}
