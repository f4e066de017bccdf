// Package scoring maps track metadata to a sync-licensing readiness score.
// Everything here is pure: no I/O, no clocks, no randomness. Malformed or
// missing inputs are defaulted, never rejected, so Score is total over its
// input domain.
package scoring

import (
	"math"
	"strings"

	"github.com/atwell-labs/syncscore/internal/core/domain"
)

// noGenrePenalty is subtracted from the composite when no genre bucket
// matched: without a genre the tables are guesses.
const noGenrePenalty = 3

// defaultBPM stands in when the provider reported no usable tempo.
const defaultBPM = 120

// Score computes the composite sync-readiness score for a track.
func Score(meta domain.TrackMetadata, durationMs int) domain.CompositeScore {
	bpm := meta.Music.BPM
	if bpm <= 0 {
		bpm = defaultBPM
	}
	key := strings.TrimSpace(meta.Music.Key)
	if key == "" {
		key = "Unknown"
	}
	mode := normalizeMode(meta.Music.Mode)
	intensity := normalizeIntensity(meta.Audio.PerceivedIntensity)
	if durationMs <= 0 {
		durationMs = domain.DefaultDurationMs
	}

	bucket, matched := matchGenre(meta.Genres)

	raw := [4]int{
		bpmScore(bpm, bucket),
		keyModeScore(key, mode, bucket, matched),
		vibeScore(intensity, bucket),
		lengthScore(durationMs),
	}

	breakdown := [4]domain.ScoreBreakdownItem{
		{
			Category:    domain.CategoryBpmRange,
			RawScore:    raw[0],
			Value:       bpmValue(bpm),
			Explanation: bpmExplanation(bpm, bucket, matched),
		},
		{
			Category:    domain.CategoryKeyMode,
			RawScore:    raw[1],
			Value:       keyModeValue(key, mode),
			Explanation: keyModeExplanation(mode, bucket, matched),
		},
		{
			Category:    domain.CategoryVibe,
			RawScore:    raw[2],
			Value:       vibeValue(intensity),
			Explanation: vibeExplanation(intensity),
		},
		{
			Category:    domain.CategoryLength,
			RawScore:    raw[3],
			Value:       lengthValue(durationMs),
			Explanation: lengthExplanation(durationMs),
		},
	}
	for i := range breakdown {
		breakdown[i].DisplayScore = domain.ClampScore(breakdown[i].RawScore)
	}

	sum := 0
	for _, s := range raw {
		sum += s
	}
	final := int(math.Round(float64(sum) / 4))
	if !matched {
		final -= noGenrePenalty
	}

	return domain.CompositeScore{
		FinalScore:   domain.ClampScore(final),
		Breakdown:    breakdown,
		MatchedGenre: bucket.name,
	}
}

// MatchGenre exposes genre bucket resolution for callers that need the
// canonical genre outside of scoring (e.g. feedback prompts).
func MatchGenre(tags []string) string {
	bucket, matched := matchGenre(tags)
	if !matched {
		return ""
	}
	return bucket.name
}
