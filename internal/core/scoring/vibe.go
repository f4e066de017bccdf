package scoring

import (
	"fmt"
	"strings"
)

// fallbackVibeScore applies when the intensity label is missing or not one
// the tables know.
const fallbackVibeScore = 78

func vibeScore(intensity string, bucket genreBucket) int {
	if score, ok := bucket.vibe[intensity]; ok {
		return score
	}
	return fallbackVibeScore
}

func vibeValue(intensity string) string {
	return fmt.Sprintf("%s intensity", intensity)
}

var vibeScenes = map[string]string{
	"low":       "dialogue-safe underscore, voice-overs and intimate scenes",
	"medium":    "emotional montages and the broad middle of narrative placements",
	"high":      "sports highlights, action sequences and upbeat commercials",
	"very high": "trailer climaxes and maximum-impact moments",
}

func vibeExplanation(intensity string) string {
	if scenes, ok := vibeScenes[intensity]; ok {
		return fmt.Sprintf("Its %s energy points toward %s.", intensity, scenes)
	}
	return "The track's energy level was not reported, so scene fit is an open question."
}

// normalizeIntensity folds provider casing; unknown labels pass through and
// fall back at the table lookup.
func normalizeIntensity(intensity string) string {
	intensity = strings.ToLower(strings.TrimSpace(intensity))
	if intensity == "" {
		return "medium"
	}
	return intensity
}
