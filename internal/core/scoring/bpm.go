package scoring

import (
	"fmt"
	"math"
)

// Tempo fit for sync is continuous, not a step function: inside the sweet
// range the score tapers from 99 at the center to ~89 at the edges, inside
// the hard range from 78 toward 63, and outside it decays toward the floor.
func bpmScore(bpm float64, bucket genreBucket) int {
	hardMin, sweetMin, sweetMax, hardMax := bucket.bpmRange[0], bucket.bpmRange[1], bucket.bpmRange[2], bucket.bpmRange[3]

	if bpm >= sweetMin && bpm <= sweetMax {
		center := (sweetMin + sweetMax) / 2
		halfWidth := (sweetMax - sweetMin) / 2
		if halfWidth == 0 {
			return 99
		}
		return 99 - int(math.Round(10*math.Abs(bpm-center)/halfWidth))
	}

	if bpm >= hardMin && bpm <= hardMax {
		var distance float64
		if bpm < sweetMin {
			distance = sweetMin - bpm
		} else {
			distance = bpm - sweetMax
		}
		width := hardMax - hardMin
		return 78 - int(math.Round(15*distance/width))
	}

	var outside float64
	if bpm < hardMin {
		outside = hardMin - bpm
	} else {
		outside = bpm - hardMax
	}
	score := 65 - int(math.Round(0.8*outside))
	if score < 52 {
		score = 52
	}
	return score
}

func bpmValue(bpm float64) string {
	return fmt.Sprintf("%d BPM", int(math.Round(bpm)))
}

func bpmExplanation(bpm float64, bucket genreBucket, matched bool) string {
	rounded := int(math.Round(bpm))
	sweetMin, sweetMax := bucket.bpmRange[1], bucket.bpmRange[2]
	genre := bucket.name
	if !matched {
		genre = "most"
	}

	switch {
	case bpm >= sweetMin && bpm <= sweetMax:
		return fmt.Sprintf("%d BPM sits right in the tempo range supervisors reach for in %s placements.", rounded, genre)
	case bpm >= bucket.bpmRange[0] && bpm <= bucket.bpmRange[3]:
		return fmt.Sprintf("%d BPM is workable for %s placements, a touch outside the most requested %.0f-%.0f range.", rounded, genre, sweetMin, sweetMax)
	default:
		return fmt.Sprintf("%d BPM is an unusual tempo for %s placements; consider cutting an alternate-tempo edit.", rounded, genre)
	}
}
