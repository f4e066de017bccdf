package scoring

import (
	"fmt"
	"math"
)

// Length bands in minutes. The 2:30-3:00 sweet spot is what editors ask for;
// scores taper in the surrounding bands and floor outside 1-5 minutes.
const (
	sweetLenMin = 2.5
	sweetLenMax = 3.0
	goodLenMin  = 2.0
	goodLenMax  = 3.5
	okLenMin    = 1.5
	okLenMax    = 4.0
	edgeLenMin  = 1.0
	edgeLenMax  = 5.0
)

func lengthScore(durationMs int) int {
	minutes := float64(durationMs) / 60000.0

	switch {
	case minutes >= sweetLenMin && minutes <= sweetLenMax:
		return 99
	case minutes >= goodLenMin && minutes <= goodLenMax:
		return 99 - int(math.Round(16*bandDistance(minutes, sweetLenMin, sweetLenMax)))
	case minutes >= okLenMin && minutes <= okLenMax:
		return 88 - int(math.Round(20*bandDistance(minutes, goodLenMin, goodLenMax)))
	case minutes >= edgeLenMin && minutes <= edgeLenMax:
		return 70
	default:
		return 55
	}
}

// bandDistance is the distance (minutes) from the nearest edge of [lo, hi].
func bandDistance(minutes, lo, hi float64) float64 {
	if minutes < lo {
		return lo - minutes
	}
	if minutes > hi {
		return minutes - hi
	}
	return 0
}

func lengthValue(durationMs int) string {
	totalSeconds := durationMs / 1000
	return fmt.Sprintf("%d:%02d", totalSeconds/60, totalSeconds%60)
}

func lengthExplanation(durationMs int) string {
	minutes := float64(durationMs) / 60000.0
	value := lengthValue(durationMs)

	switch {
	case minutes >= sweetLenMin && minutes <= sweetLenMax:
		return fmt.Sprintf("At %s the track lands in the 2:30-3:00 window editors ask for most.", value)
	case minutes >= goodLenMin && minutes <= goodLenMax:
		return fmt.Sprintf("%s is close to the ideal sync length; a tighter radio edit would cover the rest.", value)
	case minutes >= okLenMin && minutes <= okLenMax:
		return fmt.Sprintf("%s is usable but outside the preferred window; a 2:30-3:00 edit widens the options.", value)
	default:
		return fmt.Sprintf("%s is far from typical placement lengths; consider cutting a dedicated sync edit.", value)
	}
}
