package scoring

import (
	"fmt"
	"strings"
)

const (
	modeMajor = "major"
	modeMinor = "minor"
)

// keyModeScore is categorical: mode sets the base, the specific key nudges
// it by 2 when a genre bucket matched.
func keyModeScore(key, mode string, bucket genreBucket, matched bool) int {
	var base int
	switch mode {
	case modeMajor:
		base = 88
	case modeMinor:
		switch {
		case !matched:
			base = 85
		case bucket.minorTolerant:
			base = 88
		default:
			base = 82
		}
	default:
		base = 80
	}

	if matched {
		if bucket.hasCommonKey(key) {
			base += 2
		} else {
			base -= 2
		}
	}

	return base
}

func keyModeValue(key, mode string) string {
	return fmt.Sprintf("%s %s", key, titleCase(mode))
}

func keyModeExplanation(mode string, bucket genreBucket, matched bool) string {
	switch mode {
	case modeMajor:
		return "Major keys read bright and open, a natural fit for uplifting and commercial placements."
	case modeMinor:
		if matched && !bucket.minorTolerant {
			return fmt.Sprintf("Minor keys bring emotional weight; in %s they narrow the brief slightly but open dramatic placements.", bucket.name)
		}
		return "Minor keys carry emotional depth and tension, well suited to dramatic and cinematic placements."
	default:
		return "The key and mode could not be determined, which makes the tonal fit harder to pitch."
	}
}

// normalizeMode folds provider casing; an absent mode defaults to major, a
// present but unrecognized one stays as-is and scores the unknown base.
func normalizeMode(mode string) string {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" {
		return modeMajor
	}
	return mode
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
