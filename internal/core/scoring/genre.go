package scoring

import "strings"

// genreBucket is one canonical genre with its scoring tables.
type genreBucket struct {
	name     string
	keywords []string

	// bpmRange is [hardMin, sweetMin, sweetMax, hardMax].
	bpmRange [4]float64

	// vibe maps perceived intensity to a score.
	vibe map[string]int

	// commonKeys drive the +-2 key adjustment.
	commonKeys []string

	// minorTolerant genres score minor mode as highly as major.
	minorTolerant bool
}

// genreBuckets is ordered: the first bucket with any matching tag wins.
// Keyword lists follow the tag vocabulary the metadata provider emits.
var genreBuckets = []genreBucket{
	{
		name:          "hip-hop",
		keywords:      []string{"hip-hop", "hip hop", "rap", "trap", "drill"},
		bpmRange:      [4]float64{60, 80, 100, 160},
		vibe:          map[string]int{"low": 70, "medium": 85, "high": 92, "very high": 84},
		commonKeys:    []string{"C#", "F", "G#", "A#"},
		minorTolerant: true,
	},
	{
		name:          "rock",
		keywords:      []string{"rock", "alternative rock", "indie rock", "punk"},
		bpmRange:      [4]float64{90, 110, 140, 180},
		vibe:          map[string]int{"low": 68, "medium": 80, "high": 93, "very high": 90},
		commonKeys:    []string{"E", "A", "D", "G"},
		minorTolerant: true,
	},
	{
		name:          "indie",
		keywords:      []string{"indie", "indie pop", "indie folk", "lo-fi", "bedroom pop"},
		bpmRange:      [4]float64{80, 95, 125, 150},
		vibe:          map[string]int{"low": 83, "medium": 88, "high": 80, "very high": 70},
		commonKeys:    []string{"C", "G", "D", "A"},
		minorTolerant: true,
	},
	{
		name:       "pop",
		keywords:   []string{"pop", "synth-pop", "electropop", "dance pop"},
		bpmRange:   [4]float64{90, 100, 130, 150},
		vibe:       map[string]int{"low": 74, "medium": 86, "high": 92, "very high": 80},
		commonKeys: []string{"C", "G", "A", "F"},
	},
	{
		name:          "rnb",
		keywords:      []string{"r&b", "rnb", "soul", "neo-soul"},
		bpmRange:      [4]float64{60, 70, 100, 130},
		vibe:          map[string]int{"low": 82, "medium": 90, "high": 84, "very high": 72},
		commonKeys:    []string{"C#", "D#", "F", "G#"},
		minorTolerant: true,
	},
	{
		name:          "electronic",
		keywords:      []string{"electronic", "edm", "house", "techno", "ambient"},
		bpmRange:      [4]float64{90, 118, 132, 160},
		vibe:          map[string]int{"low": 72, "medium": 84, "high": 95, "very high": 88},
		commonKeys:    []string{"A", "F", "G", "C"},
		minorTolerant: true,
	},
	{
		name:       "country",
		keywords:   []string{"country", "americana", "folk"},
		bpmRange:   [4]float64{70, 85, 115, 140},
		vibe:       map[string]int{"low": 80, "medium": 88, "high": 85, "very high": 72},
		commonKeys: []string{"G", "C", "D", "E"},
	},
	{
		name:          "cinematic",
		keywords:      []string{"cinematic", "soundtrack", "orchestral", "score"},
		bpmRange:      [4]float64{50, 70, 110, 150},
		vibe:          map[string]int{"low": 78, "medium": 84, "high": 92, "very high": 97},
		commonKeys:    []string{"D", "C", "F", "A"},
		minorTolerant: true,
	},
}

// defaultBucket applies when no genre tag matched. Its name stays empty so
// callers can tell "unmatched" apart from a real bucket.
var defaultBucket = genreBucket{
	bpmRange: [4]float64{70, 90, 130, 160},
	vibe:     map[string]int{"low": 72, "medium": 82, "high": 88, "very high": 78},
}

// matchGenre resolves free-text genre tags to a canonical bucket.
// Tags are ASCII case-folded and trimmed; a tag matches a bucket when it
// contains any of the bucket's keywords as a substring. First bucket in
// table order with a match wins. Returns the default bucket and false when
// nothing matched.
func matchGenre(tags []string) (genreBucket, bool) {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag != "" {
			normalized = append(normalized, tag)
		}
	}

	for _, bucket := range genreBuckets {
		for _, tag := range normalized {
			for _, keyword := range bucket.keywords {
				if strings.Contains(tag, keyword) {
					return bucket, true
				}
			}
		}
	}

	return defaultBucket, false
}

func (b genreBucket) hasCommonKey(key string) bool {
	for _, k := range b.commonKeys {
		if strings.EqualFold(k, key) {
			return true
		}
	}
	return false
}
