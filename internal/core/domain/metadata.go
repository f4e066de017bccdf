package domain

// MusicCharacteristics holds the tonal facts the metadata provider reports.
type MusicCharacteristics struct {
	BPM  float64
	Key  string // "C", "F#", ... or "Unknown"
	Mode string // "major" or "minor"
}

// AudioCharacteristics holds the coarse perceptual facts.
type AudioCharacteristics struct {
	PerceivedIntensity string // "low" | "medium" | "high" | "very high"
}

// TrackMetadata is the describing record for one track. It is fetched per
// analysis session and never cached across sessions.
type TrackMetadata struct {
	Music  MusicCharacteristics
	Audio  AudioCharacteristics
	Genres []string // free-text tags, unordered
}

// Valid reports whether the record is complete enough to score.
// A record without a positive BPM means the provider has not finished
// analyzing the track yet.
func (m TrackMetadata) Valid() bool {
	return m.Music.BPM > 0
}
