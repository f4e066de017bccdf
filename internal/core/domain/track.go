package domain

// DefaultDurationMs is assumed when the search provider gave us no duration.
const DefaultDurationMs = 180000

// Track identifies a song selected for analysis. Immutable once created.
type Track struct {
	ID         string
	Title      string
	Artist     string
	ArtworkURL string // optional
	DurationMs int
	Popularity int // 0-100, zero when the provider omitted it
}

// WithDefaults returns a copy with the fallback duration applied.
func (t Track) WithDefaults() Track {
	if t.DurationMs <= 0 {
		t.DurationMs = DefaultDurationMs
	}
	return t
}
