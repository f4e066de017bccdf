package scoring

import (
	"testing"

	"github.com/atwell-labs/syncscore/internal/core/domain"
)

func metaWith(bpm float64, key, mode, intensity string, genres ...string) domain.TrackMetadata {
	return domain.TrackMetadata{
		Music: domain.MusicCharacteristics{BPM: bpm, Key: key, Mode: mode},
		Audio: domain.AudioCharacteristics{PerceivedIntensity: intensity},
		Genres: genres,
	}
}

func TestScoreHouseTrack(t *testing.T) {
	// 128 BPM house track at 2:45 should land near the top of the range.
	meta := metaWith(128, "A", "major", "high", "house")
	got := Score(meta, 165000)

	if got.MatchedGenre != "electronic" {
		t.Fatalf("MatchedGenre: got %q, want electronic", got.MatchedGenre)
	}

	bpm := got.Breakdown[0]
	if bpm.RawScore < 89 || bpm.RawScore > 99 {
		t.Errorf("bpm score: got %d, want near sweet spot (89-99)", bpm.RawScore)
	}
	if bpm.Value != "128 BPM" {
		t.Errorf("bpm value: got %q, want \"128 BPM\"", bpm.Value)
	}

	if vibe := got.Breakdown[2]; vibe.RawScore != 95 {
		t.Errorf("vibe score: got %d, want 95 (electronic/high)", vibe.RawScore)
	}

	if length := got.Breakdown[3]; length.RawScore != 99 {
		t.Errorf("length score: got %d, want 99 for 2:45", length.RawScore)
	}

	if got.FinalScore < 85 || got.FinalScore > 99 {
		t.Errorf("final score: got %d, want high-80s/90s", got.FinalScore)
	}
}

func TestScoreUnmatchedOutlier(t *testing.T) {
	// 200 BPM, minor, low energy, ten minutes long, no genre tags: every
	// category drags and the no-genre penalty applies, but the floor holds.
	meta := metaWith(200, "", "minor", "low")
	got := Score(meta, 600000)

	if got.MatchedGenre != "" {
		t.Fatalf("MatchedGenre: got %q, want no match", got.MatchedGenre)
	}

	if bpm := got.Breakdown[0]; bpm.RawScore < 52 || bpm.RawScore > 55 {
		t.Errorf("bpm score: got %d, want floor (52-55)", bpm.RawScore)
	}
	if length := got.Breakdown[3]; length.RawScore != 55 {
		t.Errorf("length score: got %d, want 55 for 10:00", length.RawScore)
	}
	if got.FinalScore > 65 {
		t.Errorf("final score: got %d, want <= 65", got.FinalScore)
	}
	if got.FinalScore < domain.ScoreFloor {
		t.Errorf("final score: got %d, below floor %d", got.FinalScore, domain.ScoreFloor)
	}
}

func TestBpmSweetSpotMaximizedAtCenter(t *testing.T) {
	bucket := genreBuckets[5] // electronic, sweet 118-132
	if bucket.name != "electronic" {
		t.Fatalf("bucket order changed: got %q", bucket.name)
	}

	center := (bucket.bpmRange[1] + bucket.bpmRange[2]) / 2
	centerScore := bpmScore(center, bucket)
	if centerScore != 99 {
		t.Fatalf("center score: got %d, want 99", centerScore)
	}

	for bpm := bucket.bpmRange[1]; bpm <= bucket.bpmRange[2]; bpm++ {
		score := bpmScore(bpm, bucket)
		if score < 89 || score > 99 {
			t.Errorf("bpm %.0f: score %d outside [89,99]", bpm, score)
		}
		if score > centerScore {
			t.Errorf("bpm %.0f: score %d exceeds center score %d", bpm, score, centerScore)
		}
	}
}

func TestLengthSweetSpot(t *testing.T) {
	for _, seconds := range []int{150, 160, 170, 180} {
		if got := lengthScore(seconds * 1000); got != 99 {
			t.Errorf("lengthScore(%ds): got %d, want 99", seconds, got)
		}
	}
}

func TestLengthBands(t *testing.T) {
	tests := []struct {
		name       string
		durationMs int
		want       int
	}{
		{"two minutes", 120000, 91},  // 0.5 from sweet edge: 99 - 8
		{"3:30", 210000, 91},
		{"ninety seconds", 90000, 78}, // 0.5 from good edge: 88 - 10
		{"four minutes", 240000, 78},
		{"one minute", 60000, 70},
		{"five minutes", 300000, 70},
		{"thirty seconds", 30000, 55},
		{"ten minutes", 600000, 55},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lengthScore(tt.durationMs); got != tt.want {
				t.Errorf("lengthScore(%d): got %d, want %d", tt.durationMs, got, tt.want)
			}
		})
	}
}

func TestKeyModeScore(t *testing.T) {
	electronic := genreBuckets[5]
	pop := genreBuckets[3]
	if electronic.name != "electronic" || pop.name != "pop" {
		t.Fatalf("bucket order changed")
	}

	tests := []struct {
		name    string
		key     string
		mode    string
		bucket  genreBucket
		matched bool
		want    int
	}{
		{"major with common key", "A", "major", electronic, true, 90},
		{"major with uncommon key", "B", "major", electronic, true, 86},
		{"minor in minor-tolerant genre", "A", "minor", electronic, true, 90},
		{"minor in major-leaning genre", "C", "minor", pop, true, 84},
		{"minor with no genre", "C", "minor", defaultBucket, false, 85},
		{"major with no genre", "C", "major", defaultBucket, false, 88},
		{"unknown mode", "C", "dorian", defaultBucket, false, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyModeScore(tt.key, tt.mode, tt.bucket, tt.matched); got != tt.want {
				t.Errorf("keyModeScore: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	meta := metaWith(97, "F#", "minor", "very high", "trap", "cloud rap")
	first := Score(meta, 172000)
	second := Score(meta, 172000)
	if first != second {
		t.Fatalf("same input produced different scores:\n%+v\n%+v", first, second)
	}
}

func TestScoreDisplayBoundsHold(t *testing.T) {
	// Sweep deliberately hostile inputs; display values must stay in range.
	inputs := []struct {
		meta       domain.TrackMetadata
		durationMs int
	}{
		{metaWith(0, "", "", ""), 0},
		{metaWith(-10, "H#", "neither", "extreme"), -500},
		{metaWith(1000, "C", "minor", "low", "noise"), 1},
		{metaWith(1, "C", "major", "very high", "orchestral"), 7200000},
		{metaWith(128, "A", "major", "high", "house"), 165000},
	}

	for _, in := range inputs {
		got := Score(in.meta, in.durationMs)
		if got.FinalScore < domain.ScoreFloor || got.FinalScore > domain.ScoreCeiling {
			t.Errorf("final score %d outside [%d,%d] for %+v", got.FinalScore, domain.ScoreFloor, domain.ScoreCeiling, in)
		}
		for _, item := range got.Breakdown {
			if item.DisplayScore < domain.ScoreFloor || item.DisplayScore > domain.ScoreCeiling {
				t.Errorf("%s display score %d outside [%d,%d]", item.Category, item.DisplayScore, domain.ScoreFloor, domain.ScoreCeiling)
			}
			if item.Value == "" || item.Explanation == "" {
				t.Errorf("%s missing value or explanation", item.Category)
			}
		}
	}
}

func TestScoreDefaultsEmptyMetadata(t *testing.T) {
	got := Score(domain.TrackMetadata{}, 0)

	if got.Breakdown[0].Value != "120 BPM" {
		t.Errorf("bpm default: got %q, want \"120 BPM\"", got.Breakdown[0].Value)
	}
	if got.Breakdown[1].Value != "Unknown Major" {
		t.Errorf("key/mode default: got %q, want \"Unknown Major\"", got.Breakdown[1].Value)
	}
	if got.Breakdown[2].Value != "medium intensity" {
		t.Errorf("intensity default: got %q, want \"medium intensity\"", got.Breakdown[2].Value)
	}
	if got.Breakdown[3].Value != "3:00" {
		t.Errorf("duration default: got %q, want \"3:00\"", got.Breakdown[3].Value)
	}
}
