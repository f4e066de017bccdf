package scoring

import "testing"

func TestMatchGenre(t *testing.T) {
	tests := []struct {
		name        string
		tags        []string
		wantName    string
		wantMatched bool
	}{
		{"exact tag", []string{"rock"}, "rock", true},
		{"substring in tag", []string{"melodic house"}, "electronic", true},
		{"case folded and trimmed", []string{"  Hip Hop  "}, "hip-hop", true},
		{"table order breaks ties", []string{"indie rock"}, "rock", true},
		{"first matching tag wins", []string{"norwegian jazz", "dance pop"}, "pop", true},
		{"rnb ampersand", []string{"r&b"}, "rnb", true},
		{"no match", []string{"polka", "klezmer"}, "", false},
		{"empty tags", nil, "", false},
		{"blank tags ignored", []string{"", "   "}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bucket, matched := matchGenre(tt.tags)
			if matched != tt.wantMatched {
				t.Fatalf("matched: got %v, want %v", matched, tt.wantMatched)
			}
			if bucket.name != tt.wantName {
				t.Errorf("bucket: got %q, want %q", bucket.name, tt.wantName)
			}
		})
	}
}

func TestVibeTablesStayInRange(t *testing.T) {
	check := func(name string, table map[string]int) {
		for intensity, score := range table {
			if score < 68 || score > 97 {
				t.Errorf("%s/%s: score %d outside [68,97]", name, intensity, score)
			}
		}
	}
	for _, bucket := range genreBuckets {
		check(bucket.name, bucket.vibe)
	}
	check("default", defaultBucket.vibe)
}

func TestBpmRangesWellFormed(t *testing.T) {
	buckets := append([]genreBucket{defaultBucket}, genreBuckets...)
	for _, b := range buckets {
		r := b.bpmRange
		if !(r[0] < r[1] && r[1] < r[2] && r[2] < r[3]) {
			t.Errorf("%q: bpm range %v is not strictly ordered", b.name, r)
		}
	}
}
