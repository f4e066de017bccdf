package grok

import (
	"fmt"
	"math"
	"strings"

	"github.com/atwell-labs/syncscore/internal/core/domain"
)

// buildPrompt frames the track for a supervisor persona. The instructions
// push educational, position-the-track feedback rather than "change your
// song" advice, and demand bare JSON with the four category keys.
func buildPrompt(track domain.Track, meta domain.TrackMetadata, matchedGenre string) string {
	bpm := int(math.Round(meta.Music.BPM))
	if bpm <= 0 {
		bpm = 120
	}
	durationMs := track.DurationMs
	if durationMs <= 0 {
		durationMs = domain.DefaultDurationMs
	}
	length := fmt.Sprintf("%d:%02d", durationMs/60000, durationMs%60000/1000)

	genreContext := "Genre: could not be identified from tags"
	if matchedGenre != "" {
		genreContext = fmt.Sprintf("Genre: %s (identified from tags: %s)", matchedGenre, strings.Join(firstN(meta.Genres, 3), ", "))
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are a music supervisor with 15+ years placing songs in TV, film, ads, and trailers. Your role is to EDUCATE artists about sync licensing, NOT to tell them to change their music.

Song: %q by %s

TRACK DATA:
- BPM: %d
- Key: %s %s
- Perceived Intensity: %s
- Length: %s
- %s

YOUR MISSION: Help the artist understand how THIS track, as it exists, fits the sync world. Never suggest changing the key, the mode, or the fundamental character of the song; frame improvements as positioning, marketing, or additional versions (radio edit, extended, instrumental).

SCENE MATCHING BY INTENSITY:
- LOW (dialogue-safe): underscore, voice-overs, reality TV, intimate scenes
- MEDIUM (versatile): emotional montages, narrative arcs, most placements
- HIGH (momentum): sports highlights, action sequences, upbeat commercials
- VERY HIGH (maximum impact): trailer climaxes, epic moments

For each category provide:
- "short": one educational insight about this track's sync potential (8 words max)
- "why": what scenes and placements the track as-is works for (2 sentences, educational tone)
- "improve": how to market or position it, or additional edits to create (2 sentences, not prescriptive)

Return ONLY valid JSON. No explanations. No markdown. No extra text.

{
  "bpmRange": { "short": "...", "why": "...", "improve": "..." },
  "keyMode": { "short": "...", "why": "...", "improve": "..." },
  "vibe": { "short": "...", "why": "...", "improve": "..." },
  "length": { "short": "...", "why": "...", "improve": "..." }
}`,
		track.Title, track.Artist,
		bpm,
		meta.Music.Key, meta.Music.Mode,
		meta.Audio.PerceivedIntensity,
		length,
		genreContext,
	)

	return b.String()
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
