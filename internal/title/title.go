// Package title normalizes raw catalog titles and extracts the base name,
// season, episode, quality and language from noisy free-form text.
package title

import (
	"regexp"
	"strings"
)

// Parsed is the structured form of a raw title. Season and Episode are 0
// when the title carries no marker for them.
type Parsed struct {
	Base     string
	Season   int
	Episode  int
	Quality  string
	Language string
}

// qualityMarkers is checked in order; the first marker found in the
// lowercased title wins. 2160p deliberately outranks 4k.
var qualityMarkers = []struct {
	marker string
	label  string
}{
	{"2160p", "4K"},
	{"4k", "4K"},
	{"1080p", "1080p"},
	{"720p", "720p"},
	{"480p", "480p"},
	{"cam", "CAM"},
}

var (
	// sXXeYY has no word boundary between the numbers, so the fused form
	// gets its own pattern.
	seasonEpisodeRe = regexp.MustCompile(`\bs(\d{1,2})[ ._-]?e(\d{1,3})\b`)
	seasonRe        = regexp.MustCompile(`\b(?:s|season)[ ._-]?(\d{1,2})\b`)
	episodeRe       = regexp.MustCompile(`\b(?:e|ep|episode)[ ._-]?(\d{1,3})\b`)
	baseSplitRe     = regexp.MustCompile(`\s(?:s\d{1,2}(?:e\d{1,3})?|season|2160p|1080p|720p|480p|cam)\b`)
	nonWordRe       = regexp.MustCompile(`[^a-z0-9\s]+`)
	punctRe         = regexp.MustCompile(`[._-]`)
)

// Normalize lowercases text, flattens every non-alphanumeric run to a
// single space and collapses whitespace. Idempotent.
func Normalize(text string) string {
	s := strings.ToLower(text)
	s = nonWordRe.ReplaceAllString(s, " ")
	return strings.Join(strings.Fields(s), " ")
}

// Parse extracts the structured fields from a raw title. Parsing never
// fails; missing fields keep their zero value and quality defaults to HD.
func Parse(raw string) Parsed {
	s := strings.ToLower(raw)

	p := Parsed{Quality: "HD", Language: "English"}

	for _, q := range qualityMarkers {
		if strings.Contains(s, q.marker) {
			p.Quality = q.label
			break
		}
	}

	if m := seasonEpisodeRe.FindStringSubmatch(s); m != nil {
		p.Season = atoi(m[1])
		p.Episode = atoi(m[2])
	} else {
		if m := seasonRe.FindStringSubmatch(s); m != nil {
			p.Season = atoi(m[1])
		}
		if m := episodeRe.FindStringSubmatch(s); m != nil {
			p.Episode = atoi(m[1])
		}
	}

	p.Base = parseBase(s)

	switch {
	case strings.Contains(s, "hindi"):
		p.Language = "Hindi"
	case strings.Contains(s, "dual"):
		p.Language = "Dual"
	}

	return p
}

// parseBase returns everything before the first season or quality marker,
// with dots, dashes and underscores flattened to spaces.
func parseBase(lowered string) string {
	s := punctRe.ReplaceAllString(lowered, " ")
	if loc := baseSplitRe.FindStringIndex(s); loc != nil {
		s = s[:loc[0]]
	}
	return strings.Join(strings.Fields(s), " ")
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}
