// Package family groups catalog rows that share a parsed base name and
// derives the season / episode / quality structure menus are built from.
package family

import (
	"context"
	"fmt"
	"sort"

	"urmovies-bot/internal/catalog"
	"urmovies-bot/internal/title"
)

// Family is the set of catalog rows whose parsed base equals Base,
// paired with their parses. Values live for a single request.
type Family struct {
	Base   string
	Rows   []catalog.Row
	Parsed []title.Parsed
}

// Pick is one quality button candidate: the label to render and the row
// that will be delivered when it is chosen.
type Pick struct {
	Label string
	Row   catalog.Row
}

// EpisodePick is one episode button candidate.
type EpisodePick struct {
	Episode int
	RowID   int64
}

// Filter narrows UniqueQualities to rows of one season or one episode.
// Nil fields match everything.
type Filter struct {
	Season  *int
	Episode *int
}

// Gather collects every catalog row whose parsed base equals base.
func Gather(ctx context.Context, cat catalog.Catalog, base string) (*Family, error) {
	all, err := cat.AllRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("gather family %q: %w", base, err)
	}
	f := &Family{Base: base}
	for _, r := range all {
		p := title.Parse(r.Title)
		if p.Base != base {
			continue
		}
		f.Rows = append(f.Rows, r)
		f.Parsed = append(f.Parsed, p)
	}
	return f, nil
}

// Seasons returns the distinct seasons present, ascending.
func (f *Family) Seasons() []int {
	seen := map[int]bool{}
	var out []int
	for _, p := range f.Parsed {
		if p.Season > 0 && !seen[p.Season] {
			seen[p.Season] = true
			out = append(out, p.Season)
		}
	}
	sort.Ints(out)
	return out
}

// Episodes returns the distinct episodes of a season, ascending. May be
// empty when the season only has season-level rows.
func (f *Family) Episodes(season int) []int {
	seen := map[int]bool{}
	var out []int
	for _, p := range f.Parsed {
		if p.Season == season && p.Episode > 0 && !seen[p.Episode] {
			seen[p.Episode] = true
			out = append(out, p.Episode)
		}
	}
	sort.Ints(out)
	return out
}

// EpisodePicks returns one row per episode of a season, ascending by
// episode. The first row seen for an episode wins.
func (f *Family) EpisodePicks(season int) []EpisodePick {
	rowFor := map[int]int64{}
	for i, p := range f.Parsed {
		if p.Season != season || p.Episode <= 0 {
			continue
		}
		if _, ok := rowFor[p.Episode]; !ok {
			rowFor[p.Episode] = f.Rows[i].ID
		}
	}
	out := make([]EpisodePick, 0, len(rowFor))
	for _, e := range f.Episodes(season) {
		out = append(out, EpisodePick{Episode: e, RowID: rowFor[e]})
	}
	return out
}

// UniqueQualities returns quality buttons for the rows selected by the
// filter, deduplicated on (quality, language) in first-seen order.
func (f *Family) UniqueQualities(filter Filter) []Pick {
	type key struct{ quality, language string }
	seen := map[key]bool{}
	var out []Pick
	for i, p := range f.Parsed {
		if filter.Season != nil && p.Season != *filter.Season {
			continue
		}
		if filter.Episode != nil && p.Episode != *filter.Episode {
			continue
		}
		k := key{p.Quality, p.Language}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, Pick{Label: QualityLabel(p), Row: f.Rows[i]})
	}
	return out
}

// QualityLabel renders a quality button label: the quality plus a short
// language tag for anything that isn't plain English.
func QualityLabel(p title.Parsed) string {
	label := p.Quality
	switch p.Language {
	case "", "English", "Unknown":
		return label
	}
	tag := p.Language
	if len(tag) > 3 {
		tag = tag[:3]
	}
	return label + " " + tag
}
