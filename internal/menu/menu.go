// Package menu builds the inline navigation menus (season, episode,
// quality) and the callback tokens their buttons carry. Menus are an
// abstract []ButtonRow shape; the transport adapter renders them into
// platform markup.
package menu

import (
	"fmt"

	"urmovies-bot/internal/catalog"
	"urmovies-bot/internal/family"
	"urmovies-bot/internal/title"
)

// Button is one tappable cell of a menu.
type Button struct {
	Text  string
	Token string
}

// ButtonRow is one line of buttons.
type ButtonRow []Button

const (
	seasonsPerRow   = 3
	episodesPerRow  = 4
	qualitiesPerRow = 2
)

// SeasonMenu lists seasons three per row. Seasons must already be sorted
// ascending (family.Seasons guarantees it).
func SeasonMenu(seasons []int, anchorID int64) []ButtonRow {
	buttons := make([]Button, 0, len(seasons))
	for _, s := range seasons {
		buttons = append(buttons, Button{
			Text:  fmt.Sprintf("Season %d", s),
			Token: SeasonToken(s, anchorID),
		})
	}
	return withCancel(chunk(buttons, seasonsPerRow))
}

// EpisodeMenu lists episodes four per row.
func EpisodeMenu(picks []family.EpisodePick) []ButtonRow {
	buttons := make([]Button, 0, len(picks))
	for _, p := range picks {
		buttons = append(buttons, Button{
			Text:  fmt.Sprintf("Ep %02d", p.Episode),
			Token: EpisodeToken(p.RowID),
		})
	}
	return withCancel(chunk(buttons, episodesPerRow))
}

// QualityMenu lists quality variants two per row, in the dedup-insertion
// order produced by family.UniqueQualities.
func QualityMenu(picks []family.Pick) []ButtonRow {
	buttons := make([]Button, 0, len(picks))
	for _, p := range picks {
		buttons = append(buttons, Button{
			Text:  p.Label,
			Token: QualityToken(p.Row.ID),
		})
	}
	return withCancel(chunk(buttons, qualitiesPerRow))
}

// Dispatch picks the first menu for an anchor row: a season menu when the
// family has seasons, else a quality menu. A family with no usable
// quality rows falls back to a single button for the anchor itself.
func Dispatch(f *family.Family, anchor catalog.Row) []ButtonRow {
	if seasons := f.Seasons(); len(seasons) > 0 {
		return SeasonMenu(seasons, anchor.ID)
	}
	picks := f.UniqueQualities(family.Filter{})
	if len(picks) == 0 {
		p := title.Parse(anchor.Title)
		picks = []family.Pick{{Label: family.QualityLabel(p), Row: anchor}}
	}
	return QualityMenu(picks)
}

// chunk splits buttons into rows of at most perRow cells.
func chunk(buttons []Button, perRow int) []ButtonRow {
	var rows []ButtonRow
	row := ButtonRow{}
	for _, b := range buttons {
		row = append(row, b)
		if len(row) == perRow {
			rows = append(rows, row)
			row = ButtonRow{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}

// withCancel terminates every menu with the single-button cancel row.
func withCancel(rows []ButtonRow) []ButtonRow {
	return append(rows, ButtonRow{{Text: "Cancel", Token: TokenCancel}})
}
