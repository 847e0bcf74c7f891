package menu

import (
	"fmt"
	"strconv"
	"strings"
)

// Callback tokens are the only state that survives a menu round-trip, so
// they stay tiny: Telegram caps callback data at 64 bytes.
const maxTokenLen = 64

// TokenCancel closes a menu without side effects.
const TokenCancel = "cancel"

// Action identifies what a decoded callback token asks for.
type Action int

const (
	ActionUnknown Action = iota
	ActionCancel
	ActionQuality // deliver row RowID
	ActionEpisode // show qualities of row RowID's episode
	ActionSeason  // show episodes of Season under anchor AnchorID
)

// Decoded is the parsed form of a callback token.
type Decoded struct {
	Action   Action
	RowID    int64
	Season   int
	AnchorID int64
}

// QualityToken binds a quality button to the row it delivers.
func QualityToken(rowID int64) string {
	return fmt.Sprintf("q_%d", rowID)
}

// EpisodeToken binds an episode button to one row of that episode.
func EpisodeToken(rowID int64) string {
	return fmt.Sprintf("ep_%d", rowID)
}

// SeasonToken binds a season button to the season number and the anchor
// row the family is rebuilt from.
func SeasonToken(season int, anchorID int64) string {
	return fmt.Sprintf("seas_%d_%d", season, anchorID)
}

// DecodeToken parses a callback token. Anything that doesn't match the
// grammar decodes to ActionUnknown and is ignored by the router.
func DecodeToken(s string) Decoded {
	if len(s) > maxTokenLen {
		return Decoded{}
	}
	if s == TokenCancel {
		return Decoded{Action: ActionCancel}
	}
	switch {
	case strings.HasPrefix(s, "q_"):
		if id, ok := parseID(s[len("q_"):]); ok {
			return Decoded{Action: ActionQuality, RowID: id}
		}
	case strings.HasPrefix(s, "ep_"):
		if id, ok := parseID(s[len("ep_"):]); ok {
			return Decoded{Action: ActionEpisode, RowID: id}
		}
	case strings.HasPrefix(s, "seas_"):
		rest := s[len("seas_"):]
		seasonStr, anchorStr, ok := strings.Cut(rest, "_")
		if !ok {
			break
		}
		season, sok := parseID(seasonStr)
		anchor, aok := parseID(anchorStr)
		if sok && aok {
			return Decoded{Action: ActionSeason, Season: int(season), AnchorID: anchor}
		}
	}
	return Decoded{}
}

func parseID(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
