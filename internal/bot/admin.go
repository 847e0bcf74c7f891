package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"urmovies-bot/internal/catalog"
	"urmovies-bot/internal/tg"
)

const adminHelp = `/help

/add <title> | <artifact>
/addfile <movie_id> <quality> <artifact>
/alias <movie_id> <alias>
/del <movie_id>
/list [limit]`

// handleAdmin serves the catalog-editing commands. Only reachable from
// ADMIN_CHAT_ID; everything here replies in plain text.
func (b *Bot) handleAdmin(ctx context.Context, msg *tg.Message, text string) {
	if b.admin == nil {
		return
	}
	reply := func(s string) {
		_, _ = b.tr.SendMessage(ctx, tg.SendMessageRequest{ChatID: msg.Chat.ID, Text: s})
	}

	cmd, rest, _ := strings.Cut(text, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "/help":
		reply(adminHelp)

	case "/add":
		titlePart, artifactPart, ok := strings.Cut(rest, "|")
		titlePart = strings.TrimSpace(titlePart)
		artifactPart = strings.TrimSpace(artifactPart)
		if !ok || titlePart == "" || artifactPart == "" {
			reply("Usage: /add <title> | <artifact>")
			return
		}
		m := &catalog.Movie{Title: titlePart}
		if ClassifyArtifact(artifactPart).Kind == ArtifactStoredHandle {
			m.FileID = artifactPart
		} else {
			m.URL = artifactPart
		}
		if err := b.admin.AddMovie(ctx, m); err != nil {
			if errors.Is(err, catalog.ErrDuplicate) {
				reply("Title already exists")
				return
			}
			reply("Error: " + err.Error())
			return
		}
		reply(fmt.Sprintf("OK id=%d", m.ID))

	case "/addfile":
		parts := strings.Fields(rest)
		if len(parts) != 3 {
			reply("Usage: /addfile <movie_id> <quality> <artifact>")
			return
		}
		movieID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil || movieID <= 0 {
			reply("Invalid movie_id")
			return
		}
		f := &catalog.MovieFile{MovieID: movieID, Quality: parts[1]}
		if ClassifyArtifact(parts[2]).Kind == ArtifactStoredHandle {
			f.FileID = parts[2]
		} else {
			f.URL = parts[2]
		}
		if err := b.admin.AddMovieFile(ctx, f); err != nil {
			reply("Error: " + err.Error())
			return
		}
		reply("OK")

	case "/alias":
		parts := strings.SplitN(rest, " ", 2)
		if len(parts) != 2 {
			reply("Usage: /alias <movie_id> <alias>")
			return
		}
		movieID, err := strconv.ParseInt(parts[0], 10, 64)
		if err != nil || movieID <= 0 {
			reply("Invalid movie_id")
			return
		}
		if err := b.admin.AddAlias(ctx, movieID, strings.TrimSpace(parts[1])); err != nil {
			reply("Error: " + err.Error())
			return
		}
		reply("OK")

	case "/del":
		id, err := strconv.ParseInt(rest, 10, 64)
		if err != nil || id <= 0 {
			reply("Usage: /del <movie_id>")
			return
		}
		if err := b.admin.DeleteMovie(ctx, id); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				reply("Not found")
				return
			}
			reply("Error: " + err.Error())
			return
		}
		reply("OK")

	case "/list":
		limit := 20
		if rest != "" {
			if n, err := strconv.Atoi(rest); err == nil {
				limit = n
			}
		}
		movies, err := b.admin.ListRecent(ctx, limit)
		if err != nil {
			reply("Error: " + err.Error())
			return
		}
		if len(movies) == 0 {
			reply("Empty")
			return
		}
		var sb strings.Builder
		for _, m := range movies {
			fmt.Fprintf(&sb, "%d %s\n", m.ID, m.Title)
		}
		reply(strings.TrimSpace(sb.String()))
	}
}
