package bot

import (
	"fmt"
	"html"
	"strings"
)

const captionRule = "━━━━━━━━━━━━━━━━━━"

// caption renders the fixed HTML banner attached to every delivery.
func (b *Bot) caption(rowTitle string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>🎬 %s</b>\n", html.EscapeString(rowTitle))
	sb.WriteString(captionRule + "\n")
	sb.WriteString("Quality: High Definition\n")
	sb.WriteString("Audio: Hindi / English\n")
	sb.WriteString(captionRule + "\n")
	if b.opts.ChannelLink != "" || b.opts.GroupLink != "" {
		links := make([]string, 0, 2)
		if b.opts.ChannelLink != "" {
			links = append(links, fmt.Sprintf(`<a href="%s">Channel</a>`, b.opts.ChannelLink))
		}
		if b.opts.GroupLink != "" {
			links = append(links, fmt.Sprintf(`<a href="%s">Support Group</a>`, b.opts.GroupLink))
		}
		sb.WriteString(strings.Join(links, " | ") + "\n")
	}
	fmt.Fprintf(&sb, "<i>This file is deleted automatically after %d seconds. Save it somewhere safe.</i>", int(b.opts.AutoDelete.Seconds()))
	return sb.String()
}
