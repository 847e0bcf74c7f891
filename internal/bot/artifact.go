package bot

import (
	"net/url"
	"strconv"
	"strings"
)

// ArtifactKind tags what a catalog row's artifact string points at.
type ArtifactKind int

const (
	ArtifactUnavailable ArtifactKind = iota
	ArtifactStoredHandle
	ArtifactChatLink
	ArtifactExternalURL
)

// Artifact is the parsed form of a row's artifact reference. It is
// classified once; downstream code branches on Kind instead of
// re-inspecting the string.
type Artifact struct {
	Kind      ArtifactKind
	Handle    string // stored file handle
	FromChat  any    // int64 chat id or "@channelname"
	MessageID int    // message inside FromChat
	URL       string // external or fallback URL
}

// Telegram document file_ids start with one of these runs depending on
// the uploading client.
var storedHandlePrefixes = []string{"BQAC", "BAAC", "CAAC", "AQAC"}

// ClassifyArtifact decides the delivery strategy for an artifact string.
func ClassifyArtifact(s string) Artifact {
	s = strings.TrimSpace(s)
	if s == "" {
		return Artifact{Kind: ArtifactUnavailable}
	}

	for _, p := range storedHandlePrefixes {
		if strings.HasPrefix(s, p) {
			return Artifact{Kind: ArtifactStoredHandle, Handle: s}
		}
	}

	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return Artifact{Kind: ArtifactUnavailable}
	}

	if strings.Contains(u.Host, "t.me") {
		if a, ok := parseChatLink(u, s); ok {
			return a
		}
	}
	return Artifact{Kind: ArtifactExternalURL, URL: s}
}

// parseChatLink resolves a t.me message link. The /c/<internal>/<msg>
// form addresses a private channel by internal id (prefixed -100 on the
// Bot API); the /<name>/<msg> form addresses a public chat by username.
func parseChatLink(u *url.URL, raw string) (Artifact, bool) {
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if segments[0] == "c" {
		if len(segments) < 3 {
			return Artifact{}, false
		}
		chatID, err := strconv.ParseInt("-100"+segments[1], 10, 64)
		if err != nil {
			return Artifact{}, false
		}
		msgID, err := strconv.Atoi(segments[2])
		if err != nil {
			return Artifact{}, false
		}
		return Artifact{Kind: ArtifactChatLink, FromChat: chatID, MessageID: msgID, URL: raw}, true
	}
	if len(segments) < 2 {
		return Artifact{}, false
	}
	msgID, err := strconv.Atoi(segments[1])
	if err != nil {
		return Artifact{}, false
	}
	return Artifact{Kind: ArtifactChatLink, FromChat: "@" + segments[0], MessageID: msgID, URL: raw}, true
}
