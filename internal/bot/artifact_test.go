package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyArtifact(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Artifact
	}{
		{
			"stored document handle",
			"BQACAgUAAxkBAAIB",
			Artifact{Kind: ArtifactStoredHandle, Handle: "BQACAgUAAxkBAAIB"},
		},
		{
			"handle with surrounding whitespace",
			"  CAACxyz  ",
			Artifact{Kind: ArtifactStoredHandle, Handle: "CAACxyz"},
		},
		{
			"public chat link",
			"https://t.me/mychan/42",
			Artifact{Kind: ArtifactChatLink, FromChat: "@mychan", MessageID: 42, URL: "https://t.me/mychan/42"},
		},
		{
			"private chat link",
			"https://t.me/c/1234567890/17",
			Artifact{Kind: ArtifactChatLink, FromChat: int64(-1001234567890), MessageID: 17, URL: "https://t.me/c/1234567890/17"},
		},
		{
			"external url",
			"https://example.com/movie.mkv",
			Artifact{Kind: ArtifactExternalURL, URL: "https://example.com/movie.mkv"},
		},
		{
			"t.me profile link is not a message link",
			"https://t.me/mychan",
			Artifact{Kind: ArtifactExternalURL, URL: "https://t.me/mychan"},
		},
		{
			"malformed private link falls back to url",
			"https://t.me/c/1234567890",
			Artifact{Kind: ArtifactExternalURL, URL: "https://t.me/c/1234567890"},
		},
		{
			"empty",
			"",
			Artifact{Kind: ArtifactUnavailable},
		},
		{
			"whitespace only",
			"   ",
			Artifact{Kind: ArtifactUnavailable},
		},
		{
			"non-http scheme",
			"ftp://example.com/movie.mkv",
			Artifact{Kind: ArtifactUnavailable},
		},
		{
			"bare text",
			"not a handle or url",
			Artifact{Kind: ArtifactUnavailable},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyArtifact(tt.in))
		})
	}
}
