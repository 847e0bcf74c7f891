package bot

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"urmovies-bot/internal/catalog"
	"urmovies-bot/internal/tg"
)

func newAdminBot(t *testing.T) (*Bot, *fakeTransport, *catalog.Store) {
	t.Helper()
	store, err := catalog.OpenStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	tr := &fakeTransport{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	b := New(store, store, tr, Options{Username: "urmoviebot", AdminChatID: 900}, logger)
	return b, tr, store
}

func adminMessage(text string) tg.Update {
	return tg.Update{Message: &tg.Message{
		MessageID: 100,
		Chat:      tg.Chat{ID: 900, Type: "private"},
		Text:      text,
		From:      &tg.User{ID: 900},
	}}
}

func lastReply(t *testing.T, tr *fakeTransport) string {
	t.Helper()
	msgs := tr.sentMessages()
	require.NotEmpty(t, msgs)
	return msgs[len(msgs)-1].Text
}

func TestAdminHelp(t *testing.T) {
	b, tr, _ := newAdminBot(t)

	b.HandleUpdate(context.Background(), adminMessage("/help"))

	require.Contains(t, lastReply(t, tr), "/add <title> | <artifact>")
}

func TestAdminAdd(t *testing.T) {
	b, tr, store := newAdminBot(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, adminMessage("/add Matrix 1080p Hindi | BQACmatrix"))
	require.Equal(t, "OK id=1", lastReply(t, tr))

	row, err := store.Row(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "Matrix 1080p Hindi", row.Title)
	require.Equal(t, "BQACmatrix", row.Artifact)
}

func TestAdminAddURLArtifact(t *testing.T) {
	b, _, store := newAdminBot(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, adminMessage("/add Dune 2160p | https://t.me/mychan/42"))

	row, err := store.Row(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "https://t.me/mychan/42", row.Artifact)
}

func TestAdminAddDuplicate(t *testing.T) {
	b, tr, _ := newAdminBot(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, adminMessage("/add Dune | BQACdune"))
	b.HandleUpdate(ctx, adminMessage("/add Dune | BQACdune"))

	require.Equal(t, "Title already exists", lastReply(t, tr))
}

func TestAdminAddUsage(t *testing.T) {
	b, tr, _ := newAdminBot(t)

	b.HandleUpdate(context.Background(), adminMessage("/add no pipe here"))

	require.Equal(t, "Usage: /add <title> | <artifact>", lastReply(t, tr))
}

func TestAdminAddFile(t *testing.T) {
	b, tr, store := newAdminBot(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, adminMessage("/add Interstellar | BQACmain"))
	b.HandleUpdate(ctx, adminMessage("/addfile 1 720p CAAC720"))
	require.Equal(t, "OK", lastReply(t, tr))

	all, err := store.AllRows(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "Interstellar 720p", all[1].Title)
}

func TestAdminDel(t *testing.T) {
	b, tr, store := newAdminBot(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, adminMessage("/add Alien | BQACalien"))
	b.HandleUpdate(ctx, adminMessage("/del 1"))
	require.Equal(t, "OK", lastReply(t, tr))

	all, err := store.AllRows(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	b.HandleUpdate(ctx, adminMessage("/del 1"))
	require.Equal(t, "Not found", lastReply(t, tr))
}

func TestAdminList(t *testing.T) {
	b, tr, _ := newAdminBot(t)
	ctx := context.Background()

	b.HandleUpdate(ctx, adminMessage("/list"))
	require.Equal(t, "Empty", lastReply(t, tr))

	b.HandleUpdate(ctx, adminMessage("/add First | BQAC1"))
	b.HandleUpdate(ctx, adminMessage("/add Second | BQAC2"))
	b.HandleUpdate(ctx, adminMessage("/list"))
	require.Equal(t, "2 Second\n1 First", lastReply(t, tr))
}

func TestAdminDisabledWithoutStore(t *testing.T) {
	b, tr := newTestBot(nil, Options{AdminChatID: 900})

	b.HandleUpdate(context.Background(), adminMessage("/list"))

	require.Empty(t, tr.sentMessages())
}
