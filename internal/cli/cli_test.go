package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaiso/glimpse/internal/api"
	"github.com/shaiso/glimpse/internal/apiclient"
	"github.com/shaiso/glimpse/internal/repo/memrepo"
)

type harness struct {
	client *apiclient.Client
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := api.NewHandler(api.Config{
		Repos:  memrepo.New().Repos(),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	srv := httptest.NewServer(h.Routes())
	t.Cleanup(srv.Close)

	return &harness{
		client: apiclient.New(srv.URL, 0),
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
}

// exec выполняет команду с чистыми буферами вывода.
func (h *harness) exec(t *testing.T, jsonMode bool, args ...string) error {
	t.Helper()
	h.stdout.Reset()
	h.stderr.Reset()

	clientFn := func() *apiclient.Client { return h.client }
	outputFn := func() *Output { return NewOutputTo(jsonMode, h.stdout, h.stderr) }

	root := &cobra.Command{Use: "glimpse", SilenceUsage: true, SilenceErrors: true}
	root.AddCommand(
		NewMovieCmd(clientFn, outputFn),
		NewCategoryCmd(clientFn, outputFn),
		NewGenreCmd(clientFn, outputFn),
		NewLinksCmd(clientFn, outputFn),
	)
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	return root.ExecuteContext(context.Background())
}

func TestMovieCommands(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.exec(t, true, "movie", "create", "--title", "Alien", "--rating", "8.5", "--language", "en"))
	assert.Contains(t, h.stderr.String(), "Movie created:")

	var created apiclient.Movie
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &created))
	assert.Equal(t, "Alien", created.Title)

	require.NoError(t, h.exec(t, false, "movie", "list"))
	out := h.stdout.String()
	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Alien")
	assert.Contains(t, out, "8.5")

	require.NoError(t, h.exec(t, false, "movie", "update", created.ID, "--title", "Alien (1979)"))
	assert.Contains(t, h.stdout.String(), "Alien (1979)")

	require.NoError(t, h.exec(t, false, "movie", "show", created.ID))
	assert.Contains(t, h.stdout.String(), "Language")

	require.NoError(t, h.exec(t, false, "movie", "delete", created.ID))
	assert.Contains(t, h.stderr.String(), "Movie deleted")

	err := h.exec(t, false, "movie", "show", created.ID)
	assert.True(t, apiclient.IsNotFound(err))

	require.NoError(t, h.exec(t, false, "movie", "restore", created.ID))
	assert.Contains(t, h.stderr.String(), "Movie restored")
}

func TestMovieCreate_RequiresTitle(t *testing.T) {
	h := newHarness(t)

	err := h.exec(t, false, "movie", "create")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title")
}

func TestCategoryAndLinkCommands(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.exec(t, true, "movie", "create", "--title", "Heat"))
	var movie apiclient.Movie
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &movie))

	require.NoError(t, h.exec(t, true, "category", "create", "--name", "Trending", "--type", "list"))
	var category apiclient.Category
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &category))

	require.NoError(t, h.exec(t, false, "category", "link", category.ID, movie.ID))
	assert.Contains(t, h.stderr.String(), "Linked 1 movie(s)")

	require.NoError(t, h.exec(t, false, "category", "movies", category.ID))
	assert.Contains(t, h.stdout.String(), "Heat")

	require.NoError(t, h.exec(t, false, "category", "list", "--type", "list"))
	assert.Contains(t, h.stdout.String(), "Trending")

	require.NoError(t, h.exec(t, false, "link", "categories"))
	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[2], "Trending")
}

func TestGenreCommands(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.exec(t, true, "genre", "create", "--name", "Crime"))
	var genre apiclient.Genre
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &genre))

	require.NoError(t, h.exec(t, false, "genre", "rename", genre.ID, "Heist"))
	assert.Contains(t, h.stdout.String(), "Heist")

	require.NoError(t, h.exec(t, true, "genre", "list"))
	var genres []apiclient.Genre
	require.NoError(t, json.Unmarshal(h.stdout.Bytes(), &genres))
	require.Len(t, genres, 1)
	assert.Equal(t, "Heist", genres[0].Name)

	require.NoError(t, h.exec(t, false, "genre", "movies", genre.ID))
	assert.Contains(t, h.stdout.String(), "TITLE")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
	assert.Equal(t, "фи…", truncate("фильм", 3))
}
