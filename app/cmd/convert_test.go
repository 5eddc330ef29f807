package cmd

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"md2rss/app/feed"
)

//go:embed testdata/posts.md
var postsMD []byte

func TestConvert_Execute(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "posts.md")
	output := filepath.Join(dir, "feed.rss")
	require.NoError(t, os.WriteFile(input, postsMD, 0o644))

	cmd := Convert{
		Title:       "My Feed",
		Description: "Feed desc",
		Link:        "https://x.test",
		DateFormat:  "2006-01-02",
	}
	cmd.Args.Input = input
	cmd.Args.Output = output

	require.NoError(t, cmd.Execute(nil))

	bts, err := os.ReadFile(output)
	require.NoError(t, err)
	out := string(bts)

	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, `<rss version="2.0">`)
	assert.Contains(t, out, "<title>My Feed</title>")
	assert.Contains(t, out, "<link>https://x.test</link>")

	assert.Contains(t, out, "<title>Post One</title>")
	assert.Contains(t, out, "<pubDate>Mon, 15 Jan 2024 00:00:00 +0000</pubDate>")
	assert.Contains(t, out, "<category>tech</category>")
	assert.Contains(t, out, "<category>news</category>")
	assert.Contains(t, out, "<author>Jane Doe</author>")
	assert.Contains(t, out, "Hello world.")

	// metadata lines must not leak into item bodies
	assert.NotContains(t, out, "Categories:")
	assert.NotContains(t, out, "Author:")
	assert.NotContains(t, out, "2024-01-15")

	assert.Equal(t, 2, strings.Count(out, "<item>"))
}

func TestConvert_Execute_noArticles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "plain.md")
	output := filepath.Join(dir, "feed.rss")
	require.NoError(t, os.WriteFile(input, []byte("just some text, no headings\n"), 0o644))

	cmd := Convert{Title: "t", Description: "d", Link: "l"}
	cmd.Args.Input = input
	cmd.Args.Output = output

	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, feed.ErrNoArticles)

	// no partial feed on structural failure
	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestConvert_Execute_missingInput(t *testing.T) {
	dir := t.TempDir()

	cmd := Convert{Title: "t", Description: "d", Link: "l"}
	cmd.Args.Input = filepath.Join(dir, "nope.md")
	cmd.Args.Output = filepath.Join(dir, "feed.rss")

	assert.Error(t, cmd.Execute(nil))
}
