package sources

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/grant-matcher/internal/grants"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Blue Foundation Calls</title>
  <link>https://example.org</link>
  <description>Open calls</description>
  <item>
    <title> Coastal Water Grants </title>
    <link>https://example.org/calls/coastal-water</link>
    <guid>call-001</guid>
    <description><![CDATA[<p>Supports <b>water</b> &amp;   sanitation</p><script>alert(1)</script>]]></description>
    <category>water</category>
    <category> sanitation </category>
  </item>
  <item>
    <title>Second Call</title>
    <link>https://example.org/calls/second</link>
    <description>Plain text</description>
  </item>
</channel>
</rss>
`

func writeFeed(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRegistryFetchDemo(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(NewDemo())

	for _, name := range []string{"demo", " DEMO ", "Demo"} {
		opps, err := r.Fetch(context.Background(), name)
		require.NoError(t, err)
		require.Len(t, opps, 3)
		assert.Equal(t, "grant-usaid-wash", opps[0].ID)
	}
}

func TestRegistryFetchReturnsCopies(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(NewDemo())

	first, err := r.Fetch(context.Background(), DemoName)
	require.NoError(t, err)
	first[0].Themes[0] = "changed"

	second, err := r.Fetch(context.Background(), DemoName)
	require.NoError(t, err)
	assert.Equal(t, "water", second[0].Themes[0])
}

func TestRegistryUnsupportedSource(t *testing.T) {
	r := NewRegistry(nil)
	r.Register(NewDemo())
	r.Register(NewFeed("calls", FeedConfig{Path: "unused.xml"}))

	opps, err := r.Fetch(context.Background(), "grants.gov")

	require.Error(t, err)
	assert.Nil(t, opps)
	assert.True(t, errors.Is(err, ErrUnsupportedSource))
	assert.Equal(t, "unsupported source 'grants.gov'. Available sources: calls, demo", err.Error())
}

func TestRegistryNames(t *testing.T) {
	r := NewRegistry(nil)
	assert.Empty(t, r.Names())

	r.Register(NewFeed("Zeta", FeedConfig{}))
	r.Register(NewDemo())
	assert.Equal(t, []string{"demo", "zeta"}, r.Names())
}

func TestDatasetSourceCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewDemo().Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFeedSource(t *testing.T) {
	src := NewFeed("blue", FeedConfig{
		Path:       writeFeed(t, sampleFeed),
		Region:     "West Africa",
		Deadline:   "2025-03-01",
		AmountLow:  "$5k",
		AmountHigh: "$25k",
	})

	opps, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, opps, 2)

	first := opps[0]
	assert.Equal(t, "blue-call-001", first.ID)
	assert.Equal(t, "Coastal Water Grants", first.Name)
	assert.Equal(t, "Blue Foundation Calls", first.Funder)
	assert.Equal(t, "Supports water & sanitation", first.Description)
	assert.Equal(t, []string{"water", "sanitation"}, first.Themes)
	assert.Equal(t, "West Africa", first.Region)
	assert.Equal(t, grants.AmountRange{Low: "$5k", High: "$25k"}, first.Amount)
	assert.Equal(t, "2025-03-01", first.Deadline)
	assert.Equal(t, "https://example.org/calls/coastal-water", first.URL)

	second := opps[1]
	assert.Equal(t, "blue-example-org-calls-second", second.ID)
	assert.Equal(t, "Plain text", second.Description)
	assert.Empty(t, second.Themes)
}

func TestFeedSourceDefaultsRegion(t *testing.T) {
	opps, err := NewFeed("blue", FeedConfig{Path: writeFeed(t, sampleFeed)}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Global", opps[0].Region)
}

func TestFeedSourceErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewFeed("x", FeedConfig{Path: filepath.Join(t.TempDir(), "none.xml")}).Fetch(context.Background())
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("not a feed", func(t *testing.T) {
		_, err := NewFeed("x", FeedConfig{Path: writeFeed(t, "just text")}).Fetch(context.Background())
		assert.Error(t, err)
	})

	t.Run("item without title", func(t *testing.T) {
		feed := `<rss version="2.0"><channel><title>Funder</title><item><link>https://example.org/a</link></item></channel></rss>`
		_, err := NewFeed("x", FeedConfig{Path: writeFeed(t, feed)}).Fetch(context.Background())
		assert.ErrorIs(t, err, grants.ErrInvalidRecord)
	})
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"call-001":                      "call-001",
		"https://example.org/calls/a?b": "example-org-calls-a-b",
		"  --Hello, World--  ":          "hello-world",
		"":                              "",
		"///":                           "",
	}
	for in, expect := range tests {
		assert.Equal(t, expect, slugify(in), "slugify(%q)", in)
	}
}
