package sources

import (
	"context"
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/spigell/grant-matcher/internal/grants"
)

const defaultFeedRegion = "Global"

// FeedConfig describes a local RSS or Atom file listing funding calls. Feeds rarely carry
// region, amount or deadline data, so those come from the config and apply to every item.
type FeedConfig struct {
	Path       string `mapstructure:"path"`
	Region     string `mapstructure:"region"`
	Deadline   string `mapstructure:"deadline"`
	AmountLow  string `mapstructure:"amount-low"`
	AmountHigh string `mapstructure:"amount-high"`
}

// FeedSource reads opportunities from a feed file on disk. It never touches the network.
type FeedSource struct {
	name   string
	config FeedConfig
	policy *bluemonday.Policy
}

func NewFeed(name string, config FeedConfig) *FeedSource {
	if strings.TrimSpace(config.Region) == "" {
		config.Region = defaultFeedRegion
	}
	return &FeedSource{
		name:   name,
		config: config,
		policy: bluemonday.StrictPolicy(),
	}
}

func (s *FeedSource) Name() string { return s.name }

func (s *FeedSource) Fetch(ctx context.Context) ([]*grants.Opportunity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(s.config.Path)
	if err != nil {
		return nil, fmt.Errorf("opening feed: %w", err)
	}
	defer file.Close()

	feed, err := gofeed.NewParser().Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing feed %q: %w", s.config.Path, err)
	}

	funder := strings.TrimSpace(feed.Title)
	opps := make([]*grants.Opportunity, 0, len(feed.Items))
	for i, item := range feed.Items {
		itemFunder := funder
		if item.Author != nil && strings.TrimSpace(item.Author.Name) != "" {
			itemFunder = strings.TrimSpace(item.Author.Name)
		}

		description := item.Description
		if strings.TrimSpace(description) == "" {
			description = item.Content
		}

		opp, err := grants.NewOpportunity(grants.Opportunity{
			ID:          s.itemID(i, item),
			Name:        strings.TrimSpace(item.Title),
			Funder:      itemFunder,
			Description: s.plainText(description),
			Themes:      trimAll(item.Categories),
			Region:      s.config.Region,
			Amount:      grants.AmountRange{Low: s.config.AmountLow, High: s.config.AmountHigh},
			Deadline:    s.config.Deadline,
			URL:         strings.TrimSpace(item.Link),
		})
		if err != nil {
			return nil, fmt.Errorf("feed item %d: %w", i, err)
		}
		opps = append(opps, opp)
	}

	return opps, nil
}

// itemID derives a stable id from the item GUID, falling back to the link and then the
// position in the feed.
func (s *FeedSource) itemID(idx int, item *gofeed.Item) string {
	for _, candidate := range []string{item.GUID, item.Link} {
		if slug := slugify(candidate); slug != "" {
			return s.name + "-" + slug
		}
	}
	return fmt.Sprintf("%s-%d", s.name, idx+1)
}

// plainText strips markup and collapses whitespace.
func (s *FeedSource) plainText(raw string) string {
	text := html.UnescapeString(s.policy.Sanitize(raw))
	return strings.Join(strings.Fields(text), " ")
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")

	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
