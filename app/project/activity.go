package project

import (
	"bytes"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

// ActivityParser extracts a project's last update time from its
// RSS/Atom activity feed.
type ActivityParser struct {
	gofeedParser *gofeed.Parser
}

func NewActivityParser() *ActivityParser {
	return &ActivityParser{
		gofeedParser: gofeed.NewParser(),
	}
}

// Run returns the timestamp of the newest dated entry in the feed.
// When no entry carries a date, the feed's own updated/published time
// is used; nil means the feed carries no usable timestamp at all.
func (p *ActivityParser) Run(data []byte) (*time.Time, error) {
	feed, err := p.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse activity feed: %w", err)
	}

	var newest *time.Time
	for _, item := range feed.Items {
		ts := item.PublishedParsed
		if item.UpdatedParsed != nil && (ts == nil || item.UpdatedParsed.After(*ts)) {
			ts = item.UpdatedParsed
		}
		if ts == nil {
			continue
		}
		if newest == nil || ts.After(*newest) {
			newest = ts
		}
	}

	if newest == nil {
		if feed.UpdatedParsed != nil {
			newest = feed.UpdatedParsed
		} else if feed.PublishedParsed != nil {
			newest = feed.PublishedParsed
		}
	}

	return newest, nil
}
