// Package feed contains the article extraction and RSS serialization core.
package feed

import "time"

// Article is a single feed entry extracted from one document block.
// Title is HTML-escaped at construction time, Body is sanitized HTML.
// A zero Published means the block carried no parseable date.
type Article struct {
	Title      string
	Body       string
	Published  time.Time
	Categories []string
	Author     string
}

// Metadata describes the feed itself.
type Metadata struct {
	Title       string
	Description string
	Link        string
}
