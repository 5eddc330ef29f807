package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"

	"golang.org/x/exp/slog"
	"md2rss/app/logging"
)

// pubDateFormat is the RFC-822-style timestamp RSS 2.0 requires.
const pubDateFormat = "Mon, 02 Jan 2006 15:04:05 +0000"

// Serializer renders articles and feed metadata into an RSS 2.0 document.
type Serializer struct {
	log *slog.Logger
	now func() time.Time
}

// NewSerializer creates new Serializer.
func NewSerializer(lg *slog.Logger) *Serializer {
	return &Serializer{log: lg, now: time.Now}
}

type rssDoc struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Description string    `xml:"description"`
	Link        string    `xml:"link"`
	Items       []rssItem `xml:"item"`
}

// element order within an item is part of the output contract
type rssItem struct {
	Title       rawText  `xml:"title"`
	Description string   `xml:"description"`
	PubDate     string   `xml:"pubDate"`
	Categories  []string `xml:"category"`
	Author      string   `xml:"author,omitempty"`
}

// rawText is emitted verbatim, for values escaped upstream.
type rawText struct {
	Text string `xml:",innerxml"`
}

// Serialize renders the feed as a complete XML document. Articles without a
// date get the current time as their publication date.
func (s *Serializer) Serialize(ctx context.Context, meta Metadata, articles []Article) (string, error) {
	channel := rssChannel{
		Title:       meta.Title,
		Description: meta.Description,
		Link:        meta.Link,
	}

	for _, a := range articles {
		actx := logging.ContextWithArticle(ctx, a.Title)

		published := a.Published
		if published.IsZero() {
			published = s.now()
			s.log.WarnCtx(actx, "using current date for article")
		}

		channel.Items = append(channel.Items, rssItem{
			Title:       rawText{Text: a.Title},
			Description: a.Body,
			PubDate:     published.Format(pubDateFormat),
			Categories:  a.Categories,
			Author:      a.Author,
		})
	}

	bts, err := xml.Marshal(rssDoc{Version: "2.0", Channel: channel})
	if err != nil {
		return "", fmt.Errorf("marshal feed: %w", err)
	}

	return xml.Header + string(bts), nil
}
