// Package cmd contains commands for the application.
package cmd

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/exp/slog"
	"md2rss/app/feed"
	"md2rss/app/render"
)

// Convert is a command to convert a markdown document into an RSS feed.
type Convert struct {
	Title       string `long:"title" env:"TITLE" required:"true" description:"title of the RSS feed"`
	Description string `long:"description" env:"DESCRIPTION" required:"true" description:"description of the RSS feed"`
	Link        string `long:"link" env:"LINK" required:"true" description:"link to the RSS feed"`
	DateFormat  string `long:"date-format" env:"DATE_FORMAT" default:"2006-01-02" description:"date layout used in the markdown file, in Go reference time format"`

	Args struct {
		Input  string `positional-arg-name:"INPUT" description:"path to the input markdown file"`
		Output string `positional-arg-name:"OUTPUT" description:"path to the output RSS file"`
	} `positional-args:"yes" required:"yes"`
}

// Execute runs the command.
func (c Convert) Execute(_ []string) error {
	lg := slog.Default()
	ctx := context.Background()

	src, err := os.ReadFile(c.Args.Input)
	if err != nil {
		return fmt.Errorf("read markdown file %s: %w", c.Args.Input, err)
	}

	renderedHTML, err := render.NewRenderer().Render(src)
	if err != nil {
		return fmt.Errorf("render %s: %w", c.Args.Input, err)
	}

	extractor := feed.NewExtractor(lg.With(slog.String("prefix", "extractor")))
	articles, err := extractor.Extract(ctx, renderedHTML, c.DateFormat)
	if err != nil {
		return fmt.Errorf("extract articles: %w", err)
	}

	serializer := feed.NewSerializer(lg.With(slog.String("prefix", "serializer")))
	doc, err := serializer.Serialize(ctx, feed.Metadata{
		Title:       c.Title,
		Description: c.Description,
		Link:        c.Link,
	}, articles)
	if err != nil {
		return fmt.Errorf("serialize feed: %w", err)
	}

	if err := os.WriteFile(c.Args.Output, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write feed to %s: %w", c.Args.Output, err)
	}

	lg.Info("feed written",
		slog.String("output", c.Args.Output),
		slog.Int("articles", len(articles)))

	fmt.Printf("RSS feed generated successfully, check %s\n", c.Args.Output)

	return nil
}
