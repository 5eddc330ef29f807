package feed

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
	xhtml "golang.org/x/net/html"
	"md2rss/app/logging"
)

// ErrNoArticles is returned when the rendered content contains no article blocks.
var ErrNoArticles = errors.New("no articles found in the rendered content")

// DefaultDateFormat is the layout articles are expected to date themselves with.
const DefaultDateFormat = "2006-01-02"

var (
	dateExpr     = regexp.MustCompile(`\s*(\d{4}[-/]\d{2}[-/]\d{2})`)
	categoryExpr = regexp.MustCompile(`Categories:\s*(.*?)(?:\n|$)`)
	authorExpr   = regexp.MustCompile(`Author:\s*(.*?)(?:\n|$)`)
)

// Extractor segments rendered HTML into article blocks and pulls
// structured fields out of each block.
type Extractor struct {
	log    *slog.Logger
	policy *bluemonday.Policy
}

// NewExtractor creates new Extractor.
func NewExtractor(lg *slog.Logger) *Extractor {
	policy := bluemonday.NewPolicy()
	policy.AllowElements(
		"a", "abbr", "acronym", "b", "blockquote", "code", "em", "i", "li",
		"ol", "strong", "ul", "p", "br", "span", "div",
		"h1", "h2", "h3", "h4", "h5", "h6", "pre",
	)
	policy.AllowAttrs("href", "title").OnElements("a")
	policy.AllowAttrs("title").OnElements("abbr", "acronym")

	return &Extractor{log: lg, policy: policy}
}

// Extract segments the rendered HTML into blocks delimited by top-level
// headings and produces one article per block, in document order. Metadata
// lines (date, categories, author) are stripped from the block body; a
// missing or malformed field degrades that article only. Returns
// ErrNoArticles when the content has no top-level headings at all.
func (e *Extractor) Extract(ctx context.Context, renderedHTML, dateFormat string) ([]Article, error) {
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(renderedHTML))
	if err != nil {
		return nil, fmt.Errorf("parse rendered content: %w", err)
	}

	headings := doc.Find("h1")
	if headings.Length() == 0 {
		return nil, ErrNoArticles
	}

	articles := make([]Article, 0, headings.Length())
	headings.Each(func(i int, h *goquery.Selection) {
		title := strings.TrimSpace(h.Text())
		if title == "" {
			e.log.WarnCtx(ctx, "article block has an empty title", slog.Int("block", i+1))
		}
		bctx := logging.ContextWithArticle(ctx, title)

		body := blockBody(h)

		var published time.Time
		published, body = e.extractDate(bctx, body, dateFormat)

		var categories []string
		categories, body = extractCategories(body)

		var author string
		author, body = extractAuthor(body)

		articles = append(articles, Article{
			Title:      html.EscapeString(title),
			Body:       strings.TrimSpace(e.policy.Sanitize(body)),
			Published:  published,
			Categories: categories,
			Author:     author,
		})

		e.log.DebugCtx(bctx, "extracted article",
			slog.Bool("dated", !published.IsZero()),
			slog.Int("categories", len(categories)))
	})

	return articles, nil
}

// blockBody collects everything between the heading and the next top-level
// heading, text nodes included, so trailing content after the last heading
// is not lost.
func blockBody(h *goquery.Selection) string {
	sb := &strings.Builder{}
	for n := h.Nodes[0].NextSibling; n != nil; n = n.NextSibling {
		if n.Type == xhtml.ElementNode && n.Data == "h1" {
			break
		}
		buf := &bytes.Buffer{}
		if err := xhtml.Render(buf, n); err == nil {
			sb.Write(buf.Bytes())
		}
	}
	return sb.String()
}

// extractDate finds the first numeric date in the block body and parses it
// under the given layout. The matched substring is stripped from the body
// even when it does not parse, malformed dates must not leak into the feed.
func (e *Extractor) extractDate(ctx context.Context, body, layout string) (time.Time, string) {
	idx := dateExpr.FindStringSubmatchIndex(body)
	if idx == nil {
		e.log.WarnCtx(ctx, "no date found for article")
		return time.Time{}, body
	}

	raw := body[idx[2]:idx[3]]
	residual := body[:idx[0]] + body[idx[1]:]

	date, err := time.Parse(layout, raw)
	if err != nil {
		e.log.WarnCtx(ctx, "invalid date format for article",
			slog.String("date", raw), slog.String("expected", layout))
		return time.Time{}, residual
	}

	return date, residual
}

func extractCategories(body string) ([]string, string) {
	idx := categoryExpr.FindStringSubmatchIndex(body)
	if idx == nil {
		return nil, body
	}

	labels := lo.Map(strings.Split(body[idx[2]:idx[3]], ","),
		func(s string, _ int) string { return strings.TrimSpace(s) })

	return labels, body[:idx[0]] + body[idx[1]:]
}

func extractAuthor(body string) (string, string) {
	idx := authorExpr.FindStringSubmatchIndex(body)
	if idx == nil {
		return "", body
	}
	return strings.TrimSpace(body[idx[2]:idx[3]]), body[:idx[0]] + body[idx[1]:]
}
