// Package logging enriches diagnostics with the article they refer to.
package logging

import (
	"context"

	"golang.org/x/exp/slog"
	"md2rss/pkg/logx"
)

type articleKey struct{}

// ContextWithArticle returns a new context carrying the title of the
// article being processed.
func ContextWithArticle(parent context.Context, title string) context.Context {
	return context.WithValue(parent, articleKey{}, title)
}

// ArticleFromContext returns the article title from context.
func ArticleFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(articleKey{}).(string)
	return v, ok
}

// Articles is a middleware that stamps the article title onto each record,
// so that per-article diagnostics identify the affected article.
func Articles(next logx.HandleFunc) logx.HandleFunc {
	return func(ctx context.Context, rec slog.Record) error {
		if title, ok := ArticleFromContext(ctx); ok {
			rec.AddAttrs(slog.String("article", title))
		}
		return next(ctx, rec)
	}
}
