package commands

import (
	"context"
	"log/slog"
	"strings"

	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/logfields"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/sitemap"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/snapshot"
)

// SitemapCmd implements the 'sitemap' command.
type SitemapCmd struct {
	Origin string `help:"Site origin, e.g. https://www.example.com (default: site.origin)"`
	Output string `short:"o" help:"Write the document to this file instead of stdout"`
}

func (c *SitemapCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	origin := strings.TrimRight(c.Origin, "/")
	if origin == "" {
		origin = strings.TrimRight(cfg.Site.Origin, "/")
	}
	if origin == "" {
		return ferrors.ValidationError("sitemap origin is required (--origin or site.origin)").Build()
	}

	rt, err := newRuntime(cfg, runtimeOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close() }()

	body, source, err := rt.emitter(sitemap.OriginResolver{Fallback: origin}).Render(context.Background(), origin)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "encode sitemap").Build()
	}
	slog.Info("Rendered sitemap", logfields.Origin(origin), logfields.Source(string(source)))

	if c.Output == "" {
		_, err = g.Out.Write(body)
		return err
	}
	return snapshot.WriteFileAtomic(c.Output, body)
}
