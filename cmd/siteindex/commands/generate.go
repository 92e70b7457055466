package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/generate"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/logfields"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	NoHistory bool `name:"no-history" help:"Do not record the run in the history database"`
	NoEvents  bool `name:"no-events" help:"Do not publish the snapshot event"`
}

func (c *GenerateCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	rt, err := newRuntime(cfg, runtimeOptions{history: !c.NoHistory, events: !c.NoEvents})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := rt.Close(); cerr != nil {
			slog.Warn("Failed to release resources", logfields.Error(cerr))
		}
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	res, err := rt.runner().Run(ctx, generate.TriggerCLI)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "Generated %d slugs (%d routes, +%d/-%d/~%d) -> %s\n",
		res.Index.Len(), res.RouteCount, len(res.Added), len(res.Removed), len(res.Updated), cfg.SnapshotPath())
	for _, c := range res.Collisions {
		_, _ = fmt.Fprintf(g.Out, "  shadowed: %s (slug %q)\n", c.Path, c.Slug)
	}
	return nil
}
