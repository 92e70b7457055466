package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/history"
)

// HistoryCmd implements the 'history' command.
type HistoryCmd struct {
	Limit int  `short:"n" help:"Number of runs to show" default:"10"`
	JSON  bool `name:"json" help:"Print runs as JSON"`
}

func (c *HistoryCmd) Run(g *Global, root *CLI) error {
	if c.Limit <= 0 {
		return ferrors.ValidationError("--limit must be positive").Build()
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	path := cfg.HistoryPath()
	if path == "" {
		return ferrors.ConfigError("generation history is disabled (history.path is empty)").Build()
	}
	store, err := history.NewSQLiteStore(path)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	runs, err := store.Recent(context.Background(), c.Limit)
	if err != nil {
		return err
	}
	if c.JSON {
		enc := json.NewEncoder(g.Out)
		enc.SetIndent("", "  ")
		if runs == nil {
			runs = []history.Run{}
		}
		return enc.Encode(runs)
	}

	tw := tabwriter.NewWriter(g.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "STARTED\tTRIGGER\tSTATUS\tSLUGS\tSKIPPED\tDURATION\tERROR")
	for _, r := range runs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			r.StartedAt.Local().Format(time.DateTime), r.Trigger, r.Status,
			r.SlugCount, r.SkippedSources, r.Duration.Round(time.Millisecond), r.Error)
	}
	return tw.Flush()
}
