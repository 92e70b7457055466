// Command siteindex builds and serves the site link and metadata index: the
// snapshot of content slugs, the sitemap, robots.txt and breadcrumb JSON-LD.
package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/cmd/siteindex/commands"
	ferrors "github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/foundation/errors"
	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("siteindex"),
		kong.Description("Site link and metadata index: snapshot, sitemap, robots.txt and breadcrumbs."),
		kong.UsageOnError(),
		kong.Bind(&cli),
		kong.Vars{"version": version.String()},
	)

	err := ctx.Run(commands.NewGlobal())
	ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
