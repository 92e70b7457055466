package commands

import (
	"fmt"
	"path/filepath"

	"github.com/ai-with-abdullah/word-counter-plus-2-sub001/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force  bool   `help:"Overwrite existing configuration file"`
	Output string `short:"o" name:"output" help:"Output directory for generated config file"`
}

func (i *InitCmd) Run(g *Global, root *CLI) error {
	// If the user specified an output directory, place the config there as "siteindex.yaml".
	if i.Output != "" {
		return RunInit(g, filepath.Join(i.Output, "siteindex.yaml"), i.Force)
	}
	return RunInit(g, root.Config, i.Force)
}

func RunInit(g *Global, configPath string, force bool) error {
	if err := config.Init(configPath, force); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(g.Out, "Wrote configuration to %s\n", configPath)
	return nil
}
