package linegrep

import (
	"github.com/spf13/cobra"

	"github.com/linegrep-cli/internal/adapters/source"
	"github.com/linegrep-cli/internal/adapters/ui"
	"github.com/linegrep-cli/internal/app"
	"github.com/linegrep-cli/internal/core/ports"
)

// Browse command implementation
var browseCmd = &cobra.Command{
	Use:   "browse QUERY SOURCE",
	Short: "Interactively search SOURCE",
	Long:  `Open an interactive view of SOURCE filtered by QUERY. The query and case mode can be changed while browsing.`,
	RunE:  runBrowse,
}

// runBrowse starts the interactive browser
func runBrowse(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}

	router, err := newSource(cfg.Source)
	if err != nil {
		return err
	}
	cached, err := source.NewCachedSource(router, source.DefaultCacheSize)
	if err != nil {
		return err
	}

	userInterface := ui.NewTUI(ports.SearchConfig{
		SearchString:  cfg.Query,
		CaseSensitive: cfg.CaseSensitive,
	}, cfg.Source)

	grep := app.NewGrep(app.Config{Config: cfg}, app.Dependencies{
		Source: cached,
		UI:     userInterface,
		Log:    log,
	})
	return grep.Browse(ctx)
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
