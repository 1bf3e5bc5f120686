package linegrep

import (
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/linegrep-cli/internal/adapters/storage"
	"github.com/linegrep-cli/internal/app"
	"github.com/linegrep-cli/internal/core/ports"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// Search command implementation
var searchCmd = &cobra.Command{
	Use:   "search QUERY SOURCE",
	Short: "Print lines of SOURCE containing QUERY",
	Long: `Print every line of SOURCE that contains QUERY, in order.
An empty QUERY matches every line. Set CASE_INSENSITIVE to ignore case.`,
	RunE: runSearch,
}

// runSearch runs a single search and writes the results
func runSearch(cmd *cobra.Command, args []string) error {
	ctx, cancel := signalContext()
	defer cancel()

	cfg, err := resolveConfig(args)
	if err != nil {
		return err
	}

	src, err := newSource(cfg.Source)
	if err != nil {
		return err
	}

	appConfig := app.Config{
		Config:   cfg,
		RunID:    app.NewRunID(),
		MaxCount: viper.GetInt("max-count"),
	}

	writer, err := newWriter(cmd.OutOrStdout(), appConfig)
	if err != nil {
		return err
	}

	grep := app.NewGrep(appConfig, app.Dependencies{
		Source: src,
		Writer: writer,
		Log:    log,
	})

	_, err = grep.Run(ctx)
	return err
}

// newWriter picks the result writer named by --output
func newWriter(out io.Writer, cfg app.Config) (ports.ResultWriter, error) {
	switch viper.GetString("output") {
	case outputJSON:
		report := storage.JSONReport{
			RunID:    cfg.RunID,
			Config:   cfg.Config,
			MaxCount: cfg.MaxCount,
		}
		if file := viper.GetString("output-file"); file != "" && file != "-" {
			return storage.NewJSONWriter(file, report)
		}
		return storage.NewJSONStreamWriter(out, report), nil
	default:
		return storage.NewTextWriter(out, viper.GetBool("line-number")), nil
	}
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().BoolP("line-number", "n", false, "Prefix each line with its line number")
	searchCmd.Flags().IntP("max-count", "m", 0, "Stop after this many matching lines (0 means no limit)")
	searchCmd.Flags().StringP("output", "o", outputText, "Output format (text, json)")
	searchCmd.Flags().String("output-file", "", "File for json output (default stdout)")

	cobra.CheckErr(viper.BindPFlags(searchCmd.Flags()))
}
