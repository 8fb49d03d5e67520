package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/datacleaner/internal/output"
	"github.com/jmylchreest/datacleaner/pkg/cleaner"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file.csv>...",
	Short: "Summarize CSV files without cleaning them",
	Long: `Load each file and print its shape, missing-value count, column types
and first rows. Nothing is written.

Examples:
  datacleaner summarize data.csv
  datacleaner summarize a.csv b.csv --format jsonl`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	flags := summarizeCmd.Flags()
	flags.String("format", string(output.FormatText), "summary format: text, json, jsonl, yaml")
	flags.Int("head", cleaner.DefaultHeadRows, "rows shown in the summary head")
	flags.String("schema", "", "column schema file (JSON or YAML) fixing column types")
	flags.String("delimiter", ",", "field delimiter")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	// --format wins; otherwise fall back to summary_format from config or env.
	formatStr := viper.GetString("summary_format")
	if cmd.Flags().Changed("format") || formatStr == "" {
		formatStr, _ = cmd.Flags().GetString("format")
	}
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	loadOpts, _, err := inputOptions(cmd)
	if err != nil {
		return err
	}
	// Same precedence for --head and head_rows.
	head := viper.GetInt("head_rows")
	if cmd.Flags().Changed("head") || !viper.IsSet("head_rows") {
		head, _ = cmd.Flags().GetInt("head")
	}

	summaries := make([]any, 0, len(args))
	for _, path := range args {
		dc, err := cleaner.New(path, cleaner.WithLoadOptions(loadOpts...), cleaner.WithHeadRows(head))
		if err != nil {
			return err
		}
		summaries = append(summaries, dc.Summary())
	}
	return writeSummaries(cmd, format, summaries...)
}
