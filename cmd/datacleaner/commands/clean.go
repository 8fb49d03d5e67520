package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/datacleaner/internal/logger"
	"github.com/jmylchreest/datacleaner/internal/output"
	"github.com/jmylchreest/datacleaner/pkg/cleaner"
	"github.com/jmylchreest/datacleaner/pkg/fill"
	"github.com/jmylchreest/datacleaner/pkg/frame"
	"github.com/jmylchreest/datacleaner/pkg/schema"
)

// cleanReport is the summary of one clean run.
type cleanReport struct {
	Input  string          `json:"input" yaml:"input"`
	Output string          `json:"output" yaml:"output"`
	Before cleaner.Summary `json:"before" yaml:"before"`
	After  cleaner.Summary `json:"after" yaml:"after"`
}

func (r cleanReport) String() string {
	return r.Before.String() + "\n" + r.After.String() + "\nSaved to: " + r.Output + "\n"
}

var cleanCmd = &cobra.Command{
	Use:   "clean <input.csv>",
	Short: "Clean a CSV file",
	Long: `Clean a CSV file and write the result next to it.

Cleaning runs these steps in order:
  1. drop rows where every value is missing
  2. drop columns whose missing fraction exceeds --nan-col-thresh
  3. drop rows with --drop-thresh or more missing values
  4. fill the remaining gaps with each --fill method in turn
  5. drop duplicate rows, keeping the first

Fill methods: ` + strings.Join(fill.Available(), ", ") + `.
Use constant:<value> to fill with a fixed value.

Examples:
  datacleaner clean data.csv
  datacleaner clean data.csv -o clean.csv --fill median --fill constant:0
  datacleaner clean data.csv --schema columns.yaml --encode --scale`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	flags := cleanCmd.Flags()

	// Output settings
	flags.StringP("output", "o", "", "output file (default: <input>_cleaned.csv)")
	flags.String("summary-format", string(output.FormatText), "summary format: text, json, jsonl, yaml")
	flags.Bool("no-summary", false, "do not print summaries")
	flags.Int("head", cleaner.DefaultHeadRows, "rows shown in the summary head")

	// Cleaning settings
	flags.Int("drop-thresh", cleaner.DefaultDropThresh, "drop rows with at least this many missing values")
	flags.Float64("nan-col-thresh", cleaner.DefaultNanColThresh, "drop columns whose missing fraction exceeds this")
	flags.StringSlice("fill", fill.DefaultMethods, "fill method, applied in order (can be repeated)")
	flags.Bool("encode", false, "label-encode string columns")
	flags.Bool("scale", false, "standard-scale numeric columns")

	// Input settings
	flags.String("schema", "", "column schema file (JSON or YAML) fixing column types")
	flags.String("delimiter", ",", "field delimiter")

	// Bind to viper
	_ = viper.BindPFlag("drop_thresh", flags.Lookup("drop-thresh"))
	_ = viper.BindPFlag("nan_col_thresh", flags.Lookup("nan-col-thresh"))
	_ = viper.BindPFlag("fill_methods", flags.Lookup("fill"))
	_ = viper.BindPFlag("head_rows", flags.Lookup("head"))
	_ = viper.BindPFlag("summary_format", flags.Lookup("summary-format"))
}

func runClean(cmd *cobra.Command, args []string) error {
	input := args[0]
	flags := cmd.Flags()

	cfg := cleaner.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	format, err := output.ParseFormat(viper.GetString("summary_format"))
	if err != nil {
		return err
	}

	loadOpts, cols, err := inputOptions(cmd)
	if err != nil {
		return err
	}
	cfg.LoadOptions = loadOpts

	dc, err := cleaner.New(input, cleaner.WithConfig(cfg))
	if err != nil {
		return err
	}
	if cols != nil {
		for _, e := range cols.Check(dc.Frame()) {
			logger.Warn("column does not match schema", "column", e.Field, "problem", e.Message)
		}
	}

	report := cleanReport{Input: input, Before: dc.Summary()}

	if err := dc.CleanData(); err != nil {
		return err
	}
	if encode, _ := flags.GetBool("encode"); encode {
		if err := dc.EncodeData(); err != nil {
			return err
		}
	}
	if scale, _ := flags.GetBool("scale"); scale {
		if err := dc.ScaleData(); err != nil {
			return err
		}
	}

	outPath, _ := flags.GetString("output")
	if outPath == "" {
		outPath = defaultOutputPath(input)
	}
	if err := dc.Save(outPath); err != nil {
		return err
	}
	if info, err := os.Stat(outPath); err == nil {
		logger.Debug("output written", "path", outPath, "size", humanize.Bytes(uint64(info.Size())))
	}

	if noSummary, _ := flags.GetBool("no-summary"); noSummary {
		return nil
	}
	report.Output = outPath
	report.After = dc.Summary()
	return writeSummaries(cmd, format, report)
}

// inputOptions builds load options from the delimiter and schema flags.
// The schema is nil when none was given.
func inputOptions(cmd *cobra.Command) ([]frame.LoadOption, *schema.Schema, error) {
	var opts []frame.LoadOption

	delim, _ := cmd.Flags().GetString("delimiter")
	r, size := utf8.DecodeRuneInString(delim)
	if size == 0 || size != len(delim) {
		return nil, nil, fmt.Errorf("delimiter must be a single character, got %q", delim)
	}
	if r != ',' {
		opts = append(opts, frame.WithDelimiter(r))
	}

	path, _ := cmd.Flags().GetString("schema")
	if path == "" {
		return opts, nil, nil
	}
	s, err := schema.FromFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid schema %s: %w", path, err)
	}
	logger.Debug("loaded column schema", "path", path, "columns", len(s.Columns))
	return append(opts, s.LoadOption()), &s, nil
}

// defaultOutputPath turns data.csv into data_cleaned.csv.
func defaultOutputPath(input string) string {
	ext := filepath.Ext(input)
	if ext == "" {
		ext = ".csv"
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + "_cleaned" + ext
}

func writeSummaries(cmd *cobra.Command, format output.Format, items ...any) error {
	writer, err := output.NewWriter(cmd.OutOrStdout(), format)
	if err != nil {
		return err
	}
	if err := writer.WriteAll(items); err != nil {
		return err
	}
	return writer.Close()
}
