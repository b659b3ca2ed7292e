package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verbalang/verba/formatter"
	"github.com/verbalang/verba/script"
)

var (
	parseJSONOutput bool
	outPath         string
)

var parseCmd = &cobra.Command{
	Use:   "parse [paths...]",
	Short: "Parse scripts and report diagnostics",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file or directory paths")
			os.Exit(1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		runner, err := script.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize script runner", zap.Error(err))
		}
		color.NoColor = !runner.Config().Colors

		reports, err := script.ProcessFiles(ctx, logger, runner, args)
		if err != nil {
			logger.Fatal("Failed to process files", zap.Error(err))
		}

		if parseJSONOutput {
			if err := writeJSON(reports, outPath); err != nil {
				logger.Fatal("Failed to write JSON output", zap.Error(err))
			}
		} else {
			printReports(reports)
		}

		for _, r := range reports {
			if r.HasErrors() {
				os.Exit(1)
			}
		}
	},
}

func init() {
	parseCmd.Flags().BoolVar(&parseJSONOutput, "json", false, "Output results in JSON format")
	parseCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (default stdout)")
}

func printReports(reports []*script.Report) {
	for _, report := range reports {
		if len(report.Entries) == 0 {
			continue
		}
		source, err := os.ReadFile(report.File)
		if err != nil {
			logger.Error("Failed to re-read source", zap.String("file", report.File), zap.Error(err))
			continue
		}
		fmt.Print(formatter.GenerateFormattedReport(report, source))
	}
	fmt.Println(formatter.Summarize(reports))
}

func writeJSON(reports []*script.Report, path string) error {
	d, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	if path == "" {
		fmt.Println(string(d))
		return nil
	}
	return os.WriteFile(path, append(d, '\n'), 0o644)
}
