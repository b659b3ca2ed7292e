package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verbalang/verba/formatter"
	"github.com/verbalang/verba/script"
)

// checkCmd parses scripts and only prints the summary line; suited for CI,
// where the exit code is what matters.
var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Parse scripts and exit non-zero on errors",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		runner, err := script.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize script runner", zap.Error(err))
		}

		reports, err := script.ProcessFiles(ctx, logger, runner, args)
		if err != nil {
			logger.Fatal("Failed to process files", zap.Error(err))
		}

		fmt.Println(formatter.Summarize(reports))
		for _, r := range reports {
			if r.HasErrors() {
				os.Exit(1)
			}
		}
	},
}
