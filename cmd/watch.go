package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verbalang/verba/script"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dirs...]",
	Short: "Re-parse scripts whenever they change",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{"."}
		}

		runner, err := script.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize script runner", zap.Error(err))
		}

		if err := runner.StartWatching(args); err != nil {
			logger.Fatal("Failed to start watching", zap.Error(err))
		}
		fmt.Println("watching for script changes, press ctrl-c to stop")

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		if err := runner.StopWatching(); err != nil {
			logger.Error("Failed to stop watching", zap.Error(err))
		}
	},
}
