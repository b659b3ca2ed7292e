package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verbalang/verba/script"
)

// syntaxCmd lists every registered syntax element with the linear forms its
// patterns can take after expanding optionals and choices.
var syntaxCmd = &cobra.Command{
	Use:   "syntax",
	Short: "List the registered syntax catalogue",
	Run: func(cmd *cobra.Command, args []string) {
		runner, err := script.New(cfgFile)
		if err != nil {
			logger.Fatal("Failed to initialize script runner", zap.Error(err))
		}

		forms := runner.Registry().Forms()
		names := make([]string, 0, len(forms))
		for name := range forms {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			fmt.Println(name + ":")
			for _, form := range forms[name] {
				fmt.Println("  " + form)
			}
		}
	},
}
