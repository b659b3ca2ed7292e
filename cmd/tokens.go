package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/verbalang/verba/internal/diag"
	"github.com/verbalang/verba/internal/file"
)

// tokensCmd dumps the structured file tree without matching, useful when
// debugging indentation problems.
var tokensCmd = &cobra.Command{
	Use:   "tokens [files...]",
	Short: "Dump the structured section tree of script files",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println("error: Please provide file paths")
			os.Exit(1)
		}
		for _, path := range args {
			content, err := os.ReadFile(path)
			if err != nil {
				logger.Error("Failed to read file", zap.String("path", path), zap.Error(err))
				continue
			}
			log := diag.NewLogger()
			lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
			elements := file.Parse(path, lines, log)
			dumpElements(elements, 0)
			for _, e := range log.Entries() {
				fmt.Println(e)
			}
		}
	},
}

func dumpElements(elements []*file.Element, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, el := range elements {
		kind := "line"
		if el.Section {
			kind = "section"
		}
		fmt.Printf("%s%d: %s %q\n", indent, el.Line, kind, el.Content)
		dumpElements(el.Children, depth+1)
	}
}
