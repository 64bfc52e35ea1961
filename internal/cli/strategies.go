package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/statementizer/internal/model"
)

var strategyDescriptions = map[model.Strategy]string{
	model.StrategyTagAware:   "sentence split, #tags collected into a trailing statement",
	model.StrategySentence:   "split after . ! ? when followed by whitespace and a capital letter",
	model.StrategyLinguistic: "pre-trained English sentence boundary model (Punkt)",
	model.StrategyWhole:      "the whole text as a single statement",
}

// strategiesCmd represents the strategies command
var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List segmentation strategies",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		aliases := model.StrategyAliases()

		for _, s := range model.Strategies() {
			fmt.Fprintf(out, "%-12s %s\n", s, strategyDescriptions[s])
			if a := aliases[s]; len(a) > 0 {
				fmt.Fprintf(out, "%-12s aliases: %s\n", "", strings.Join(a, ", "))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
