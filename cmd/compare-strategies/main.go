// Demo program that runs every segmentation strategy over the same texts
// and prints the statements side by side.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ppiankov/statementizer/internal/model"
	"github.com/ppiankov/statementizer/internal/segment"
)

func main() {
	fmt.Println("=== Segmentation Strategy Comparison ===")
	fmt.Println()

	texts := []string{
		"Limited edition drop! Only 50 pairs. Order now #sneakers #drop",
		"Dr. Smith said it was fine. I wasn't sure... Then again, who is?",
		"<p>Members only.</p><p>Early access starts <b>today</b>.</p>",
		"no punctuation at all just one long thought",
	}

	punkt, err := segment.NewPunktModel()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load sentence model: %v\n", err)
		os.Exit(1)
	}

	for _, text := range texts {
		fmt.Printf("Text: %s\n", text)
		fmt.Println(strings.Repeat("-", 60))

		for _, strategy := range model.Strategies() {
			seg, err := segment.New(strategy, segment.WithModel(punkt), segment.WithHTML(true))
			if err != nil {
				fmt.Printf("  %-12s error: %v\n", strategy, err)
				continue
			}

			statements := seg.Segment(text)
			fmt.Printf("  %-12s %d statements\n", strategy, len(statements))
			for i, s := range statements {
				fmt.Printf("     %d. %s\n", i+1, s)
			}
		}

		fmt.Println()
	}

	fmt.Println("=== Comparison Complete ===")
	fmt.Println("\nNote: HTML stripping is enabled for every strategy here.")
	fmt.Println("Tag extraction is always on for tag-aware and off for the others.")
}
