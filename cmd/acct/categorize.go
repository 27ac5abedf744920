package main

import (
	"fmt"
	"strings"

	"github.com/lzy117/accountint-app/internal/category"
	"github.com/lzy117/accountint-app/internal/cli"
	"github.com/spf13/cobra"
)

func categorizeCmd() *cobra.Command {
	var showLabels bool

	cmd := &cobra.Command{
		Use:   "categorize [text...]",
		Short: "Categorize a description by keyword",
		Long: `Match a free-form description against the keyword table and print
the resulting category label. Unmatched text falls back to Other.`,
		RunE: func(_ *cobra.Command, args []string) error {
			if showLabels {
				for _, label := range category.Labels() {
					fmt.Println(label)
				}
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("provide text to categorize, or use --labels")
			}

			text := strings.Join(args, " ")
			label := category.Categorize(text)
			fmt.Printf("%s %s\n", cli.BoldStyle.Render(label), cli.SubtleStyle.Render("("+text+")"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showLabels, "labels", false, "print the known category labels in match order")

	return cmd
}
