package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/lzy117/accountint-app/internal/cli"
	"github.com/lzy117/accountint-app/internal/report"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate spending reports",
		Long:  `Summarize a month's finances or compare spending with the previous month.`,
	}

	cmd.AddCommand(monthlyReportCmd())
	cmd.AddCommand(compareReportCmd())

	return cmd
}

func monthlyReportCmd() *cobra.Command {
	var monthFlag string

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Monthly income, expense, and category breakdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			year, month, err := parseMonthFlag(monthFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rpt, err := report.NewGenerator(store).Monthly(ctx, year, month)
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s Report for %s %d", cli.ChartIcon, rpt.Month, rpt.Year)))
			fmt.Printf("  Income:  %s\n", cli.SuccessStyle.Render(fmt.Sprintf("%.2f", rpt.TotalIncome)))
			fmt.Printf("  Expense: %s\n", cli.ErrorStyle.Render(fmt.Sprintf("%.2f", rpt.TotalExpense)))
			netStyle := cli.SuccessStyle
			if rpt.Net < 0 {
				netStyle = cli.ErrorStyle
			}
			fmt.Printf("  Net:     %s\n\n", netStyle.Render(fmt.Sprintf("%.2f", rpt.Net)))

			if len(rpt.Breakdown) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses this month."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Total"),
				cli.HeaderStyle.Render("Share"))
			for _, share := range rpt.Breakdown {
				fmt.Fprintf(w, "%s\t%.2f\t%.1f%%\n", share.Category, share.Total, share.Share*100)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "month to report on, YYYY-MM (default: current month)")

	return cmd
}

func compareReportCmd() *cobra.Command {
	var monthFlag string

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a month's spending with the previous month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			year, month, err := parseMonthFlag(monthFlag)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rpt, err := report.NewGenerator(store).Comparison(ctx, year, month)
			if err != nil {
				return err
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s Spending changes for %s %d", cli.ChartIcon, rpt.Month, rpt.Year)))

			if len(rpt.Changes) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses in either month."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Current"),
				cli.HeaderStyle.Render("Previous"),
				cli.HeaderStyle.Render("Change"),
				cli.HeaderStyle.Render("Percent"))
			for _, change := range rpt.Changes {
				percent := "new"
				if change.Percent != nil {
					percent = fmt.Sprintf("%+.1f%%", *change.Percent)
				}
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%+.2f\t%s\n",
					change.Category, change.Current, change.Previous, change.Change, percent)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "month to compare, YYYY-MM (default: current month)")

	return cmd
}

// parseMonthFlag parses an optional YYYY-MM flag, defaulting to the
// current month.
func parseMonthFlag(value string) (int, time.Month, error) {
	if value == "" {
		now := time.Now()
		return now.Year(), now.Month(), nil
	}
	parsed, err := time.Parse("2006-01", value)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid --month: %s, expected YYYY-MM", value)
	}
	return parsed.Year(), parsed.Month(), nil
}
