package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lzy117/accountint-app/internal/cli"
	"github.com/spf13/cobra"
)

func auditCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent record creation attempts",
		Long: `List the creation audit trail, newest first, including attempts that
were rejected by validation or failed to persist.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.GetAuditLog(ctx, limit)
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println(cli.InfoStyle.Render("No creation attempts recorded."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("When"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Outcome"),
				cli.HeaderStyle.Render("Record"))

			for _, entry := range entries {
				outcome := entry.Outcome
				if outcome != "created" {
					outcome = cli.WarningStyle.Render(outcome)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					entry.AttemptedAt.Format("2006-01-02 15:04:05"),
					entry.RawType,
					entry.RawAmount,
					entry.RawDate,
					outcome,
					entry.RecordID)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries")

	return cmd
}
