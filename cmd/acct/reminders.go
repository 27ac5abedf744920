package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/lzy117/accountint-app/internal/cli"
	"github.com/lzy117/accountint-app/internal/reminder"
	"github.com/spf13/cobra"
)

func remindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Manage bookkeeping reminders",
		Long:  `Create, list, complete, and delete reminders, optionally linked to a record.`,
	}

	cmd.AddCommand(addReminderCmd())
	cmd.AddCommand(listRemindersCmd())
	cmd.AddCommand(doneReminderCmd())
	cmd.AddCommand(deleteReminderCmd())

	return cmd
}

func addReminderCmd() *cobra.Command {
	var (
		at       string
		recordID string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			remindAt, err := parseReminderTime(at)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rem, err := reminder.NewService(store).Create(ctx, args[0], remindAt, recordID)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Reminder %q set for %s (id %s)",
				rem.Title, rem.RemindAt.Format("2006-01-02 15:04"), rem.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "when to remind, YYYY-MM-DD or \"YYYY-MM-DD HH:MM\"")
	cmd.Flags().StringVar(&recordID, "record", "", "record id this reminder relates to")

	return cmd
}

func listRemindersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending reminders",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			pending, err := reminder.NewService(store).Pending(ctx)
			if err != nil {
				return err
			}

			if len(pending) == 0 {
				fmt.Println(cli.InfoStyle.Render("No pending reminders."))
				return nil
			}

			fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s Pending reminders", cli.BellIcon)))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("When"),
				cli.HeaderStyle.Render("Title"),
				cli.HeaderStyle.Render("Record"))
			now := time.Now()
			for _, rem := range pending {
				when := rem.RemindAt.Format("2006-01-02 15:04")
				if rem.RemindAt.Before(now) {
					when = cli.WarningStyle.Render(when + " (overdue)")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rem.ID, when, rem.Title, rem.RelatedRecordID)
			}
			return nil
		},
	}
}

func doneReminderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <reminder-id>",
		Short: "Mark a reminder as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			done, err := reminder.NewService(store).Complete(ctx, args[0])
			if err != nil {
				return err
			}
			if !done {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("No pending reminder with id %s", args[0])))
				return nil
			}

			fmt.Println(cli.FormatSuccess("Reminder completed"))
			return nil
		},
	}
}

func deleteReminderCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <reminder-id>",
		Short: "Delete a reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			deleted, err := reminder.NewService(store).Delete(ctx, args[0])
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("No reminder with id %s", args[0])))
				return nil
			}

			fmt.Println(cli.FormatSuccess("Reminder deleted"))
			return nil
		},
	}
}

// parseReminderTime accepts a date or a date with minutes.
func parseReminderTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("--at is required")
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --at: %s, expected YYYY-MM-DD or \"YYYY-MM-DD HH:MM\"", value)
}
