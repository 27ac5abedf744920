package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/lzy117/accountint-app/internal/cli"
	"github.com/lzy117/accountint-app/internal/common"
	"github.com/lzy117/accountint-app/internal/model"
	"github.com/lzy117/accountint-app/internal/service"
	"github.com/spf13/cobra"
)

func recordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Manage ledger records",
		Long:  `Add, list, tag, photograph, and delete income and expense records.`,
	}

	cmd.AddCommand(addRecordCmd())
	cmd.AddCommand(listRecordsCmd())
	cmd.AddCommand(deleteRecordCmd())
	cmd.AddCommand(tagRecordCmd())
	cmd.AddCommand(untagRecordCmd())
	cmd.AddCommand(photoRecordCmd())
	cmd.AddCommand(pruneRecordsCmd())

	return cmd
}

func addRecordCmd() *cobra.Command {
	var (
		recordType string
		amount     string
		date       string
		note       string
		tags       []string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new record",
		Long:  `Record an income or expense entry. Amount must be positive; date is YYYY-MM-DD.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := newRecordService(store)
			rec, err := svc.Create(ctx, rawInputFromFlags(recordType, amount, date, note))
			if err != nil {
				if common.IsStorageError(err) {
					return err
				}
				return common.NewUserError("invalid record", err)
			}

			for _, tag := range tags {
				if _, err := svc.AddTag(ctx, rec.ID, tag); err != nil {
					return err
				}
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s of %.2f on %s (id %s)",
				strings.ToLower(string(rec.Type)), rec.Amount, rec.Date.Format("2006-01-02"), rec.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&recordType, "type", "", "record type: Income or Expense")
	cmd.Flags().StringVar(&amount, "amount", "", "amount, e.g. 12.50")
	cmd.Flags().StringVar(&date, "date", "", "date in YYYY-MM-DD form")
	cmd.Flags().StringVar(&note, "note", "", "free-form note")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag to attach (repeatable)")

	return cmd
}

func listRecordsCmd() *cobra.Command {
	var (
		recordType string
		onDate     string
		from       string
		to         string
		tag        string
		noteSearch string
		minAmount  float64
		maxAmount  float64
		limit      int
		offset     int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List records",
		Long:  `Display records, optionally filtered by type, date, amount, tag, or note text.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			filter := service.RecordFilter{
				Tag:        tag,
				NoteSearch: noteSearch,
				Limit:      limit,
				Offset:     offset,
			}
			if recordType != "" {
				t := model.RecordType(recordType)
				if !t.Valid() {
					return fmt.Errorf("invalid record type: %s, must be Income or Expense", recordType)
				}
				filter.Type = &t
			}
			var err error
			if filter.Date, err = parseDateFlag(onDate, "date"); err != nil {
				return err
			}
			if filter.StartDate, err = parseDateFlag(from, "from"); err != nil {
				return err
			}
			if filter.EndDate, err = parseDateFlag(to, "to"); err != nil {
				return err
			}
			if cmd.Flags().Changed("min-amount") {
				filter.MinAmount = &minAmount
			}
			if cmd.Flags().Changed("max-amount") {
				filter.MaxAmount = &maxAmount
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			records, err := newRecordService(store).List(ctx, filter)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println(cli.InfoStyle.Render("No records found."))
				return nil
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Records (%d)", len(records))))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Tags"),
				cli.HeaderStyle.Render("Note"))

			for _, rec := range records {
				names := make([]string, 0, len(rec.Tags))
				for _, t := range rec.Tags {
					names = append(names, t.Name)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%s\n",
					rec.ID,
					rec.Date.Format("2006-01-02"),
					rec.Type,
					rec.Amount,
					strings.Join(names, ","),
					rec.Note)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&recordType, "type", "", "filter by type: Income or Expense")
	cmd.Flags().StringVar(&onDate, "date", "", "filter by exact date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&from, "from", "", "filter from date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "filter to date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&tag, "tag", "", "filter by tag name")
	cmd.Flags().StringVar(&noteSearch, "note", "", "filter by note substring")
	cmd.Flags().Float64Var(&minAmount, "min-amount", 0, "filter by minimum amount")
	cmd.Flags().Float64Var(&maxAmount, "max-amount", 0, "filter by maximum amount")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of records")
	cmd.Flags().IntVar(&offset, "offset", 0, "number of records to skip")

	return cmd
}

func deleteRecordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <record-id>",
		Short: "Delete a record",
		Long:  `Delete a record along with its tag links and receipt photo files.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			deleted, err := newRecordService(store).Delete(ctx, args[0])
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("No record with id %s", args[0])))
				return nil
			}

			fmt.Println(cli.FormatSuccess("Record deleted"))
			return nil
		},
	}
}

func tagRecordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <record-id> <tag-name>",
		Short: "Attach a tag to a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			tag, err := newRecordService(store).AddTag(ctx, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Tagged record with %q", tag.Name)))
			return nil
		},
	}
}

func untagRecordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "untag <record-id> <tag-name>",
		Short: "Detach a tag from a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			removed, err := newRecordService(store).RemoveTag(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if !removed {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("Tag %q was not attached", args[1])))
				return nil
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed tag %q", args[1])))
			return nil
		},
	}
}

func photoRecordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "photo <record-id> <image-path>",
		Short: "Attach a receipt photo to a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			photo, err := newRecordService(store).AddPhoto(ctx, args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Attached photo %s", photo.FilePath)))
			return nil
		},
	}
}

func pruneRecordsCmd() *cobra.Command {
	var before string

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete records older than a cutoff date",
		Long:  `Remove all records dated strictly before the cutoff, enforcing a retention period.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cutoff, err := parseDateFlag(before, "before")
			if err != nil {
				return err
			}
			if cutoff == nil {
				return fmt.Errorf("--before is required")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			count, err := newRecordService(store).Prune(ctx, *cutoff)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Pruned %d record(s)", count)))
			return nil
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "cutoff date in YYYY-MM-DD form")

	return cmd
}

// parseDateFlag parses an optional YYYY-MM-DD flag value.
func parseDateFlag(value, name string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %s, expected YYYY-MM-DD", name, value)
	}
	return &parsed, nil
}
