package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/lzy117/accountint-app/internal/category"
	"github.com/lzy117/accountint-app/internal/cli"
	"github.com/lzy117/accountint-app/internal/model"
	"github.com/lzy117/accountint-app/internal/ocr"
	"github.com/lzy117/accountint-app/internal/record"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	var createRecords bool

	cmd := &cobra.Command{
		Use:   "scan <image-path>...",
		Short: "Extract expense details from receipt images",
		Long: `Read receipt images, pull out the merchant, date, and amount, and
categorize each merchant by keyword. With --create, an expense record is
saved for every readable image and the photo is attached to it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			extractor := ocr.NewHeaderExtractor()

			bar := progressbar.NewOptions(len(args),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("[cyan][bold]Scanning receipts...[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(os.Stderr)
				}),
			)

			var svc *record.Service
			if createRecords {
				store, err := initStorage(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
				svc = newRecordService(store)
			}

			type scanResult struct {
				path       string
				extraction *ocr.Extraction
				label      string
				recordID   string
				err        error
			}

			results := make([]scanResult, 0, len(args))
			for _, path := range args {
				res := scanResult{path: path}
				res.extraction, res.err = extractor.Extract(ctx, path)
				if res.err == nil {
					res.label = category.Categorize(res.extraction.Merchant)
					if createRecords {
						res.recordID, res.err = createScannedRecord(cmd, svc, path, res.extraction)
					}
				}
				results = append(results, res)
				if err := bar.Add(1); err != nil {
					slog.Warn("Failed to advance progress bar", "error", err)
				}
			}

			fmt.Println(cli.TitleStyle.Render(cli.CameraIcon + " Scan results"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer func() { _ = w.Flush() }()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Image"),
				cli.HeaderStyle.Render("Merchant"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("Status"))

			failures := 0
			for _, res := range results {
				if res.err != nil {
					failures++
					fmt.Fprintf(w, "%s\t-\t-\t-\t%s\n", res.path, cli.ErrorStyle.Render(res.err.Error()))
					continue
				}
				status := "scanned"
				if res.recordID != "" {
					status = "recorded " + res.recordID
				}
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n",
					res.path, res.extraction.Merchant, res.extraction.Amount, res.label, status)
			}

			if failures > 0 {
				return fmt.Errorf("%d of %d image(s) could not be scanned", failures, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&createRecords, "create", false, "save an expense record per scanned image")

	return cmd
}

// createScannedRecord persists an expense built from an extraction and
// attaches the source image as the record's photo.
func createScannedRecord(cmd *cobra.Command, svc *record.Service, path string, ext *ocr.Extraction) (string, error) {
	ctx := cmd.Context()

	recordType := string(model.TypeExpense)
	raw := record.RawInput{
		Type:   &recordType,
		Amount: record.AmountNumber(ext.Amount),
		Date:   record.DateString(ext.Date),
		Note:   &ext.Merchant,
	}

	rec, err := svc.Create(ctx, raw)
	if err != nil {
		return "", err
	}
	if _, err := svc.AddPhoto(ctx, rec.ID, path); err != nil {
		return "", err
	}
	return rec.ID, nil
}
