package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warelog/warelog/internal/cli"
	"github.com/warelog/warelog/internal/engine"
	"github.com/warelog/warelog/internal/model"
	"github.com/warelog/warelog/internal/report"
)

func exportCmd() *cobra.Command {
	var (
		dir   string
		base  string
		start string
		end   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records to an xlsx workbook",
		Long: `Write the record set to an xlsx file, one sheet per record kind, with
a totals row per sheet. An optional date range narrows the export.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			records, err := a.storage.GetTransactions(ctx)
			if err != nil {
				return fmt.Errorf("failed to load records: %w", err)
			}

			if start != "" || end != "" {
				records = engine.Filter(records, model.FilterState{
					ActiveView: model.ViewBatch, // no tab narrowing
					Status:     model.StatusAll,
					StartDate:  start,
					EndDate:    end,
				})
			}

			path, err := report.Export(records, dir, base)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d records to %s", len(records), path)))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "output directory")
	cmd.Flags().StringVar(&base, "name", "warelog", "base filename (date suffix is added)")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD, inclusive)")
	cmd.Flags().StringVar(&end, "end", "", "end date (YYYY-MM-DD, inclusive)")

	return cmd
}
