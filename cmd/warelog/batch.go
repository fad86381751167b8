package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/warelog/warelog/internal/cli"
	"github.com/warelog/warelog/internal/report"
)

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file.xlsx>",
		Short: "Submit a batch of records from an xlsx file",
		Long: `Read records from an xlsx file and submit them one at a time. The
header row names the columns (料件名稱 is required); the layout matches
what the export command writes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			records, err := report.ParseBatch(args[0])
			if err != nil {
				return err
			}

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			bar := cli.NewProgressBar(os.Stderr, len(records), "Submitting records...")
			outcomes, err := a.coord.BatchUpsert(ctx, records, func(done, total int) {
				_ = bar.Set(done)
			})
			if err != nil {
				return fmt.Errorf("batch submit failed: %w", err)
			}

			synced := 0
			for _, outcome := range outcomes {
				if outcome.Synced {
					synced++
				}
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Submitted %d records", len(outcomes))))
			if synced < len(outcomes) {
				fmt.Println(cli.FormatWarning(fmt.Sprintf(
					"%d records did not reach the remote and are pending locally", len(outcomes)-synced)))
			}
			return nil
		},
	}

	return cmd
}
