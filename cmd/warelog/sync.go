package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/warelog/warelog/internal/cli"
)

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Pull the latest records from the remote store",
		Long: `Fetch the full remote record set and replace the local cache with it.
Local edits made while the fetch was in flight are kept.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.coord.Refresh(ctx); err != nil {
				return fmt.Errorf("sync failed: %w", err)
			}

			records, err := a.storage.GetTransactions(ctx)
			if err != nil {
				return err
			}

			last, _ := a.sessions.LastSync(ctx)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Synced %d records at %s",
				len(records), last.Local().Format(time.RFC3339))))

			pending, err := a.coord.PendingWrites(ctx)
			if err == nil && pending > 0 {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("%d local writes still await the remote", pending)))
			}
			return nil
		},
	}
}
