package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warelog/warelog/internal/cli"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record",
		Long: `Remove a record locally and from the remote store. Deleting an id
nobody has is a quiet success.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			outcome, err := a.coord.Delete(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Deleted " + outcome.ID))
			if !outcome.Synced {
				fmt.Println(cli.FormatWarning("Remote delete failed; the record is gone locally and the removal is pending"))
			}
			return nil
		},
	}
}
