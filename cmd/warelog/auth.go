package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/warelog/warelog/internal/cli"
)

func loginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in against the remote store",
		Long:  `Verify credentials with the remote endpoint and start a local session.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.sessions.Login(ctx, a.remote, username, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			if !result.Authorized {
				msg := result.Message
				if msg == "" {
					msg = "invalid credentials"
				}
				fmt.Println(cli.FormatError("Login rejected: " + msg))
				return nil
			}

			fmt.Println(cli.FormatSuccess("Signed in as " + username))

			// Prime the cache so the first list is not empty.
			if err := a.coord.Refresh(ctx); err != nil {
				fmt.Println(cli.FormatWarning("Initial sync failed: " + err.Error()))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the local session",
		Long:  `Clear the stored session, sync marker, and saved view selections.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.sessions.Logout(ctx); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Signed out"))
			return nil
		},
	}
}
