package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/warelog/warelog/internal/cli"
	"github.com/warelog/warelog/internal/session"
)

func watchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep the cache fresh and expire idle sessions",
		Long: `Refresh the local cache on an interval and run the idle watchdog: a
warning when the session has been idle too long, then an automatic
sign-out at the hard timeout. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			a, err := initApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			if _, err := a.sessions.RequireUser(ctx); err != nil {
				return err
			}

			watchdog := session.NewWatchdog(session.WatchdogConfig{
				RefreshInterval: viper.GetDuration("watch.refresh_interval"),
				WarnAfter:       viper.GetDuration("watch.warn_after"),
				IdleTimeout:     viper.GetDuration("watch.idle_timeout"),
			})
			watchdog.Refresh = a.coord.Refresh
			watchdog.OnWarn = func(remaining time.Duration) {
				fmt.Println(cli.FormatWarning(fmt.Sprintf(
					"Session idle, signing out in %s", remaining.Round(time.Second))))
			}
			watchdog.OnExpire = func(ctx context.Context) error {
				fmt.Println(cli.FormatInfo("Session expired, signing out"))
				return a.sessions.Logout(ctx)
			}

			fmt.Println(cli.FormatInfo("Watching; Ctrl-C to stop"))
			return watchdog.Run(ctx)
		},
	}

	return cmd
}
