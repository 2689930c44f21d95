package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/iupui-soic/dhis2-android-sdk/internal/sync"
	"github.com/iupui-soic/dhis2-android-sdk/internal/workers"
)

func newDaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run periodic pull and push cycles until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			a.log.Info().
				Dur("interval", a.cfg.Sync.Interval).
				Strs("programs", a.cfg.Sync.Programs).
				Msg("sync daemon started")

			job := sync.NewJob(
				a.service,
				[]sync.PullSpec{
					{Resource: "programs", UIDs: a.cfg.Sync.Programs},
				},
				[]string{"events"},
				a.cfg.Sync.Interval,
			)

			workers.New(job).Run(ctx)

			a.log.Info().Msg("sync daemon stopped")
			return nil
		},
	}
}
