package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show per-resource watermarks and unresolved push failures",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()

			watermarks, err := a.storages.Watermarks.List(ctx)
			if err != nil {
				return fmt.Errorf("list watermarks: %w", err)
			}

			fmt.Fprintln(out, "Watermarks:")
			if len(watermarks) == 0 {
				fmt.Fprintln(out, "  (no pulls committed yet)")
			}
			for _, wm := range watermarks {
				fmt.Fprintf(out, "  %-20s %s\n", wm.Resource, wm.LastSynced.Time.UTC().Format("2006-01-02 15:04:05"))
			}

			failed, err := a.storages.FailedItems.List(ctx, "")
			if err != nil {
				return fmt.Errorf("list failed items: %w", err)
			}

			fmt.Fprintln(out, "Failed items:")
			if len(failed) == 0 {
				fmt.Fprintln(out, "  (none)")
			}
			for _, item := range failed {
				code := "-"
				if item.ErrorCode != nil {
					code = fmt.Sprintf("%d", *item.ErrorCode)
				}
				fmt.Fprintf(out, "  %s/%s %s code=%s %s\n",
					item.ItemType, item.ItemID, item.Kind, code, item.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
			}

			return nil
		},
	}
}
