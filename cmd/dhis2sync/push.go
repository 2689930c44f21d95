package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iupui-soic/dhis2-android-sdk/models"
)

func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push [resource...]",
		Short: "Upload locally created records of the given resource types",
		Long: "Push submits every local record not yet accepted by the " +
			"server and classifies each outcome. Rejections and transport " +
			"failures are recorded in the failure ledger and retried on the " +
			"next push.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			resources := args
			if len(resources) == 0 {
				resources = []string{"events"}
			}

			for _, resource := range resources {
				report, err := a.service.Push(ctx, resource)
				if err != nil {
					return fmt.Errorf("push %s: %w", resource, err)
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%d synced, %d failed, %d total)\n",
					report.Resource, report.Outcome(), report.Synced(), report.Failed(), len(report.Items))
				for _, item := range report.Items {
					if item.State == models.ItemSynced {
						continue
					}
					fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s %s\n", item.UID, item.State, item.Description)
				}
			}

			return nil
		},
	}
}
