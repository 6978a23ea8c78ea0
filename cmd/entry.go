package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zjrosen/platekeeper/internal/plates/application"
	"github.com/zjrosen/platekeeper/internal/plates/domain"
	"github.com/zjrosen/platekeeper/internal/presentation"
)

var entryLimit int

var entryRecordCmd = &cobra.Command{
	Use:   "entry:record PLATE",
	Short: "Record a plate passing the gate",
	Long: `Append an entry event for PLATE to the entry feed.

This is what the plate sensor calls; dashboards show the newest entry as a
notification.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		event, err := reg.svc.RecordEntry(ctx, args[0])
		if err != nil {
			var invalid *domain.ValidationError
			if errors.As(err, &invalid) {
				return report(cmd, presentation.ResultDTO{
					Outcome: string(application.OutcomeValidation),
					Message: invalid.Error(),
					Error:   invalid.Error(),
				})
			}
			return err
		}
		return newFormatter(cmd).FormatEntries([]presentation.EntryDTO{presentation.FromEntry(event)})
	},
}

var entryLastCmd = &cobra.Command{
	Use:   "entry:last",
	Short: "Show the most recent entry events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		events, err := reg.svc.RecentEntries(ctx, entryLimit)
		if err != nil {
			return err
		}
		return newFormatter(cmd).FormatEntries(presentation.FromEntries(events))
	},
}

func init() {
	entryLastCmd.Flags().IntVarP(&entryLimit, "limit", "n", 1, "number of entries to show")

	rootCmd.AddCommand(entryRecordCmd)
	rootCmd.AddCommand(entryLastCmd)
}
