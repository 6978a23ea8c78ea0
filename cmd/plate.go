package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zjrosen/platekeeper/internal/plates/application"
	"github.com/zjrosen/platekeeper/internal/plates/domain"
	"github.com/zjrosen/platekeeper/internal/presentation"
)

var plateAddCmd = &cobra.Command{
	Use:   "plate:add PLATE OWNER",
	Short: "Register an authorized plate",
	Long: `Register PLATE for OWNER.

The plate is normalized before it is stored: whitespace is removed and
letters are upper-cased, so "35 ttt 01" is stored as 35TTT01.

A plate that is already registered is rejected. A plate on the blacklist
asks for confirmation first; confirming removes it from the blacklist and
registers it.

Examples:
  platekeeper plate:add "35 TTT 01" "Mert Kaya"
  platekeeper plate:add 34ABC123 Ayse --yes`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		result, err := reg.svc.RegisterWithGate(ctx, args[0], args[1], application.RegisterOptions{}, newGate(cmd))
		if err != nil {
			return err
		}
		return report(cmd, presentation.FromRegistration(result))
	},
}

var plateListCmd = &cobra.Command{
	Use:   "plate:list",
	Short: "List authorized plates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		records, err := reg.lists.Plates(ctx)
		if err != nil {
			return err
		}
		return newFormatter(cmd).FormatPlates(presentation.FromPlates(records))
	},
}

var plateEditCmd = &cobra.Command{
	Use:   "plate:edit ID PLATE OWNER",
	Short: "Change the plate and owner of a record",
	Long: `Replace the plate and owner of the record with ID after confirmation.

Editing onto a plate held by another record is rejected.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		result, err := reg.svc.UpdatePlate(ctx, args[0], args[1], args[2], newGate(cmd))
		if err != nil {
			return err
		}
		return report(cmd, presentation.FromEdit(result, "updated"))
	},
}

var plateDeleteCmd = &cobra.Command{
	Use:   "plate:delete ID",
	Short: "Delete an authorized plate",
	Long:  `Delete the record with ID after confirmation and print the remaining plates.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		result, err := reg.svc.DeletePlate(ctx, args[0], newGate(cmd))
		if err != nil {
			return err
		}
		if err := report(cmd, presentation.FromEdit(result, "deleted")); err != nil {
			return err
		}
		if result.Outcome != application.OutcomeSuccess || jsonOutput {
			return nil
		}

		reg.lists.Invalidate(ctx, domain.CollectionPlates)
		records, err := reg.lists.Plates(ctx)
		if err != nil {
			return err
		}
		return newFormatter(cmd).FormatPlates(presentation.FromPlates(records))
	},
}

var plateBlacklistCmd = &cobra.Command{
	Use:   "plate:blacklist ID",
	Short: "Move an authorized plate to the blacklist",
	Long: `Blacklist the plate of the record with ID and remove the record after
confirmation.

If the blacklist entry is written but the record cannot be removed, the plate
is reported as still authorized and the command exits non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		record, err := reg.svc.GetPlate(ctx, args[0])
		if err != nil {
			var notFound *domain.NotFoundError
			if errors.As(err, &notFound) {
				return report(cmd, presentation.ResultDTO{
					Outcome: string(application.OutcomeNotFound),
					Message: "The plate no longer exists",
					Error:   err.Error(),
				})
			}
			return err
		}

		result, err := reg.svc.MoveToBlacklist(ctx, record.ID(), record.Key().String(), newGate(cmd), nil)
		if err != nil {
			return err
		}
		return report(cmd, presentation.FromTransfer(result, "moved to the blacklist"))
	},
}

func init() {
	rootCmd.AddCommand(plateAddCmd)
	rootCmd.AddCommand(plateListCmd)
	rootCmd.AddCommand(plateEditCmd)
	rootCmd.AddCommand(plateDeleteCmd)
	rootCmd.AddCommand(plateBlacklistCmd)
}
