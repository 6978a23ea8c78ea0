package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/platekeeper/internal/presentation"
)

var blacklistListCmd = &cobra.Command{
	Use:   "blacklist:list",
	Short: "List blacklisted plates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		records, err := reg.lists.Blacklist(ctx)
		if err != nil {
			return err
		}
		return newFormatter(cmd).FormatBlacklist(presentation.FromBlacklists(records))
	},
}

var blacklistRemoveCmd = &cobra.Command{
	Use:   "blacklist:remove PLATE OWNER",
	Short: "Unblock a blacklisted plate and register it",
	Long: `Register PLATE for OWNER and remove it from the blacklist.

Unlike plate:add the blacklist entry is also removed when the plate was not
in conflict, so a plate that got blacklisted by mistake can be restored in
one step.

Examples:
  platekeeper blacklist:remove 35TTT01 "Mert Kaya"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		result, err := reg.svc.UnblockPlate(ctx, args[0], args[1], newGate(cmd))
		if err != nil {
			return err
		}
		return report(cmd, presentation.FromRegistration(result))
	},
}

var blacklistDropCmd = &cobra.Command{
	Use:   "blacklist:drop PLATE",
	Short: "Remove a plate from the blacklist without registering it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		result, err := reg.svc.DropFromBlacklist(ctx, args[0], newGate(cmd))
		if err != nil {
			return err
		}
		return report(cmd, presentation.FromTransfer(result, "removed from the blacklist"))
	},
}

func init() {
	rootCmd.AddCommand(blacklistListCmd)
	rootCmd.AddCommand(blacklistRemoveCmd)
	rootCmd.AddCommand(blacklistDropCmd)
}
