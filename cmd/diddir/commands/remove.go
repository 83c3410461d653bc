package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"diddir/internal/logger"
)

func removeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <pkid|alias>",
		Short: "Delete an identity and every alias pointing at it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkid, err := appCtx.Resolve(args[0])
			if err != nil {
				return err
			}
			aliases, _ := appCtx.Store.GetAliases(pkid)
			if err := appCtx.Store.RemoveIdentity(pkid); err != nil {
				return fmt.Errorf("removing identity %s: %w", pkid, err)
			}
			logger.Info("identity removed", "pkid", pkid, "aliases", len(aliases))
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%d aliases)\n", pkid, len(aliases))
			return nil
		},
	}
}
