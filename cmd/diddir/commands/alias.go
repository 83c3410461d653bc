package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"diddir/internal/logger"
)

func aliasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "alias",
		Short: "Manage aliases",
	}
	cmd.AddCommand(aliasSetCmd(), aliasRmCmd(), aliasLsCmd())
	return cmd
}

func aliasSetCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "set <alias> <pkid>",
		Short: "Point an alias at a pkid, moving it if it already exists",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			alias, pkid := args[0], args[1]
			if _, err := appCtx.Store.GetIdentity(pkid); err != nil && !force {
				return fmt.Errorf("%w (use --force to alias an unknown pkid)", err)
			}
			if err := appCtx.Store.SaveAlias(alias, pkid); err != nil {
				return err
			}
			logger.Info("alias saved", "alias", alias, "pkid", pkid)
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", alias, pkid)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "allow aliasing a pkid that is not stored")
	return cmd
}

func aliasRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <alias>",
		Short: "Delete an alias",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := appCtx.Store.RemoveAlias(args[0]); err != nil {
				return err
			}
			logger.Info("alias removed", "alias", args[0])
			return nil
		},
	}
}

func aliasLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls <pkid|alias>",
		Short: "List the aliases of an identity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkid, err := appCtx.Resolve(args[0])
			if err != nil {
				return err
			}
			aliases, ok := appCtx.Store.GetAliases(pkid)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "No aliases.")
				return nil
			}
			for _, a := range aliases {
				fmt.Fprintln(cmd.OutOrStdout(), a)
			}
			return nil
		},
	}
}
