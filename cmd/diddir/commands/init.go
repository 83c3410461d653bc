package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "init",
		Short:       "Create an empty store with owner-only permissions",
		Args:        cobra.NoArgs,
		Annotations: withMode(modeInit),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Store created at %s\n", appCtx.Paths.RootDir())
			return nil
		},
	}
}
