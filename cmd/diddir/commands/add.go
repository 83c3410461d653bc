package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"diddir/internal/crypto"
	"diddir/internal/logger"
)

func addCmd() *cobra.Command {
	var (
		pkid  string
		alias string
	)
	cmd := &cobra.Command{
		Use:         "add <file|->",
		Short:       "Store a document; the pkid defaults to the BLAKE2b-256 of its content",
		Args:        cobra.ExactArgs(1),
		Annotations: withMode(modeOpenOrInit),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return err
			}
			if pkid == "" {
				pkid = crypto.DerivePKID(data)
			}

			if err := appCtx.Store.SaveIdentity(pkid, string(data)); err != nil {
				return fmt.Errorf("saving identity %s: %w", pkid, err)
			}
			logger.Info("identity saved", "pkid", pkid, "bytes", len(data))

			if alias != "" {
				if err := appCtx.Store.SaveAlias(alias, pkid); err != nil {
					return fmt.Errorf("saving alias %s: %w", alias, err)
				}
				logger.Info("alias saved", "alias", alias, "pkid", pkid)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pkid)
			return nil
		},
	}
	cmd.Flags().StringVar(&pkid, "pkid", "", "store under this pkid instead of the content digest")
	cmd.Flags().StringVar(&alias, "alias", "", "also point this alias at the new identity")
	return cmd
}
