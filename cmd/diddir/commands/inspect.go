package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"diddir/internal/crypto"
	"diddir/internal/did"
)

// inspectCmd parses a stored document as a DID document and prints its
// id, contexts and keys. The store itself never validates documents.
func inspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <pkid|alias>",
		Short: "Summarise a stored DID document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkid, err := appCtx.Resolve(args[0])
			if err != nil {
				return err
			}
			raw, err := appCtx.Store.GetIdentity(pkid)
			if err != nil {
				return err
			}
			doc, err := did.Parse([]byte(raw))
			if err != nil {
				return fmt.Errorf("identity %s: %w", pkid, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "pkid:        %s\n", pkid)
			fmt.Fprintf(out, "fingerprint: %s\n", crypto.Fingerprint([]byte(raw)))
			fmt.Fprintf(out, "id:          %s\n", doc.ID)
			for _, c := range doc.Context {
				fmt.Fprintf(out, "context:     %s\n", c)
			}
			for _, k := range doc.PublicKey {
				fmt.Fprintf(out, "key:         %s %s (%s)\n", k.ID, k.Type, k.Encoding)
			}
			return nil
		},
	}
}
