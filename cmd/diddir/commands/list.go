package commands

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"diddir/internal/crypto"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored identities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ids, ok := appCtx.Store.GetIdentities()
			if !ok {
				fmt.Fprintln(out, "No identities.")
				return nil
			}

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"PKID", "FINGERPRINT", "ALIASES"})
			table.SetAutoWrapText(false)
			table.SetAutoFormatHeaders(true)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetCenterSeparator("")
			table.SetColumnSeparator("")
			table.SetRowSeparator("")
			table.SetHeaderLine(false)
			table.SetBorder(false)
			table.SetTablePadding("  ")
			table.SetNoWhiteSpace(true)

			for _, pkid := range ids {
				doc, err := appCtx.Store.GetIdentity(pkid)
				if err != nil {
					return err
				}
				aliases, _ := appCtx.Store.GetAliases(pkid)
				table.Append([]string{pkid, crypto.Fingerprint([]byte(doc)), strings.Join(aliases, ",")})
			}
			table.Render()
			return nil
		},
	}
}
