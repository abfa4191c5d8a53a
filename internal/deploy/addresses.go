package deploy

import (
	"fmt"
	"strconv"

	"github.com/compose-network/sendmessage-migrations/configs"
	"github.com/compose-network/sendmessage-migrations/internal/infra/filesystem/json"
	"github.com/compose-network/sendmessage-migrations/internal/records"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var addressesCmd = &cobra.Command{
	Use:   "addresses",
	Short: "Print the recorded SendMessage deployments",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := records.NewStore(configs.Values.OutputDir, json.NewReadWriter())

		all, err := store.All()
		if err != nil {
			return err
		}

		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("Network", "Chain ID", "Contract", "Address", "Updated")
		for _, r := range all {
			chainID, updated := "-", "-"
			if r.ChainID != 0 {
				chainID = strconv.Itoa(r.ChainID)
			}
			if !r.UpdatedAt.IsZero() {
				updated = r.UpdatedAt.Format("2006-01-02 15:04:05")
			}
			if err := table.Append(r.Network, chainID, r.Contract, r.Address, updated); err != nil {
				return fmt.Errorf("failed to render record for %s: %w", r.Network, err)
			}
		}

		return table.Render()
	},
}
