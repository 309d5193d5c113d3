package cli

import (
	"github.com/spf13/cobra"
)

func newSeedCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create tables and seed programs and the admin account, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, conn, err := openStore(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			defer conn.Close()
			return seed(cmd.Context(), store, a.cfg, a.log)
		},
	}
}
