package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAdminCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage the admin account",
	}
	cmd.AddCommand(newSetPasswordCmd(a))
	return cmd
}

func newSetPasswordCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "set-password",
		Short: "Set (or create) the admin password",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" {
				username = a.cfg.AdminUsername
			}
			if password == "" {
				return fmt.Errorf("--password is required")
			}
			store, conn, err := openStore(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := store.SetPassword(cmd.Context(), username, password); err != nil {
				return err
			}
			a.log.Info("admin password updated", "username", username)
			fmt.Fprintf(cmd.OutOrStdout(), "password updated for %s\n", username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "admin username (default ADMIN_USERNAME)")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	return cmd
}
