package cli

import (
	"Academy/internal/config"
	"log/slog"

	"github.com/spf13/cobra"
)

// app — общее состояние команд: конфиг и логгер, заполняются в PersistentPreRunE.
type app struct {
	cfg config.Config
	log *slog.Logger
}

// NewRootCmd собирает дерево команд academy.
func NewRootCmd() *cobra.Command {
	a := &app{}
	var envFile string

	root := &cobra.Command{
		Use:           "academy",
		Short:         "Academy - marketing site with an enquiry form and admin dashboard",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = cfg.NewLogger()
			slog.SetDefault(a.log)
			return nil
		},
	}
	// без подкоманды — как serve
	root.RunE = func(cmd *cobra.Command, args []string) error {
		return serveCmdRun(a, cmd)
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file loaded before the environment")

	root.AddCommand(newServeCmd(a), newSeedCmd(a), newAdminCmd(a))
	return root
}

// Execute — точка входа для cmd/main.go.
func Execute() error {
	return NewRootCmd().Execute()
}
