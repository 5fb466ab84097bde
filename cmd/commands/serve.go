package commands

import (
	"fmt"

	"patient-record-manager/cmd/bootstrap"
	"patient-record-manager/config"

	"github.com/spf13/cobra"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.App.Port = port
			}

			app, err := bootstrap.New(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			config.WatchLogLevel(opts.configPath, app.Log)
			app.Run()
			return nil
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Override APP_PORT")
	return cmd
}
