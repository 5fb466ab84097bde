package commands

import (
	"context"
	"fmt"
	"os"

	"patient-record-manager/cmd/bootstrap"
	"patient-record-manager/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
}

// NewRootCommand builds the patientdb command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "patientdb",
		Short:         "Patient record management",
		Long:          "Store, query and analyse patient records from an HTTP API or the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", ".env", "Path to the env config file")

	rootCmd.AddCommand(newServeCommand(opts))
	rootCmd.AddCommand(newSeedCommand(opts))
	rootCmd.AddCommand(newQueryCommand(opts))
	rootCmd.AddCommand(newDashboardCommand(opts))

	return rootCmd
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// openApp starts the application for a one-shot command. Logs go to stderr so
// stdout carries only command output.
func (o *rootOptions) openApp(ctx context.Context) (*bootstrap.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	app.Log.SetOutput(os.Stderr)
	if app.Log.GetLevel() == logrus.InfoLevel {
		app.Log.SetLevel(logrus.WarnLevel)
	}
	return app, nil
}
