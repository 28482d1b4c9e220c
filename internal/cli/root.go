package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"tigerlee/internal/config"
)

// NewRoot builds the tigerlee command tree.
func NewRoot(version string) *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:           "tigerlee",
		Short:         "Tiger Lee's TKD booking site",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file (default: ./tigerlee.yaml if present)")

	load := func() (config.Config, error) {
		cfg, err := config.Load(configPath)
		if err != nil {
			return config.Config{}, err
		}
		setupLogging(cfg)
		return cfg, nil
	}

	cmd.AddCommand(newServeCmd(load, version))
	cmd.AddCommand(newMigrateCmd(load))
	cmd.AddCommand(newBlockedCmd(load))
	cmd.AddCommand(newVersionCmd(version))
	return cmd
}

// configLoader resolves configuration once flags are parsed.
type configLoader func() (config.Config, error)

// setupLogging installs the default slog handler: JSON in production, text otherwise.
func setupLogging(cfg config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var h slog.Handler
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h).With("service", "tigerlee"))
}
