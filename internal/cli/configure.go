package cli

import (
	"fmt"

	"github.com/harun/notiz/internal/config"
	"github.com/spf13/cobra"
)

func newConfigureCmd(opts *rootOptions) *cobra.Command {
	var (
		ignoreHidden bool
		metricsAddr  string
	)

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Write the config file",
		Long: `Write the config file, starting from the current one. Only the given
flags change; --root sets the notes directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := config.NewLoader(opts.cfgFile)
			cfg, err := loader.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if opts.root != "" {
				cfg.RootPath = opts.root
			}
			if flags.Changed("log-level") {
				cfg.Logging.Level = opts.logLevel
			}
			if flags.Changed("ignore-hidden") {
				cfg.Watch.IgnoreHidden = ignoreHidden
			}
			if flags.Changed("metrics-addr") {
				cfg.Metrics.Enabled = metricsAddr != ""
				if metricsAddr != "" {
					cfg.Metrics.Addr = metricsAddr
				}
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			if err := loader.Save(cfg); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", loader.GetConfigPath())
			return nil
		},
	}
	cmd.Flags().BoolVar(&ignoreHidden, "ignore-hidden", false, "ignore changes to dot-prefixed files while watching")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve metrics on this address while watching (empty disables)")

	return cmd
}
