package cli

import (
	"fmt"

	"github.com/harun/notiz/internal/config"
	"github.com/harun/notiz/internal/logger"
	"github.com/harun/notiz/internal/metrics"
	"github.com/harun/notiz/pkg/library"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	cfgFile  string
	logLevel string
	root     string
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = NewRootCmd()

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "notiz",
		Short: "Notiz - markdown notes storage engine",
		Long: `Notiz manages a directory of markdown notes: it lists, saves, renames
and deletes notes and folders, keeps the notes metadata file, and watches the
directory for changes.`,
		Version:      version,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.notiz/notiz.json)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.root, "root", "", "notes directory (default is root_path from the config)")

	// Version template
	cmd.SetVersionTemplate(`{{with .Name}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`)

	cmd.AddCommand(
		newNotesCmd(opts),
		newFoldersCmd(opts),
		newMetadataCmd(opts),
		newWatchCmd(opts),
		newConfigureCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing
func GetRootCmd() *cobra.Command {
	return rootCmd
}

// GetVersion returns the current version
func GetVersion() string {
	return version
}

// app bundles what a subcommand needs to run one operation
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics
	lib     *library.Library
}

// setup loads the config, builds the logger and opens the library
func (o *rootOptions) setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if o.root != "" {
		cfg.RootPath = o.root
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Console: cfg.Logging.Console,
		Pretty:  cfg.Logging.Pretty,
	})
	if err != nil {
		return nil, err
	}

	m := metrics.NewMetrics()
	lib := library.New(library.Config{
		Logger:       log.GetZerolog(),
		Recorder:     m,
		IgnoreHidden: cfg.Watch.IgnoreHidden,
	})

	return &app{
		cfg:     cfg,
		log:     log,
		metrics: m,
		lib:     lib,
	}, nil
}

// rootPath returns the notes directory or an error when none is configured
func (a *app) rootPath() (string, error) {
	if a.cfg.RootPath == "" {
		return "", fmt.Errorf("no notes directory: pass --root or set root_path in the config")
	}
	return a.cfg.RootPath, nil
}

func (a *app) close() {
	_ = a.lib.Close()
	_ = a.log.Close()
}

// run sets up the app, resolves the root and calls fn
func (o *rootOptions) run(cmd *cobra.Command, fn func(a *app, root string) error) error {
	a, err := o.setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	root, err := a.rootPath()
	if err != nil {
		return err
	}
	return fn(a, root)
}
