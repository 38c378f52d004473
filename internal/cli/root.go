// Package cli provides the heat-stories command-line interface.
package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	heatstack "github.com/mrmchughes/home-energy-analysis-tool"
	"github.com/mrmchughes/home-energy-analysis-tool/internal/config"
	"github.com/mrmchughes/home-energy-analysis-tool/stories"
)

// app holds what the subcommands share
type app struct {
	configFile string
	v          *viper.Viper
}

// NewRootCommand creates the heat-stories command with all subcommands
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "heat-stories",
		Short: "Component catalog for the heat-stack Button",
		Long: `heat-stories serves a browsable catalog of the heat-stack Button stories.

Every story renders the Button with one set of props. Clicking a button in the
catalog calls its click handler and shows the click in the action log.

Configuration is read from .heatstack.yml (or --config), HEATSTACK_* environment
variables and flags, in increasing priority.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.bindFlags(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default is .heatstack.yml)")
	rootCmd.PersistentFlags().String("log.level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log.file", "", "also write JSON logs to this file")
	rootCmd.PersistentFlags().String("catalog.stories_file", "", "YAML story file to add to the catalog")
	rootCmd.PersistentFlags().Bool("catalog.builtin", true, "include the built-in Button stories")

	rootCmd.AddCommand(
		newServeCommand(a),
		newListCommand(a),
		newRenderCommand(a),
	)

	return rootCmd
}

// bindFlags creates the viper instance for the config file and binds the flags of cmd to it
func (a *app) bindFlags(cmd *cobra.Command) error {
	a.v = config.NewViper(a.configFile)
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(a.v)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// loadStories returns the stories selected by the catalog config
func loadStories(cfg config.CatalogConfig, logger *slog.Logger) ([]stories.Story, error) {
	var result []stories.Story
	if cfg.Builtin {
		result = append(result, stories.ButtonStories(logger)...)
	}
	if cfg.StoriesFile != "" {
		fromFile, err := stories.LoadFile(cfg.StoriesFile, logger)
		if err != nil {
			return nil, err
		}
		result = append(result, fromFile...)
	}
	return result, nil
}

// newInstance creates the catalog instance for cfg
func newInstance(cfg *config.Config, logger *slog.Logger) (*heatstack.Instance, error) {
	storyList, err := loadStories(cfg.Catalog, logger)
	if err != nil {
		return nil, err
	}

	// Non-nil even when empty, so the built-in stories are not added implicitly
	if storyList == nil {
		storyList = []stories.Story{}
	}

	return heatstack.NewWithOptions(heatstack.Options{
		ActionCapacity: cfg.Catalog.ActionCapacity,
		Stories:        storyList,
		Logger:         logger,
	}), nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
