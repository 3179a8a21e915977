package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/thefortaiagency/bendavis/config"
	"github.com/thefortaiagency/bendavis/internal/observability"
	handler "github.com/thefortaiagency/bendavis/internal/transport/http"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath string
	envFile    string

	cfg    *config.Config
	logger *zap.Logger
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "bendavis",
		Short:         "Ben Davis Automotive site server and tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Dotenv file loaded before reading the environment")

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(opts),
		newChatCmd(opts),
		newDNSCmd(opts),
		newAssetsCmd(opts),
		newUsersCmd(),
	)
	return rootCmd
}

func (o *rootOptions) load() error {
	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", o.envFile, err)
		}
	}

	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	o.cfg = cfg

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	o.logger = logger
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "bendavis %s\n", handler.Version)
		},
	}
}

func Execute() error {
	return NewRootCmd().Execute()
}
