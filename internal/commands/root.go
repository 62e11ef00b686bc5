package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/paysys/paysys/internal/api"
	"github.com/paysys/paysys/internal/buildinfo"
	"github.com/paysys/paysys/internal/config"
	"github.com/paysys/paysys/internal/logging"
)

// DefaultConfigFile is read from the working directory unless --config says otherwise.
const DefaultConfigFile = "paysys.yaml"

var errNoUser = errors.New("no user: pass --user or set session.user_id")

// app carries the state every subcommand shares once the root has run.
type app struct {
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *zap.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:     "paysys",
		Short:   "Banking client: transaction history, accounts and transfers",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", DefaultConfigFile, "config file (missing file means defaults)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override: debug, info, warn, error")

	rootCmd.AddCommand(
		newInitCommand(),
		newParseCommand(),
		newHistoryCommand(a),
		newAccountCommand(a),
		newTransferCommand(a),
		newExportCommand(a),
		newServeCommand(a),
	)

	return rootCmd
}

func (a *app) setup() error {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	return nil
}

func (a *app) client() *api.Client {
	return api.NewClient(a.cfg.API, a.logger.Named("api"))
}

// userID picks the --user flag, falling back to the configured session.
func (a *app) userID(flag int) (int, error) {
	if flag > 0 {
		return flag, nil
	}
	if a.cfg.Session.UserID > 0 {
		return a.cfg.Session.UserID, nil
	}
	return 0, errNoUser
}
