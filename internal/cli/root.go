package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GlebRadaev/bankledger/internal/app"
	"github.com/GlebRadaev/bankledger/internal/config"
	"github.com/GlebRadaev/bankledger/internal/shell"
	"github.com/GlebRadaev/bankledger/pkg/logger"
)

// NewRootCmd builds the bank command tree. Flags override values read from
// the environment.
func NewRootCmd(in io.Reader, out io.Writer) (*cobra.Command, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	rootCmd := &cobra.Command{
		Use:   "bank",
		Short: "Bank ledger with users, accounts, deposits and withdrawals",
		Long: `bank keeps an in-memory ledger of users and checking accounts.

Without a subcommand it starts the interactive menu:
  [d] deposit, [w] withdraw, [s] statement,
  [nu] new user, [na] new account, [la] list accounts, [q] quit.

Use "bank serve" to expose the same ledger over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}
			return logger.InitLogger(cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cfg.BindFlags(rootCmd.PersistentFlags())
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)

	rootCmd.AddCommand(newServeCmd(cfg))
	return rootCmd, nil
}

func newServeCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the ledger over HTTP until interrupted",
		Long: `Start the HTTP API on the configured address.

Endpoints live under /api, metrics under /metrics and the API
documentation under /swagger/index.html.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), cfg)
		},
	}
}

func runShell(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) error {
	srv := app.New(cfg).Services()
	zap.L().Debug("starting shell", zap.String("agency", cfg.Agency))

	return shell.New(srv.UserService, srv.LedgerService, in, out, shell.Options{
		ExitOnInvalidDeposit: cfg.ExitOnInvalidDeposit,
	}).Run(ctx)
}

func runServer(ctx context.Context, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	application := app.New(cfg)
	if err := application.Start(ctx); err != nil {
		zap.L().Error("can't start application", zap.Error(err))
		return err
	}
	if err := application.Wait(ctx, cancel); err != nil {
		return err
	}

	zap.L().Info("all systems closed without errors")
	return nil
}
