package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/GlebRadaev/bankledger/internal/cli"
)

//	@title			Bank Ledger API
//	@version		1.0
//	@description	Users, accounts, deposits, withdrawals and statements

// @host		localhost:8080
// @BasePath	/
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd, err := cli.NewRootCmd(os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		zap.L().Fatal("bank exited with error", zap.Error(err))
	}
}
