package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "jewelstore/internal/api/docs"
	"jewelstore/internal/auth"
	"jewelstore/internal/config"
)

// @title Jewellery Store API
// @version 1.0
// @description Jewellery storefront with daily gold and silver rates, a product catalog and orders.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer access token from /auth/login or /auth/admin/login.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "app",
		Short:        "Jewellery storefront with daily metal rates",
		SilenceUsage: true,
	}
	serve := newServeCmd()
	root.AddCommand(serve, newHashPasswordCmd())
	root.RunE = serve.RunE
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, task worker and scheduler",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}

			zapLogger, err := zap.NewProduction()
			if err != nil {
				log.Fatalf("Failed to init logger: %v", err)
			}
			defer func() { _ = zapLogger.Sync() }()
			sugar := zapLogger.Sugar()

			sugar.Infow("Starting Jewellery Store", "port", cfg.Server.Port, "timezone", cfg.Rates.Timezone)

			app, err := NewApp(cfg, sugar)
			if err != nil {
				sugar.Fatalw("Failed to initialize app", "error", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := app.Run(ctx); err != nil {
				sugar.Fatalw("Application error", "error", err)
			}
			return nil
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	var cost int
	cmd := &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print a bcrypt hash for JEWELSTORE_ADMIN_PASSWORD_HASH",
		Long:  "Prints a bcrypt hash of the password argument, or of the first line of stdin when no argument is given.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := passwordArg(args, cmd.InOrStdin())
			if err != nil {
				return err
			}
			hash, err := auth.HashPassword(password, cost)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
	cmd.Flags().IntVar(&cost, "cost", 10, "bcrypt cost")
	return cmd
}

func passwordArg(args []string, stdin io.Reader) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		if err != nil {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		return "", errors.New("empty password")
	}
	return line, nil
}
