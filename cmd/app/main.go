package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cafe/cmd"
	"cafe/internal/adapters/out/postgres"
	"cafe/internal/customer"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

var (
	envFile string
	v       *viper.Viper
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

var rootCmd = &cobra.Command{
	Use:           "cafe",
	Short:         "Cafe order fulfillment",
	Long:          `A barista server that brews tea and coffee for many customers at once, and the customer client to talk to it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if err := cmd.LoadDotEnv(envFile); err != nil {
			return err
		}
		v = cmd.NewViper()
		return nil
	},
}

var baristaCmd = &cobra.Command{
	Use:   "barista",
	Short: "Run the barista server",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		if err := v.BindPFlag(cmd.KeyTCPAddr, c.Flags().Lookup("addr")); err != nil {
			return err
		}
		if err := v.BindPFlag(cmd.KeyHTTPAddr, c.Flags().Lookup("http-addr")); err != nil {
			return err
		}

		config, err := cmd.LoadConfig(v)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runBarista(ctx, config)
	},
}

var customerCmd = &cobra.Command{
	Use:   "customer",
	Short: "Connect to the barista as a customer",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		addr, err := c.Flags().GetString("addr")
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return customer.Run(ctx, addr, os.Stdin, os.Stdout)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")

	baristaCmd.Flags().String("addr", cmd.DefaultTCPAddr, "TCP listen address (overrides "+cmd.KeyTCPAddr+")")
	baristaCmd.Flags().String("http-addr", cmd.DefaultHTTPAddr, "HTTP listen address, empty to disable (overrides "+cmd.KeyHTTPAddr+")")
	customerCmd.Flags().String("addr", "localhost"+cmd.DefaultTCPAddr, "barista address")

	rootCmd.AddCommand(baristaCmd)
	rootCmd.AddCommand(customerCmd)
}

func runBarista(ctx context.Context, config cmd.Config) error {
	logger, err := cmd.NewLogger(config, os.Stderr)
	if err != nil {
		return err
	}

	var gormDB *gorm.DB
	if config.UsesPostgres() {
		gormDB, err = postgres.Open(config.ConnectionConfig().DSN())
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := postgres.Close(gormDB); closeErr != nil {
				logger.Warn("Failed to close database", "error", closeErr)
			}
		}()
		logger.Info("Fulfillment ledger stored in Postgres", "host", config.DBHost, "database", config.DBName)
	}

	app, err := cmd.NewCompositionRoot(config, logger, gormDB)
	if err != nil {
		return err
	}

	tcpServer, err := app.CreateTCPServer()
	if err != nil {
		return err
	}
	httpServer, err := app.CreateHTTPServer()
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	scheduler := app.Scheduler()
	g, gctx := errgroup.WithContext(ctx)
	serveCtx, stopServing := app.ServingContext(gctx)
	defer stopServing()

	g.Go(func() error {
		return scheduler.Run(gctx)
	})
	g.Go(func() error {
		return tcpServer.ListenAndServe(serveCtx, config.TCPAddr)
	})
	if config.HTTPAddr != "" {
		g.Go(func() error {
			return httpServer.Run(serveCtx, config.HTTPAddr)
		})
	}

	err = g.Wait()
	if stopErr := scheduler.Stop(config.ShutdownGrace); stopErr != nil {
		logger.Warn("Preparations still running at exit", "error", stopErr)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Barista closed")
	return nil
}
