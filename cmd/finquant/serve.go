package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newthinker/finquant/internal/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the convention query server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	return withApp(func(a *app.App, log *zap.Logger) error {
		server, err := a.Server()
		if err != nil {
			return err
		}

		log.Info("starting finquant server",
			zap.Strings("calendars", a.Calendars().Names()),
			zap.Bool("metrics", a.Metrics() != nil),
		)

		errCh := make(chan error, 1)
		go func() {
			errCh <- server.Start()
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-quit:
		}

		log.Info("shutting down finquant server")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return server.Shutdown(ctx)
	})
}
