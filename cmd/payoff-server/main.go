// Package main provides the entry point for the payoff API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/hwpayoff/runtime/api"
	"github.com/hwpayoff/runtime/config"
	"github.com/hwpayoff/runtime/internal/logging"
)

func main() {
	flags := pflag.NewFlagSet("payoff-server", pflag.ExitOnError)
	config.RegisterFlags(flags)
	envFile := flags.String("env-file", ".env", "dotenv file with PAYOFF_* settings")
	_ = flags.Parse(os.Args[1:])

	settings, err := config.LoadSettings(flags, *envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.NewLogger(settings.LogLevel, settings.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ds, err := config.NewLoader().Load(settings.DatasetPath)
	if err != nil {
		log.Error(err, "Failed to load dataset", "path", settings.DatasetPath)
		os.Exit(1)
	}

	log.Info("Starting payoff server",
		"addr", settings.ListenAddr,
		"dataset", ds.Version,
		"developers", len(ds.Developers),
		"metrics", settings.MetricsEnabled)

	server := api.NewServer(settings, ds, log)

	// Handle graceful shutdown
	done := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error(err, "Shutdown error")
		}
		close(done)
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(err, "Server error")
		os.Exit(1)
	}

	<-done
	log.Info("Server stopped")
}
