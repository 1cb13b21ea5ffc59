package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"someday/internal/cli"
	"someday/internal/config"
)

func main() {
	// Defaults, then config file, then environment; flags are applied by
	// the root command
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// The backend is built after flags are parsed so --data-dir and
	// --backend take effect
	app := cli.NewAppWithFactory(cfg, cli.NewBackend)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = app.Run(ctx, os.Args[1:])
	stop()

	if closeErr := app.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
