// Command dummyocs runs a minimal Diameter base protocol + Gy
// credit-control server that answers every Credit-Control-Request with a
// synthetic grant, for exercising Diameter clients against.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/dummyocs/diameter-gy/config"
	"github.com/dummyocs/diameter-gy/server"
)

func main() {
	cfg := config.Parse(os.Args[1:])

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           log.InfoLevel,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := server.New(cfg, logger)
	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Fatal("server exited", "error", err)
	}
}
