// Command server starts the API without the maintenance subcommands.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hpfoods/hpfoods-api/internal/server"
	"github.com/hpfoods/hpfoods-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
