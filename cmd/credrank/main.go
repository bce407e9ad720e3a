package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/katalvlaran/credrank/observability"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := Execute(ctx)

	stop()
	observability.Sync()
	if err != nil {
		os.Exit(1)
	}
}
