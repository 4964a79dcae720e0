// Command entitrack is a command-line front end for an EntiTrack backend.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout).ExecuteContext(ctx)
	stop()
	_ = zap.L().Sync()
	if err != nil {
		os.Exit(1)
	}
}
