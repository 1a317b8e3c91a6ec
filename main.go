package main

import (
	"context"
	"hourbox/cmd"
	L "hourbox/logger"
	"os"
	"os/signal"
	"syscall"
)

func init() {
	// default for --log-level, the flag overrides it
	L.SetLevel(L.WARN)
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	err := cmd.Execute(ctx, os.Args[:])

	select {
	case <-ctx.Done():
		L.Debug("Command execution was aborted.")
	default:
		L.Debug("Command execution complete.")
	}
	if err != nil {
		L.Panic(err)
	}
	os.Exit(0)
}
