package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/flip-z/textutils/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	code := cli.Tail(ctx, os.Args[1:], cli.OSStreams())
	os.Exit(code)
}
