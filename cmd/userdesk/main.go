package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"userdesk/internal/client/cmd"
	"userdesk/internal/client/controller"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cmd.NewRootCmd(version, buildDate)
	if err := root.ExecuteContext(ctx); err != nil {
		if !reported(err) {
			fmt.Fprintln(os.Stderr, err)
		}
		stop()
		os.Exit(1)
	}
}

// reported tells whether the operator has already seen err as a notification.
func reported(err error) bool {
	var opErr *controller.OperationError
	return errors.As(err, &opErr)
}
