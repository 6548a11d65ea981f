// entry point to the iconify CLI
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/iconify/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			logrus.Warn("interrupted")
			os.Exit(130)
		}
		logrus.Errorf("iconify: %s", err.Error())
		os.Exit(1)
	}
}
