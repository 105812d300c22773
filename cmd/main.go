package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"examtimer/internal/cli"
	"examtimer/internal/ui/desktop"
	"examtimer/internal/ui/terminal"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(version, cli.Launchers{
		Desktop:  desktop.Run,
		Terminal: terminal.Run,
	})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
