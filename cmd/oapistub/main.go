// Command oapistub locates operations in OpenAPI documents and generates
// typed client stubs for them.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/erraggy/oapistub/cmd/oapistub/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := commands.NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, commands.ErrorMessage(err))
		stop()
		os.Exit(1)
	}
}
