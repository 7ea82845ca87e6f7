package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/arthur-debert/svnrelease/cmd/svnrelease"
	"github.com/arthur-debert/svnrelease/pkg/style"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The first interrupt cancels the release and lets cleanup run. Restoring
	// default handling then lets a second one end the process.
	go func() {
		<-ctx.Done()
		stop()
	}()

	rootCmd := svnrelease.NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print the error in red
		errorStyle := style.NewStyles(nil).Error
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		stop()
		os.Exit(1)
	}
}
