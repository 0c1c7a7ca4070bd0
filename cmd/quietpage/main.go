// Command quietpage runs the writing API and the terminal client.
//
// Usage:
//
//	quietpage serve                 start the HTTP API
//	quietpage migrate               apply database migrations
//	quietpage login --email ...     sign in against QUIETPAGE_API_URL
//	quietpage write --file ch1.html start a story
//	quietpage feed                  browse published works
//
// Run quietpage --help for the full list.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/quietpage/quietpage/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
