// Package cli is the quietpage command line. The serve and migrate commands
// run the service; the rest drive the client core against a running server.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/quietpage/quietpage/internal/app"
	"github.com/quietpage/quietpage/internal/domain"
)

// recoveryScreen is shown instead of a stack trace when a command panics.
const recoveryScreen = "Something went wrong. Run the command again."

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "quietpage",
		Short:         "Distraction-free writing and reading",
		Long:          "quietpage serves the writing API and lets you write, publish and read from a terminal.",
		Version:       app.Build().String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddCommand(
		newServeCommand(),
		newMigrateCommand(),
		newVersionCommand(),
		newSignUpCommand(),
		newLoginCommand(),
		newLogoutCommand(),
		newWhoAmICommand(),
		newFeedCommand(),
		newProfileCommand(),
		newReadCommand(),
		newWriteCommand(),
		newDraftsCommand(),
		newPrefsCommand(),
	)
	return root
}

// Execute runs the command line and returns the process exit code. A panic
// anywhere below is logged and replaced by the recovery screen.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return recovered(stderr, func() int {
		root := NewRootCommand()
		root.SetArgs(args)
		root.SetOut(stdout)
		root.SetErr(stderr)

		if err := root.ExecuteContext(ctx); err != nil {
			fmt.Fprintln(stderr, userMessage(err))
			return 1
		}
		return 0
	})
}

// recovered runs fn and turns a panic into the recovery screen and exit
// code 2.
func recovered(stderr io.Writer, fn func() int) (code int) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic recovered",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)
			fmt.Fprintln(stderr, recoveryScreen)
			code = 2
		}
	}()
	return fn()
}

// userMessage turns an error into the line shown to the user.
func userMessage(err error) string {
	var (
		ae *domain.AuthError
		ve *domain.ValidationError
	)
	switch {
	case errors.As(err, &ae) && ae.Reason != "":
		return ae.Reason
	case errors.As(err, &ve):
		return ve.Message()
	case errors.Is(err, domain.ErrUnauthorized):
		return "Please sign in first (quietpage login)."
	case errors.Is(err, domain.ErrForbidden):
		return "You can only change your own works."
	case errors.Is(err, domain.ErrNotFound):
		return "Not found."
	}
	return "Error: " + err.Error()
}
