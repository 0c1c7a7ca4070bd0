package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/uiprefs"
)

func newPrefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show display preferences",
		Args:  cobra.NoArgs,
		RunE: withClient(func(cmd *cobra.Command, _ []string, env *clientEnv) error {
			printPrefs(cmd.OutOrStdout(), env.prefs.Snapshot())
			return nil
		}),
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "dark [on|off]",
		Short:     "Set dark mode, or toggle it with the theme animation",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: withClient(func(cmd *cobra.Command, args []string, env *clientEnv) error {
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				on, err := parseSwitch(args[0])
				if err != nil {
					return err
				}
				env.prefs.SetDarkMode(on)
				printPrefs(out, env.prefs.Snapshot())
				return nil
			}
			return animateToggle(cmd, env)
		}),
	})
	return cmd
}

// animateToggle plays the sunset/sunrise sequence and returns once the
// animation has cleared.
func animateToggle(cmd *cobra.Command, env *clientEnv) error {
	out := cmd.OutOrStdout()
	done := make(chan struct{})
	var announce, finish sync.Once
	env.prefs.OnChange(func(s uiprefs.Snapshot) {
		if s.Animation == uiprefs.AnimationNone {
			finish.Do(func() { close(done) })
			return
		}
		announce.Do(func() { fmt.Fprintf(out, "%s...\n", s.Animation) })
	})

	if !env.prefs.ToggleDarkMode() {
		return nil
	}

	select {
	case <-done:
	case <-cmd.Context().Done():
		return cmd.Context().Err()
	}
	printPrefs(out, env.prefs.Snapshot())
	return nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, domain.NewValidationError("value", "use on or off")
}

func printPrefs(out io.Writer, s uiprefs.Snapshot) {
	mode := "light"
	if s.DarkMode {
		mode = "dark"
	}
	fmt.Fprintf(out, "theme: %s\n", mode)
}
