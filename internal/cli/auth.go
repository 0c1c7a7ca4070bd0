package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSignUpCommand() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: withClient(func(cmd *cobra.Command, _ []string, env *clientEnv) error {
			if err := env.session.SignUpWithPassword(cmd.Context(), email, password, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s.\n", env.session.CurrentUser().DisplayName)
			return nil
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCommand() *cobra.Command {
	var email, password, provider, code string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with a password or a provider code",
		Args:  cobra.NoArgs,
		RunE: withClient(func(cmd *cobra.Command, _ []string, env *clientEnv) error {
			var err error
			if provider != "" {
				err = env.session.SignInWithFederatedProvider(cmd.Context(), provider, code)
			} else {
				err = env.session.SignInWithPassword(cmd.Context(), email, password)
			}
			if err != nil {
				return err
			}
			u := env.session.CurrentUser()
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (@%s).\n", u.DisplayName, u.Handle)
			return nil
		}),
	}
	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&provider, "provider", "", "federated provider, e.g. google")
	cmd.Flags().StringVar(&code, "code", "", "authorization code from the provider")
	cmd.MarkFlagsRequiredTogether("email", "password")
	cmd.MarkFlagsRequiredTogether("provider", "code")
	cmd.MarkFlagsMutuallyExclusive("email", "provider")
	cmd.MarkFlagsOneRequired("email", "provider")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: withClient(func(cmd *cobra.Command, _ []string, env *clientEnv) error {
			if env.session.CurrentUser() == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}
			err := env.session.SignOut(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return err
		}),
	}
}

func newWhoAmICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: withClient(func(cmd *cobra.Command, _ []string, env *clientEnv) error {
			u := env.session.CurrentUser()
			if u == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> @%s\n", u.DisplayName, u.Email, u.Handle)
			return nil
		}),
	}
}
