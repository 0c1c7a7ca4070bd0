package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/quietpage/quietpage/internal/adapter/api"
	"github.com/quietpage/quietpage/internal/adapter/pebble"
	"github.com/quietpage/quietpage/internal/app"
	"github.com/quietpage/quietpage/internal/config"
	"github.com/quietpage/quietpage/internal/editor"
	"github.com/quietpage/quietpage/internal/reader"
	"github.com/quietpage/quietpage/internal/session"
	"github.com/quietpage/quietpage/internal/uiprefs"
)

// clientEnv is the client core wired to the API and the local store.
type clientEnv struct {
	cfg     config.ClientConfig
	log     *slog.Logger
	kv      *pebble.KV
	api     *api.Client
	session *session.State
	prefs   *uiprefs.Prefs
	clock   clockwork.Clock
}

// openClient loads client config, opens the local store and resumes the
// stored session. A session that cannot be resumed leaves the user signed out.
func openClient(ctx context.Context) (*clientEnv, error) {
	cfg, err := config.LoadClient()
	if err != nil {
		return nil, err
	}
	logger := app.NewLogger(cfg.Log)

	kv, err := pebble.Open(filepath.Join(cfg.Client.DataDir, "state"))
	if err != nil {
		return nil, fmt.Errorf("open local state: %w", err)
	}

	client := api.New(cfg.Client.APIURL, cfg.Client.Timeout, api.WithLogger(logger))
	state := session.New(logger, client, kv)
	client.OnRefresh(state.PersistTokens)

	if err := state.Restore(ctx); err != nil {
		logger.WarnContext(ctx, "session not restored", slog.String("error", err.Error()))
	}

	clock := clockwork.NewRealClock()
	return &clientEnv{
		cfg:     cfg.Client,
		log:     logger,
		kv:      kv,
		api:     client,
		session: state,
		prefs:   uiprefs.New(logger, kv, clock),
		clock:   clock,
	}, nil
}

func (e *clientEnv) close() {
	if err := e.kv.Close(); err != nil {
		e.log.Warn("close local state", slog.String("error", err.Error()))
	}
}

func (e *clientEnv) editor() *editor.Editor {
	return editor.New(e.log, e.api, e.session, e.prefs, e.clock)
}

func (e *clientEnv) reader() *reader.Reader {
	return reader.New(e.log, e.api, e.api, e.session)
}

// withClient runs fn with an opened client environment.
func withClient(fn func(cmd *cobra.Command, args []string, env *clientEnv) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		env, err := openClient(cmd.Context())
		if err != nil {
			return err
		}
		defer env.close()
		return fn(cmd, args, env)
	}
}

// confirmer asks on the command's stdin unless yes is set.
func confirmer(cmd *cobra.Command, yes bool, question string) func() bool {
	return func() bool {
		if yes {
			return true
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
		line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}
