package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/editor"
	"github.com/quietpage/quietpage/internal/richtext"
)

const watchPoll = time.Second

type writeOptions struct {
	typ        string
	title      string
	chapter    int
	addChapter bool
	heading    string
	subtitle   string
	file       string
	watch      bool
	focus      bool
	publish    bool
	unpublish  bool
	yes        bool
}

func newWriteCommand() *cobra.Command {
	var o writeOptions
	cmd := &cobra.Command{
		Use:   "write [id]",
		Short: "Create or edit a work",
		Long: `Create a new work, or edit one of yours when an id is given.

Chapter content is read as HTML from --file ("-" for stdin). With --watch the
file is reloaded whenever it changes and the draft is saved automatically
until you press Ctrl+C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: withClient(func(cmd *cobra.Command, args []string, env *clientEnv) error {
			return runWrite(cmd, args, env, o)
		}),
	}
	f := cmd.Flags()
	f.StringVar(&o.typ, "type", string(domain.WorkTypeStory), "story, poem, blog or draft (new works only)")
	f.StringVar(&o.title, "title", "", "set the title")
	f.IntVar(&o.chapter, "chapter", 0, "edit this chapter (1-based)")
	f.BoolVar(&o.addChapter, "add-chapter", false, "append a chapter and edit it")
	f.StringVar(&o.heading, "heading", "", "set the chapter title")
	f.StringVar(&o.subtitle, "subtitle", "", "set the chapter subtitle")
	f.StringVar(&o.file, "file", "", "chapter content as HTML, - for stdin")
	f.BoolVar(&o.watch, "watch", false, "reload --file on change and auto-save")
	f.BoolVar(&o.focus, "focus", false, "focus mode while watching")
	f.BoolVar(&o.publish, "publish", false, "publish instead of saving a draft")
	f.BoolVar(&o.unpublish, "unpublish", false, "move a published work back to drafts")
	f.BoolVarP(&o.yes, "yes", "y", false, "do not ask for confirmation")
	cmd.MarkFlagsMutuallyExclusive("publish", "unpublish", "watch")
	cmd.MarkFlagsMutuallyExclusive("chapter", "add-chapter")
	return cmd
}

func runWrite(cmd *cobra.Command, args []string, env *clientEnv, o writeOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	e := env.editor()

	if len(args) == 1 {
		id, err := uuid.Parse(args[0])
		if err != nil {
			return domain.NewValidationError("id", "not a valid work id")
		}
		if err := e.Open(ctx, id); err != nil {
			return err
		}
	} else {
		if env.session.CurrentUser() == nil {
			return domain.ErrUnauthorized
		}
		if err := e.OpenNew(domain.WorkType(o.typ)); err != nil {
			return err
		}
	}

	if o.unpublish {
		if err := e.Unpublish(ctx, confirmer(cmd, o.yes, "Move this work back to your drafts?")); err != nil {
			return err
		}
		if e.Status() == domain.WorkStatusDraft {
			fmt.Fprintln(out, "Moved to drafts.")
		}
		return nil
	}

	if o.title != "" {
		e.SetTitle(o.title)
	}
	switch {
	case o.addChapter:
		e.AddChapter()
	case o.chapter > 0:
		if err := e.SwitchChapter(o.chapter - 1); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("heading") || cmd.Flags().Changed("subtitle") {
		current := e.Chapters()[e.ActiveChapter()]
		heading, subtitle := current.Title, current.Subtitle
		if cmd.Flags().Changed("heading") {
			heading = o.heading
		}
		if cmd.Flags().Changed("subtitle") {
			subtitle = o.subtitle
		}
		e.SetChapterHeading(heading, subtitle)
	}
	if o.file != "" {
		html, err := readContent(cmd.InOrStdin(), o.file)
		if err != nil {
			return err
		}
		e.Buffer().Input(html)
	}

	if o.watch {
		return watch(ctx, out, env, e, o)
	}

	if o.publish {
		if err := e.Publish(ctx); err != nil {
			return err
		}
		fmt.Fprintf(out, "Published %q. Read it with: quietpage read %s\n", e.Title(), e.ID())
		return nil
	}

	if err := e.Save(ctx); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved %q (%d chapters) as %s.\n", e.Title(), len(e.Chapters()), e.ID())
	return nil
}

// watch reloads the content file on change and lets the editor auto-save
// until interrupted. A final save runs on exit.
func watch(ctx context.Context, out io.Writer, env *clientEnv, e *editor.Editor, o writeOptions) error {
	if o.file == "" || o.file == "-" {
		return domain.NewValidationError("file", "--watch needs a file path")
	}
	env.prefs.SetFocusMode(o.focus)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Fprintf(out, "Watching %s, saving every %s. Ctrl+C to stop.\n", o.file, env.cfg.AutoSave)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := e.AutoSave(gctx, env.cfg.AutoSave)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		return pollFile(gctx, env, o.file, func(html string) {
			e.Buffer().Input(html)
		})
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if e.Dirty() {
		if err := e.Save(context.WithoutCancel(ctx)); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "Saved %q as %s.\n", e.Title(), e.ID())
	return nil
}

func pollFile(ctx context.Context, env *clientEnv, path string, onChange func(string)) error {
	var last time.Time
	if fi, err := os.Stat(path); err == nil {
		last = fi.ModTime()
	}

	ticker := env.clock.NewTicker(watchPoll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.Chan():
		}

		fi, err := os.Stat(path)
		if err != nil || !fi.ModTime().After(last) {
			continue
		}
		last = fi.ModTime()

		html, err := readContent(nil, path)
		if err != nil {
			return err
		}
		onChange(html)
		env.log.DebugContext(ctx, "content reloaded", slog.String("size", humanize.Bytes(uint64(len(html)))))
	}
}

func readContent(stdin io.Reader, path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	text := string(b)
	if strings.HasPrefix(strings.TrimSpace(text), "<") {
		return text, nil
	}
	return richtext.FromPlainText(text), nil
}

func newDraftsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drafts",
		Short: "List your drafts, most recently edited first",
		Args:  cobra.NoArgs,
		RunE: withClient(func(cmd *cobra.Command, _ []string, env *clientEnv) error {
			drafts, err := env.editor().Drafts(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(drafts) == 0 {
				fmt.Fprintln(out, "No drafts. Start one with: quietpage write")
				return nil
			}
			for _, w := range drafts {
				fmt.Fprintf(out, "%s  %-6s %s (edited %s)\n", w.ID, w.Type.Label(), w.Title, humanize.Time(w.UpdatedAt))
			}
			return nil
		}),
	}

	var yes bool
	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a draft",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(func(cmd *cobra.Command, args []string, env *clientEnv) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return domain.NewValidationError("id", "not a valid work id")
			}
			ask := confirmer(cmd, yes, "Delete this draft?")
			confirmed := false
			confirm := func() bool {
				confirmed = ask()
				return confirmed
			}

			e := env.editor()
			if err := e.DeleteDraft(cmd.Context(), id, confirm); err != nil {
				if msg := e.Message(); msg != "" {
					return errors.New(msg)
				}
				return err
			}
			if confirmed {
				fmt.Fprintln(cmd.OutOrStdout(), "Draft deleted.")
			}
			return nil
		}),
	}
	del.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.AddCommand(del)
	return cmd
}
