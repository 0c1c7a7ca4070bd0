package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/quietpage/quietpage/internal/domain"
	"github.com/quietpage/quietpage/internal/reader"
	"github.com/quietpage/quietpage/internal/richtext"
)

func newReadCommand() *cobra.Command {
	var (
		chapter        int
		next, prev     bool
		like, save     bool
		unpublish, yes bool
	)
	cmd := &cobra.Command{
		Use:   "read <id>",
		Short: "Read a work, resuming where you left off",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(func(cmd *cobra.Command, args []string, env *clientEnv) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return domain.NewValidationError("id", "not a valid work id")
			}
			ctx := cmd.Context()
			r := env.reader()

			if err := r.Open(ctx, id); err != nil {
				return err
			}

			switch {
			case chapter > 0:
				err = r.GoToChapter(ctx, chapter-1)
			case next:
				err = r.Next(ctx)
			case prev:
				err = r.Prev(ctx)
			}
			if err != nil {
				return err
			}

			if like {
				if err := r.ToggleLike(ctx); err != nil {
					return err
				}
			}
			if save {
				if err := r.ToggleSave(ctx); err != nil {
					return err
				}
			}
			if unpublish {
				if err := r.Unpublish(ctx, confirmer(cmd, yes, "Move this work back to your drafts?")); err != nil {
					return err
				}
				if r.Redirect() == reader.RouteDrafts {
					fmt.Fprintln(cmd.OutOrStdout(), "Moved to drafts.")
				}
				return nil
			}

			printChapter(cmd.OutOrStdout(), r)
			return nil
		}),
	}
	cmd.Flags().IntVar(&chapter, "chapter", 0, "open this chapter (1-based)")
	cmd.Flags().BoolVar(&next, "next", false, "move to the next chapter")
	cmd.Flags().BoolVar(&prev, "prev", false, "move to the previous chapter")
	cmd.Flags().BoolVar(&like, "like", false, "toggle your like")
	cmd.Flags().BoolVar(&save, "save", false, "toggle the bookmark")
	cmd.Flags().BoolVar(&unpublish, "unpublish", false, "move your work back to drafts")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.MarkFlagsMutuallyExclusive("chapter", "next", "prev")
	return cmd
}

func printChapter(out io.Writer, r *reader.Reader) {
	w := r.Work()
	if w == nil {
		return
	}
	i := r.Chapter()
	ch := w.Chapters[i]

	fmt.Fprintf(out, "%s\n%s by %s · %s · %s likes",
		w.Title, w.Type.Label(), w.Author.Name, w.ReadTime, humanize.Comma(int64(w.LikesCount)))
	if r.IsSaved() {
		fmt.Fprint(out, " · saved")
	}
	fmt.Fprintf(out, "\n%s\n\n", r.AuthorLink())

	fmt.Fprintf(out, "Chapter %d of %d: %s\n", i+1, len(w.Chapters), ch.Title)
	if ch.Subtitle != "" {
		fmt.Fprintln(out, ch.Subtitle)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, richtext.PlainText(ch.Content))

	if r.CanPrev() {
		fmt.Fprintf(out, "\nPrevious: quietpage read %s --prev", w.ID)
	}
	if r.CanNext() {
		fmt.Fprintf(out, "\nNext: quietpage read %s --next", w.ID)
	}
	if r.CanPrev() || r.CanNext() {
		fmt.Fprintln(out)
	}
}
