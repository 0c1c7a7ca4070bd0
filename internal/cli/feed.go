package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/quietpage/quietpage/internal/domain"
)

func newFeedCommand() *cobra.Command {
	var (
		typ   string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "List published works, newest first",
		Args:  cobra.NoArgs,
		RunE: withClient(func(cmd *cobra.Command, _ []string, env *clientEnv) error {
			t := domain.WorkType(typ)
			if t == "all" {
				t = ""
			}
			if t != "" && !t.IsValid() {
				return domain.NewValidationError("type", "must be story, poem, blog or all")
			}
			works, err := env.api.QueryPublishedWorks(cmd.Context(), t, limit)
			if err != nil {
				return err
			}
			printWorks(cmd.OutOrStdout(), works)
			return nil
		}),
	}
	cmd.Flags().StringVar(&typ, "type", "all", "story, poem, blog or all")
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of works")
	return cmd
}

func newProfileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "profile <handle>",
		Short: "Show an author and their published works",
		Args:  cobra.ExactArgs(1),
		RunE: withClient(func(cmd *cobra.Command, args []string, env *clientEnv) error {
			p, err := env.api.Profile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			works, err := env.api.ProfileWorks(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (@%s)\n", p.DisplayName, p.Handle)
			fmt.Fprintf(out, "%d stories, %d poems", p.Stats.Stories, p.Stats.Poems)
			if p.Stats.Drafts > 0 {
				fmt.Fprintf(out, ", %d drafts", p.Stats.Drafts)
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out)
			printWorks(out, works)
			return nil
		}),
	}
}

func printWorks(out io.Writer, works []domain.Work) {
	if len(works) == 0 {
		fmt.Fprintln(out, "Nothing here yet.")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tTITLE\tAUTHOR\tLIKES\tREAD\tUPDATED")
	for _, w := range works {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			w.ID, w.Type.Label(), w.Title, w.Author.Name,
			humanize.Comma(int64(w.LikesCount)), w.ReadTime, humanize.Time(w.UpdatedAt),
		)
	}
	tw.Flush() //nolint:errcheck
}
