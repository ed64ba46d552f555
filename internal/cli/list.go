package cli

import (
	"strings"
	"time"

	"datebook/internal/model"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	var all bool
	var done bool
	var overdue bool
	var match string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries (undone by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			entries, err := s.List(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			total := len(entries)

			now := time.Now()
			filtered := make([]model.Entry, 0, len(entries))
			for _, e := range entries {
				if done && !e.Done {
					continue
				}
				if !done && !all && e.Done {
					continue
				}
				if overdue && !e.Overdue(now) {
					continue
				}
				filtered = append(filtered, e)
			}
			if q := strings.TrimSpace(match); q != "" {
				filtered = matchEntries(q, filtered)
			}

			return writeOut(cmd, app, map[string]any{
				"data": filtered,
				"meta": map[string]any{
					"total":    total,
					"returned": len(filtered),
				},
			})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include done entries")
	cmd.Flags().BoolVar(&done, "done", false, "Only done entries")
	cmd.Flags().BoolVar(&overdue, "overdue", false, "Only overdue entries")
	cmd.Flags().StringVar(&match, "match", "", "Fuzzy-match titles")
	return cmd
}

// matchEntries keeps fuzzy title matches, best first.
func matchEntries(q string, entries []model.Entry) []model.Entry {
	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}
	matches := fuzzy.Find(q, titles)
	out := make([]model.Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
	}
	return out
}
