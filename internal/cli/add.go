package cli

import (
	"errors"
	"strings"
	"time"

	"datebook/internal/model"
	"datebook/internal/store"

	"github.com/spf13/cobra"
)

func newAddCmd(app *App) *cobra.Command {
	var when string
	var notes string
	var done bool

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(args[0])
			if title == "" {
				return writeErr(cmd, errors.New("empty title"))
			}

			var dt *model.DateTime
			if strings.TrimSpace(when) != "" {
				parsed, err := parseWhen(when)
				if err != nil {
					return writeErr(cmd, err)
				}
				dt = parsed
			}

			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := store.NewEntryID()
			if err != nil {
				return writeErr(cmd, err)
			}

			now := time.Now().UTC()
			e := model.Entry{
				ID:        id,
				Title:     title,
				Notes:     strings.TrimSpace(notes),
				When:      dt,
				Done:      done,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.Put(cmd.Context(), e); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": e})
		},
	}

	cmd.Flags().StringVar(&when, "when", "", `Date or datetime (YYYY-MM-DD, "YYYY-MM-DD HH:MM", DD/MM/YYYY, RFC3339)`)
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().BoolVar(&done, "done", false, "Mark the entry done on creation")
	return cmd
}
