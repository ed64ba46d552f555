package cli

import (
	"errors"
	"time"

	"datebook/internal/store"

	"github.com/spf13/cobra"
)

func newDoneCmd(app *App) *cobra.Command {
	return newSetDoneCmd(app, "done", "Mark an entry done", true)
}

func newUndoneCmd(app *App) *cobra.Command {
	return newSetDoneCmd(app, "undone", "Mark an entry not done", false)
}

func newSetDoneCmd(app *App, use, short string, done bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " <entry-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			e, err := s.Get(cmd.Context(), args[0])
			if errors.Is(err, store.ErrNotFound) {
				return writeErr(cmd, errNotFound("entry", args[0]))
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			e.Done = done
			e.UpdatedAt = time.Now().UTC()
			if err := s.Put(cmd.Context(), e); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": e})
		},
	}
	return cmd
}
