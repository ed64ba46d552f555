package cli

import (
	"errors"

	"datebook/internal/store"

	"github.com/spf13/cobra"
)

func newRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <entry-id>",
		Short: "Delete an entry permanently",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return writeErr(cmd, confirmRequiredError{action: "remove " + args[0]})
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Delete(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return writeErr(cmd, errNotFound("entry", args[0]))
				}
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": args[0], "removed": true}})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion (required)")
	return cmd
}
