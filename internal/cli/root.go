package cli

import (
	"fmt"
	"os"
	"strings"

	"datebook/internal/format"
	"datebook/internal/store"
	"datebook/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Format     string
	PrettyJSON bool

	outFormat format.Format
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "datebook",
		Short:        "Datebook (local-first) CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  datebook

  # Scriptable commands
  datebook add "Dentist" --when "2024-03-15 09:30"
  datebook list --overdue

  # Help topics
  datebook docs datefield
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		f, err := format.Parse(app.Format)
		if err != nil {
			return err
		}
		app.outFormat = f
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("DATEBOOK_DIR", ""), "Path to data dir (default: discovered .datebook or ~/.datebook)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DATEBOOK_FORMAT", "json"), "Output format (json|edn)")

	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newListCmd(app))
	cmd.AddCommand(newShowCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newUndoneCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	s, err := openStore(app)
	if err != nil {
		return err
	}
	return tui.Run(s)
}

// openStore resolves the data dir (--dir, then DATEBOOK_DIR via the flag
// default, then discovery/home) and makes sure it exists.
func openStore(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}
	s := store.Store{Dir: dir}
	if err := s.Ensure(); err != nil {
		return store.Store{}, err
	}
	return s, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.outFormat, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
