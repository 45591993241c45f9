package commands

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/molviz-labs/molsel/internal/cli/config"
	"github.com/molviz-labs/molsel/internal/state"
)

// NewNamesCmd creates the names command group for managing named selections.
func NewNamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "names",
		Short: "Manage named selections",
		Long: `List and delete named selections saved from the shell. Selections are
stored in the state database (see --state).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNamesList(cmd)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List named selections",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runNamesList(cmd)
			},
		},
		&cobra.Command{
			Use:   "show <name>",
			Short: "Show one named selection",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runNamesShow(cmd, args[0])
			},
		},
		&cobra.Command{
			Use:   "delete <name>",
			Short: "Delete a named selection",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return runNamesDelete(cmd, args[0])
			},
		},
	)

	return cmd
}

func openStore(cmd *cobra.Command) (*state.SQLiteStore, error) {
	cfg := config.GetConfig(cmd.Context())
	store := state.NewSQLiteStore()
	if err := store.Open(cfg.StatePath); err != nil {
		return nil, err
	}
	if err := store.Migrate(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func runNamesList(cmd *cobra.Command) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	selections, err := store.ListSelections()
	if err != nil {
		return err
	}
	renderSelections(cmd.OutOrStdout(), selections)
	return nil
}

func runNamesShow(cmd *cobra.Command, name string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	sel, err := store.GetSelection(name)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Name:       %s\n", sel.Name)
	_, _ = fmt.Fprintf(out, "Expression: %s\n", sel.Expression)
	_, _ = fmt.Fprintf(out, "Atoms:      %d\n", sel.AtomCount)
	_, _ = fmt.Fprintf(out, "Created:    %s\n", sel.CreatedAt.Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintf(out, "Updated:    %s\n", sel.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func runNamesDelete(cmd *cobra.Command, name string) error {
	store, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.DeleteSelection(name); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %q\n", name)
	return nil
}

// renderSelections prints named selections as a table.
func renderSelections(w io.Writer, selections []*state.NamedSelection) {
	if len(selections) == 0 {
		_, _ = fmt.Fprintln(w, "(no named selections)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Expression", "Atoms", "Updated"})
	for _, sel := range selections {
		t.AppendRow(table.Row{
			sel.Name, sel.Expression, sel.AtomCount,
			sel.UpdatedAt.Format("2006-01-02 15:04"),
		})
	}
	t.Render()
}
