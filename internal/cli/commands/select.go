// Package commands implements the molsel subcommands.
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/molviz-labs/molsel/internal/cli/config"
	"github.com/molviz-labs/molsel/internal/loader"
	"github.com/molviz-labs/molsel/pkg/atom"
	"github.com/molviz-labs/molsel/pkg/eval"
	"github.com/molviz-labs/molsel/pkg/parser"
	"github.com/molviz-labs/molsel/pkg/selspec"
)

// NewSelectCmd creates the select command.
func NewSelectCmd() *cobra.Command {
	var showSpec bool

	cmd := &cobra.Command{
		Use:   "select <structure-file> <expression>",
		Short: "Evaluate a selection expression against a structure file",
		Long: `Evaluate a selection expression against a structure file and print the
matching atoms.

Simple expressions (all, name, resn, chain, elem, resi equality, and) are
compiled to a flat attribute spec and filtered on the fast path; everything
else goes through the full evaluator. Both paths select the same atoms.`,
		Example: `  molsel select 1abc.pdb "name CA"
  molsel select 1abc.pdb "byres (around 4.5 resn HEM)" -o json
  molsel select 1abc.pdb "chain A and resi 10-40" --spec`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.GetConfig(ctx)
			log := config.GetLogger(ctx)

			expr, err := parser.Parse(args[1])
			if err != nil {
				return err
			}

			st, err := loader.Load(args[0])
			if err != nil {
				return err
			}
			log.Debug("structure loaded", "model", st.Model, "atoms", len(st.Atoms))

			matched, spec, err := selectAtoms(expr, st.Atoms)
			if err != nil {
				return err
			}

			if showSpec {
				if spec != nil {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					if err := enc.Encode(spec); err != nil {
						return err
					}
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "expression is not spec-convertible")
				}
			}
			if spec != nil {
				log.Debug("selected via spec fast path")
			}

			return renderAtoms(cmd.OutOrStdout(), matched, cfg.Output, cfg.Limit)
		},
	}

	cmd.Flags().BoolVar(&showSpec, "spec", false, "print the compiled selection spec, if any")
	return cmd
}

// selectAtoms applies the spec fast path when the expression converts and
// falls back to full evaluation otherwise. The returned spec is nil on the
// fallback path.
func selectAtoms(expr parser.Expr, atoms []atom.Atom) ([]atom.Atom, *selspec.Spec, error) {
	if spec, ok := selspec.Compile(expr); ok {
		return spec.Filter(atoms), spec, nil
	}
	matched, err := eval.Evaluate(expr, atoms)
	if err != nil {
		return nil, nil, err
	}
	return matched, nil, nil
}
