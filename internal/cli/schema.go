package cli

import (
	"fmt"

	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"

	"github.com/nrfta/criteria-go/schemafile"
)

func newSchemaCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "schema [type]",
		Short: "List filter types or print a filter schema as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				for _, name := range a.registry.Names() {
					fmt.Fprintln(out, name)
				}
				return nil
			}

			schema, ok := a.registry.Lookup(args[0])
			if !ok {
				return errors.Errorf("unknown filter type %q (known: %v)", args[0], a.registry.Names())
			}
			return schemafile.Write(out, schema)
		},
	}
}
