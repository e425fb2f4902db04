package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"

	"github.com/nrfta/criteria-go"
	"github.com/nrfta/criteria-go/mapper"
)

func newDecodeCommand(a *app) *cobra.Command {
	var paths bool

	cmd := &cobra.Command{
		Use:   "decode <type> <encoded>",
		Short: "Decode an encoded filter to JSON",
		Example: `  criteriactl decode announcement 'title:loft,tags[0]:sea'
  criteriactl decode announcement eyJ0aXRsZSI6ImxvZnQifQ== --codec opaque
  criteriactl decode user 'address[locality]:Paris' --paths`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := a.newFilter(args[0])
			if err != nil {
				return err
			}

			codec, err := a.codec()
			if err != nil {
				return err
			}
			transport := criteria.NewTransport(codec, mapper.New())
			out := cmd.OutOrStdout()

			if paths {
				tree, err := transport.Decode(args[1], filter)
				if err != nil {
					return err
				}
				for _, pv := range criteria.Flatten(tree) {
					fmt.Fprintln(out, pv.String())
				}
				return nil
			}

			if err := transport.Unmarshal(args[1], filter); err != nil {
				return err
			}

			// Render the typed field tree rather than the struct so that
			// unset fields stay out of the output.
			tree, err := mapper.New().ToFieldTree(filter)
			if err != nil {
				return err
			}
			data, err := tree.MarshalJSON()
			if err != nil {
				return errors.Wrap(err, "render filter")
			}

			var indented bytes.Buffer
			if err := json.Indent(&indented, data, "", "  "); err != nil {
				return errors.Wrap(err, "render filter")
			}
			fmt.Fprintln(out, indented.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&paths, "paths", false, "Print the decoded path values instead of the filter")
	return cmd
}
