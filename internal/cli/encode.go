package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"

	"github.com/nrfta/criteria-go"
	"github.com/nrfta/criteria-go/mapper"
	"github.com/nrfta/criteria-go/plain"
)

func newEncodeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <type> [json]",
		Short: "Encode a JSON filter",
		Long: `Encode reads a filter as JSON, from the argument or from stdin, and
prints its encoded form.`,
		Example: `  criteriactl encode announcement '{"title":"loft","tags":["sea"]}'
  echo '{"gender":"female"}' | criteriactl encode user --codec opaque`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := a.newFilter(args[0])
			if err != nil {
				return err
			}

			var data []byte
			if len(args) == 2 {
				data = []byte(args[1])
			} else {
				data, err = io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return errors.Wrap(err, "read stdin")
				}
			}

			if err := json.Unmarshal(data, filter); err != nil {
				return errors.Wrap(err, "parse filter JSON")
			}

			encoded, err := a.encode(filter)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), encoded)
			return nil
		},
	}
}

// encode renders filter with the configured codec. Values the plain codec
// cannot carry are reported instead of producing a corrupt string.
func (a *app) encode(filter criteria.Filter) (string, error) {
	codec, err := a.codec()
	if err != nil {
		return "", err
	}

	tree, err := mapper.New().ToFieldTree(filter)
	if err != nil {
		return "", err
	}

	if codec.Name() == plain.Name {
		if err := plain.Validate(criteria.Flatten(tree)); err != nil {
			return "", errors.Wrap(err, "use --codec opaque for this filter")
		}
	}

	encoded, err := codec.Encode(tree)
	if err != nil {
		return "", err
	}
	a.logger.Debug("encoded %d fields with the %s codec", tree.Len(), codec.Name())
	return strings.TrimSpace(encoded), nil
}
