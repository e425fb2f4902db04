package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/friendsofgo/errors"
	"github.com/spf13/cobra"

	"github.com/nrfta/criteria-go/links"
	"github.com/nrfta/criteria-go/paging"
)

func newLinksCommand(a *app) *cobra.Command {
	var (
		page   int
		size   int
		total  int
		sorts  []string
		params []string
		base   string
	)

	cmd := &cobra.Command{
		Use:   "links",
		Short: "Print the navigation links of a page",
		Example: `  criteriactl links --page 3 --size 20 --total 95
  criteriactl links --page 2 --total 40 --param filter=title:loft --base https://api.example.com/announcements`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := paging.PageRequest{Sorts: sorts}
			if cmd.Flags().Changed("page") {
				req.Page = &page
			}
			if cmd.Flags().Changed("size") {
				req.Size = &size
			}
			pageable := a.cfg.PageConfig().Pageable(req)

			current := url.Values{}
			for _, p := range params {
				k, v, ok := strings.Cut(p, "=")
				if !ok || k == "" {
					return errors.Errorf("invalid --param %q, expected key=value", p)
				}
				current.Add(k, v)
			}
			for k, v := range pageable.Params() {
				current[k] = v
			}

			state := paging.NewPage[struct{}](nil, total, pageable)
			rels := links.Relations(current, state)

			rendered, err := links.Render(queryBuilder(base), "", rels)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, a.logger.Heading("page %d of %d (%d items)", state.Page(), state.TotalPages(), state.Total()))
			for _, rel := range rels {
				fmt.Fprintf(out, "%s %s\n", a.logger.Success("%-5s", rel.Name), rendered[rel.Name])
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&page, "page", 1, "Current page, starting at 1")
	flags.IntVar(&size, "size", paging.DefaultPageSize, "Page size (default from config)")
	flags.IntVar(&total, "total", 0, "Total number of items")
	flags.StringSliceVar(&sorts, "sorts", nil, "Sorts, e.g. -createdAt,title")
	flags.StringArrayVar(&params, "param", nil, "Extra request parameter key=value, repeatable")
	flags.StringVar(&base, "base", "", "Base URL the parameters are appended to")

	return cmd
}

// queryBuilder renders parameters as a query string on base.
func queryBuilder(base string) links.Builder {
	return links.BuilderFunc(func(_ string, params url.Values) (string, error) {
		if base == "" {
			return "?" + params.Encode(), nil
		}
		u, err := url.Parse(base)
		if err != nil {
			return "", errors.Wrap(err, "parse base URL")
		}
		u.RawQuery = params.Encode()
		return u.String(), nil
	})
}
