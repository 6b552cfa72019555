package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"mangadesk/internal/domain"

	"github.com/spf13/cobra"
)

var mangaCmd = &cobra.Command{
	Use:   "manga",
	Short: "Search manga",
	Run: func(cmd *cobra.Command, _ []string) {
		a := newApp(cmd)
		defer a.Close()

		opts := domain.MangaListOptions{
			Limit:  limit,
			Offset: offset,
			Title:  title,
		}

		var err error
		if opts.IncludedTags, err = tagIDs(a, includedTags); err != nil {
			a.fail("unknown tag", err)
		}
		if opts.ExcludedTags, err = tagIDs(a, excludedTags); err != nil {
			a.fail("unknown tag", err)
		}
		if tagsModeOr {
			opts.IncludedTagsMode = domain.TagsModeOr
		}
		for _, s := range statuses {
			opts.Status = append(opts.Status, domain.Status(s))
		}
		for _, r := range ratings {
			opts.ContentRating = append(opts.ContentRating, domain.ContentRating(r))
		}
		if newestFirst {
			opts.Order.UpdatedAt = domain.OrderDesc
		}

		list, err := a.client.MangaList(cmd.Context(), opts)
		if err != nil {
			a.fail("could not search manga", err)
		}

		if jsonOutput {
			_ = printJSON(list)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tYEAR\tRATING\tAUTHORS")
		for _, m := range list.Data {
			year := "-"
			if m.Year > 0 {
				year = fmt.Sprint(m.Year)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Status, year, m.ContentRating, strings.Join(m.Authors, ", "))
		}
		_ = w.Flush()

		fmt.Printf("\nShowing %d-%d of %s\n", list.Offset+min(1, len(list.Data)), list.Offset+len(list.Data), pluralize(list.Total, "result"))
	},
}

// tagIDs resolves tag names from the catalog loaded at startup.
func tagIDs(a *app, names []string) ([]string, error) {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		tag, ok := a.client.TagByName(name)
		if !ok {
			return nil, fmt.Errorf("no tag named %q, see the tags command", name)
		}
		ids = append(ids, tag.ID)
	}
	return ids, nil
}
