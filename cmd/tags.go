package cmd

import (
	"fmt"
	"os"
	"slices"
	"strings"
	"text/tabwriter"

	"mangadesk/internal/domain"

	"github.com/spf13/cobra"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tag catalog",
	Run: func(cmd *cobra.Command, _ []string) {
		a := newApp(cmd)
		defer a.Close()

		// startup already tried once; a second call only fetches if that failed
		if err := a.client.InitTags(cmd.Context()); err != nil {
			a.fail("could not get tag list", err)
		}

		tags := slices.DeleteFunc(a.client.Tags(), func(t domain.TagEntry) bool {
			return len(tagGroups) > 0 && !slices.ContainsFunc(tagGroups, func(g string) bool {
				return strings.EqualFold(g, t.Group)
			})
		})
		slices.SortFunc(tags, func(x, y domain.TagEntry) int {
			if c := strings.Compare(x.Group, y.Group); c != 0 {
				return c
			}
			return strings.Compare(x.Name, y.Name)
		})

		if jsonOutput {
			_ = printJSON(tags)
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "GROUP\tNAME\tID")
		for _, t := range tags {
			fmt.Fprintf(w, "%s\t%s\t%s\n", t.Group, t.Name, t.ID)
		}
		_ = w.Flush()
	},
}
