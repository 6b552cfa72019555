package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"mangadesk/internal/domain"

	"github.com/spf13/cobra"
)

var chaptersCmd = &cobra.Command{
	Use:   "chapters <manga-id>",
	Short: "List the chapters of a manga",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp(cmd)
		defer a.Close()

		opts := domain.ChapterListOptions{
			Manga:              args[0],
			Limit:              limit,
			Offset:             offset,
			TranslatedLanguage: chapterLanguages,
			Order: domain.ChapterOrder{
				Volume:  domain.OrderAsc,
				Chapter: domain.OrderAsc,
			},
		}
		if newestFirst {
			opts.Order = domain.ChapterOrder{PublishAt: domain.OrderDesc}
		}

		list, err := a.client.ChapterList(cmd.Context(), opts)
		if err != nil {
			a.fail("could not list chapters", err)
		}

		if jsonOutput {
			_ = printJSON(list)
			return
		}

		printChapters(list.Data)
		fmt.Printf("\nShowing %d of %s\n", len(list.Data), pluralize(list.Total, "chapter"))
	},
}

var chapterCmd = &cobra.Command{
	Use:   "chapter <chapter-id>",
	Short: "Show a single chapter",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		a := newApp(cmd)
		defer a.Close()

		row, err := a.client.Chapter(cmd.Context(), args[0])
		if err != nil {
			a.fail("could not get chapter", err)
		}

		if jsonOutput {
			_ = printJSON(row)
			return
		}

		printChapters([]domain.ChapterRow{row})
	},
}

func printChapters(rows []domain.ChapterRow) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tVOL\tCH\tTITLE\tLANG\tPAGES\tGROUP\tUPDATED")
	for _, c := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			c.ID, orDash(&c.Volume), orDash(&c.Chapter), c.Title, c.TranslatedLanguage, c.Pages, orDash(c.GroupName), c.UpdatedAt.Format("2006-01-02"))
	}
	_ = w.Flush()
}
