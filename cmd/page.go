package cmd

import (
	"context"
	"fmt"
	"os"

	"mangadesk/internal/domain"
	"mangadesk/internal/download"
	"mangadesk/internal/parse"
	"mangadesk/internal/templater"

	"github.com/spf13/cobra"
)

var pagesCmd = &cobra.Command{
	Use:   "pages <chapter-id>",
	Short: "Fetch the pages of a chapter",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		chapterID := args[0]

		a := newApp(cmd)
		defer a.Close()

		chapter, err := a.client.Chapter(ctx, chapterID)
		if err != nil {
			a.fail("could not get chapter", err)
		}

		selected, err := parse.PageSelection(pageSelection, chapter.Pages)
		if err != nil {
			a.fail("invalid page selection", err)
		}

		serverURL, err := a.client.ServerURL(ctx, chapterID)
		if err != nil {
			a.fail("could not get image server", err)
		}

		fetch := func(ctx context.Context, pageNumber int) (domain.Page, error) {
			return a.client.Page(ctx, chapterID, pageNumber, serverURL, nil, lowQuality)
		}

		if outputDir == "" {
			for _, n := range selected {
				page, err := a.client.Page(ctx, chapterID, n, serverURL, progressPrinter(n), lowQuality)
				fmt.Fprintln(os.Stderr)
				if err != nil {
					a.fail(fmt.Sprintf("could not fetch page %d", n), err)
				}
				fmt.Printf("Page %d: %s, %d bytes, %dx%d\n", page.Number, page.ContentType, len(page.Data), page.Width, page.Height)
			}
			return
		}

		name := func(pageNumber int) string {
			return templater.New(chapter, pageNumber).ExecTemplate(naming)
		}

		paths, err := download.Pages(ctx, a.log.Module("download"), outputDir, selected, fetch, name, download.DefaultConcurrency)
		if err != nil {
			a.fail("could not save pages", err)
		}

		for _, p := range paths {
			fmt.Println(p)
		}
	},
}

func progressPrinter(pageNumber int) domain.ProgressFunc {
	return func(read, total int64) {
		if total > 0 {
			fmt.Fprintf(os.Stderr, "\rpage %d: %3d%%", pageNumber, read*100/total)
			return
		}
		fmt.Fprintf(os.Stderr, "\rpage %d: %d bytes", pageNumber, read)
	}
}
