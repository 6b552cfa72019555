package cmd

import (
	"time"

	"mangadesk/internal/templater"

	"github.com/spf13/cobra"
)

var (
	configPath string
	jsonOutput bool

	username string
	password string

	title        string
	limit        int
	offset       int
	includedTags []string
	excludedTags []string
	tagsModeOr   bool
	statuses     []string
	ratings      []string
	newestFirst  bool

	tagGroups        []string
	chapterLanguages []string
	monitorLanguages []string

	pageSelection string
	outputDir     string
	naming        string
	lowQuality    bool

	checkInterval time.Duration
)

func initRootFlags() {
	rootCmd.PersistentFlags().StringVarP(
		&configPath,
		"config",
		"c",
		"",
		"specifies the path to your config directory",
	)
	rootCmd.PersistentFlags().BoolVar(
		&jsonOutput,
		"json",
		false,
		"print results as json",
	)
}

func initAuthFlags() {
	loginCmd.Flags().StringVarP(
		&username,
		"username",
		"u",
		"",
		"specifies your MangaDex username. default: the last used username",
	)
	loginCmd.Flags().StringVarP(
		&password,
		"password",
		"p",
		"",
		"specifies your password. read from MANGADESK__PASSWORD or stdin when empty",
	)
}

func initMangaFlags() {
	mangaCmd.Flags().StringVarP(
		&title,
		"title",
		"t",
		"",
		"search by title",
	)
	mangaCmd.Flags().StringSliceVarP(
		&includedTags,
		"tag",
		"T",
		nil,
		"only show manga with these tags, by name",
	)
	mangaCmd.Flags().StringSliceVarP(
		&excludedTags,
		"exclude-tag",
		"X",
		nil,
		"hide manga with these tags, by name",
	)
	mangaCmd.Flags().BoolVar(
		&tagsModeOr,
		"any-tag",
		false,
		"match any of the included tags instead of all of them",
	)
	mangaCmd.Flags().StringSliceVarP(
		&statuses,
		"status",
		"s",
		nil,
		"publication status: ongoing, completed, hiatus, cancelled",
	)
	mangaCmd.Flags().StringSliceVarP(
		&ratings,
		"rating",
		"r",
		nil,
		"content ratings to show. default: the contentRating setting",
	)
	addPagingFlags(mangaCmd)

	tagsCmd.Flags().StringSliceVarP(
		&tagGroups,
		"group",
		"g",
		nil,
		"only show tags of these groups, e.g. genre, theme, format",
	)
}

func initChapterFlags() {
	chaptersCmd.Flags().StringSliceVarP(
		&chapterLanguages,
		"language",
		"l",
		nil,
		"only show chapters translated to these languages",
	)
	addPagingFlags(chaptersCmd)
}

func initPageFlags() {
	pagesCmd.Flags().StringVarP(
		&pageSelection,
		"pages",
		"P",
		"all",
		"specifies the pages you want to fetch, e.g. 1-3,5",
	)
	pagesCmd.Flags().StringVarP(
		&outputDir,
		"output",
		"o",
		"",
		"save fetched pages to this directory instead of only printing their size",
	)
	pagesCmd.Flags().StringVarP(
		&naming,
		"naming",
		"n",
		templater.DefaultPageTemplate,
		"specifies the naming template for saved pages",
	)
	pagesCmd.Flags().BoolVarP(
		&lowQuality,
		"low-quality",
		"q",
		false,
		"fetch the compressed data-saver images",
	)
}

func initMonitorFlags() {
	monitorCmd.Flags().StringSliceVarP(
		&monitorLanguages,
		"language",
		"l",
		[]string{"en"},
		"only report chapters translated to these languages",
	)
	monitorCmd.Flags().DurationVarP(
		&checkInterval,
		"interval",
		"i",
		15*time.Minute,
		"time between checks for new chapters",
	)
}

func addPagingFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(
		&limit,
		"limit",
		0,
		"number of results per page. default: the mangaLimit or chapterLimit setting",
	)
	cmd.Flags().IntVar(
		&offset,
		"offset",
		0,
		"number of results to skip",
	)
	cmd.Flags().BoolVar(
		&newestFirst,
		"newest",
		false,
		"sort by most recently updated first",
	)
}
