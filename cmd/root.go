package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mangadesk",
	Short: "Browse MangaDex from the command line.",
	Long: `Browse MangaDex from the command line: search manga, list chapters and fetch pages.

Provide a configuration file using one of the following methods:
1. Use the --config <path> or -c <path> flag.
2. Place a config.yaml file in the default user configuration directory (e.g., ~/.config/mangadesk/).
3. Place a config.yaml file a folder inside your home directory (e.g., ~/.mangadesk/).

A config.yaml with all options commented is created on first run.`,
	SilenceUsage: true,
}

func init() {
	initRootFlags()
	initAuthFlags()
	initMangaFlags()
	initChapterFlags()
	initPageFlags()
	initMonitorFlags()

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(mangaCmd)
	rootCmd.AddCommand(chaptersCmd)
	rootCmd.AddCommand(chapterCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(monitorCmd)
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
