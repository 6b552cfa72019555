package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"mangadesk/internal/domain"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var monitorCmd = &cobra.Command{
	Use:   "monitor <manga-id>...",
	Short: "Watch manga for newly published chapters",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		a := newApp(cmd)
		defer a.Close()

		// init dynamic config
		a.cfg.DynamicReload(a.log)

		since := time.Now().UTC()
		seen := make(map[string]bool)
		var mu sync.Mutex

		check := func(mangaID string) {
			mLog := a.log.With().Str("manga", mangaID).Logger()

			list, err := a.client.ChapterList(ctx, domain.ChapterListOptions{
				Manga:              mangaID,
				TranslatedLanguage: monitorLanguages,
				PublishAtSince:     since,
				Order:              domain.ChapterOrder{PublishAt: domain.OrderAsc},
			})
			if err != nil {
				report := domain.Report(err)
				mLog.Error().Err(err).Int("status", report.Status).Msg("error checking for new chapters")
				return
			}

			mu.Lock()
			defer mu.Unlock()

			for _, c := range list.Data {
				if seen[c.ID] {
					continue
				}
				seen[c.ID] = true
				announce(mLog, c)
			}
		}

		a.log.Info().Int("manga", len(args)).Dur("interval", checkInterval).Msg("starting to monitor manga")

		ticker := time.NewTicker(checkInterval)
		defer ticker.Stop()

		wg := sync.WaitGroup{}

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					for _, mangaID := range args {
						wg.Add(1)

						go func() {
							defer wg.Done()
							check(mangaID)
						}()
					}

					wg.Wait()
				}
			}
		}()

		// set up a channel to catch signals for graceful shutdown
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM)

		fmt.Printf("received signal: %s, stopping monitoring.\n", <-sigCh)
		cancel()
		wg.Wait()
	},
}

func announce(log zerolog.Logger, c domain.ChapterRow) {
	log.Info().
		Str("chapter", c.Chapter).
		Str("language", c.TranslatedLanguage).
		Str("group", orDash(c.GroupName)).
		Time("published", c.PublishAt).
		Msgf("new chapter %s", c.ID)
}
