package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"mangadesk/internal/buildinfo"
	"mangadesk/internal/config"
	"mangadesk/internal/domain"
	"mangadesk/internal/logger"
	"mangadesk/internal/mangadex"

	"github.com/spf13/cobra"
)

// app bundles what every command needs: settings, logger and a started client.
type app struct {
	cfg    *config.AppConfig
	log    logger.Logger
	client *mangadex.Client
}

// newApp reads the config, sets up logging and runs client startup. Startup
// failures are logged and do not abort the command.
func newApp(cmd *cobra.Command) *app {
	cfg := config.New(configPath, buildinfo.Version)

	log := logger.New(cfg.Config)

	if err := cfg.UpdateConfig(); err != nil {
		log.Error().Err(err).Msgf("error updating config")
	}

	client := mangadex.New(cfg,
		mangadex.WithBaseURL(cfg.Config.BaseURL),
		mangadex.WithLogger(log.Module("mangadex")),
		mangadex.WithPageCache(cfg.Config.PageCacheSize, 0),
		mangadex.WithStaleSessionRetry(true),
	)

	for _, initErr := range client.Init(cmd.Context()) {
		log.Warn().Str("source", domain.ErrorSource).Int("status", initErr.Status).Msg(initErr.Details)
	}

	return &app{
		cfg:    cfg,
		log:    log,
		client: client,
	}
}

func (a *app) Close() {
	a.client.Close()
}

// fail logs err in the shape of the UI error event and exits.
func (a *app) fail(msg string, err error) {
	report := domain.Report(err)
	a.log.Error().Err(err).Str("source", report.Source).Int("status", report.Status).Str("details", report.Details).Msg(msg)
	a.Close()
	os.Exit(1)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func orDash(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
