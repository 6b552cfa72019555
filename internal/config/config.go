package config

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"mangadesk/internal/domain"
	"mangadesk/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const configFile = "config.yaml"

var configTemplate = `# config.yaml

# MangaDex API base URL
#
# Default: "https://api.mangadex.org"
#
#baseURL: "https://api.mangadex.org"

# Account
# Written by mangadesk after a successful login or session refresh.
# The refresh token is a secret, keep this file private.
#
username: ""
refreshToken: ""

# Content ratings shown when browsing
#
# Default: ["safe", "suggestive"]
#
# Options: "safe", "suggestive", "erotica", "pornographic"
#
contentRating: ["safe", "suggestive"]

# Locale used for titles, descriptions and tag names
#
# Default: "en"
#
locale: "en"

# Page sizes for manga and chapter lists
#
# Default: 30 and 100
#
mangaLimit: 30
chapterLimit: 100

# Number of chapters whose page lists are kept in memory
#
# Default: 512
#
#pageCacheSize: 512

# mangadesk logs file
# If not defined, logs to stderr only
# Make sure to use forward slashes and include the filename with extension. e.g. "logs/mangadesk.log", "C:/mangadesk/logs/mangadesk.log"
#
# Optional
#
#logPath: ""

# Log level
#
# Default: "INFO"
#
# Options: "ERROR", "DEBUG", "INFO", "WARN", "TRACE"
#
logLevel: "INFO"

# Log Max Size
#
# Default: 50
#
# Max log size in megabytes
#
#logMaxSize: 50

# Log Max Backups
#
# Default: 3
#
# Max amount of old log files
#
#logMaxBackups: 3
`

func (c *AppConfig) writeConfig(configPath string, configFile string) error {
	cfgPath := filepath.Join(configPath, configFile)

	// check if configPath exists, if not create it
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		err := os.MkdirAll(configPath, 0o700)
		if err != nil {
			log.Println(err)
			return err
		}
	}

	// check if config exists, if not create it
	if _, err := os.Stat(cfgPath); errors.Is(err, os.ErrNotExist) {
		f, err := os.OpenFile(cfgPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
		if err != nil {
			log.Printf("error creating file: %q", err)
			return err
		}
		defer f.Close()

		if _, err = f.WriteString(configTemplate); err != nil {
			log.Printf("error writing contents to file: %v %q", configPath, err)
			return err
		}

		return f.Sync()
	}

	return nil
}

type Config interface {
	UpdateConfig() error
	DynamicReload(log logger.Logger)
}

// AppConfig is the viper-backed settings store. It implements domain.Store;
// writes rewrite only the affected line of config.yaml so comments survive.
type AppConfig struct {
	Config *domain.Config
	m      *sync.Mutex
	v      *viper.Viper
}

func New(configPath string, version string) *AppConfig {
	c := &AppConfig{
		m: new(sync.Mutex),
		v: viper.New(),
	}
	c.defaults()

	configPath = resolveConfigPath(configPath)

	c.Config = &domain.Config{
		Version:    version,
		ConfigPath: configPath,
	}

	c.load(configPath)
	c.loadFromEnv()

	return c
}

// resolveConfigPath picks the --config directory, else the first default
// location that already holds a config file, else the user config dir.
func resolveConfigPath(configPath string) string {
	if configPath != "" {
		// clean trailing slash from configPath
		return path.Clean(configPath)
	}

	home, _ := os.UserHomeDir()
	userConfig, err := os.UserConfigDir()
	if err != nil {
		userConfig = filepath.Join(home, ".config")
	}

	candidates := []string{
		filepath.Join(userConfig, "mangadesk"),
		filepath.Join(home, ".mangadesk"),
	}
	for _, dir := range candidates {
		if _, err := os.Stat(filepath.Join(dir, configFile)); err == nil {
			return dir
		}
	}

	return candidates[0]
}

func (c *AppConfig) defaults() {
	c.v.SetDefault("baseURL", "https://api.mangadex.org")
	c.v.SetDefault(domain.KeyRefreshToken, "")
	c.v.SetDefault(domain.KeyUsername, "")
	c.v.SetDefault(domain.KeyContentRating, []string{string(domain.ContentRatingSafe), string(domain.ContentRatingSuggestive)})
	c.v.SetDefault(domain.KeyLocale, domain.DefaultLocale)
	c.v.SetDefault(domain.KeyMangaLimit, domain.DefaultMangaLimit)
	c.v.SetDefault(domain.KeyChapterLimit, domain.DefaultChapterLimit)
	c.v.SetDefault("pageCacheSize", 512)
	c.v.SetDefault("logPath", "")
	c.v.SetDefault("logLevel", "INFO")
	c.v.SetDefault("logMaxSize", 50)
	c.v.SetDefault("logMaxBackups", 3)
}

func (c *AppConfig) loadFromEnv() {
	prefix := "MANGADESK__"

	envs := os.Environ()
	for _, env := range envs {
		if strings.HasPrefix(env, prefix) {
			envPair := strings.SplitN(env, "=", 2)

			if envPair[1] != "" {
				switch envPair[0] {
				case prefix + "BASE_URL":
					c.Config.BaseURL = envPair[1]
					c.v.Set("baseURL", envPair[1])
				case prefix + "LOCALE":
					c.Config.Locale = envPair[1]
					c.v.Set(domain.KeyLocale, envPair[1])
				case prefix + "CONTENT_RATING":
					ratings := splitList(envPair[1])
					c.Config.ContentRating = ratings
					c.v.Set(domain.KeyContentRating, ratings)
				case prefix + "MANGA_LIMIT":
					if i, _ := strconv.ParseInt(envPair[1], 10, 32); i > 0 {
						c.Config.MangaLimit = int(i)
						c.v.Set(domain.KeyMangaLimit, int(i))
					}
				case prefix + "CHAPTER_LIMIT":
					if i, _ := strconv.ParseInt(envPair[1], 10, 32); i > 0 {
						c.Config.ChapterLimit = int(i)
						c.v.Set(domain.KeyChapterLimit, int(i))
					}
				case prefix + "LOG_LEVEL":
					c.Config.LogLevel = envPair[1]
				case prefix + "LOG_PATH":
					c.Config.LogPath = envPair[1]
				case prefix + "LOG_MAX_SIZE":
					if i, _ := strconv.ParseInt(envPair[1], 10, 32); i > 0 {
						c.Config.LogMaxSize = int(i)
					}
				case prefix + "LOG_MAX_BACKUPS":
					if i, _ := strconv.ParseInt(envPair[1], 10, 32); i > 0 {
						c.Config.LogMaxBackups = int(i)
					}
				}
			}
		}
	}
}

func (c *AppConfig) load(configPath string) {
	c.v.SetConfigType("yaml")

	// check if path and file exists
	// if not, create path and file
	if err := c.writeConfig(configPath, configFile); err != nil {
		log.Printf("write error: %q", err)
	}

	c.v.SetConfigFile(filepath.Join(configPath, configFile))

	// read config
	if err := c.v.ReadInConfig(); err != nil {
		log.Printf("config read error: %q", err)
	}

	if err := c.v.Unmarshal(c.Config); err != nil {
		log.Fatalf("Could not unmarshal config file: %v: err %q", c.v.ConfigFileUsed(), err)
	}
}

func (c *AppConfig) DynamicReload(log logger.Logger) {
	c.v.OnConfigChange(func(_ fsnotify.Event) {
		c.m.Lock()
		defer c.m.Unlock()

		logLevel := c.v.GetString("logLevel")
		c.Config.LogLevel = logLevel
		log.SetLogLevel(c.Config.LogLevel)

		logPath := c.v.GetString("logPath")
		c.Config.LogPath = logPath

		log.Debug().Msg("config file reloaded!")
	})

	c.v.WatchConfig()
}

// UpdateConfig makes sure the log settings are present in config files
// written by older versions.
func (c *AppConfig) UpdateConfig() error {
	c.m.Lock()
	defer c.m.Unlock()

	return c.rewrite(func(lines []string) []string {
		return c.processLines(lines)
	})
}

func (c *AppConfig) processLines(lines []string) []string {
	// keep track of not found values to append at bottom
	var (
		foundLineLogLevel = false
		foundLineLogPath  = false
	)

	for i, line := range lines {
		if !foundLineLogLevel && isKeyLine(line, "logLevel") {
			lines[i] = fmt.Sprintf(`logLevel: "%s"`, c.Config.LogLevel)
			foundLineLogLevel = true
		}
		if !foundLineLogPath && isKeyLine(line, "logPath") {
			if c.Config.LogPath == "" {
				lines[i] = `#logPath: ""`
			} else {
				lines[i] = fmt.Sprintf(`logPath: "%s"`, c.Config.LogPath)
			}
			foundLineLogPath = true
		}
	}

	if !foundLineLogLevel {
		lines = append(lines, "# Log level")
		lines = append(lines, "#")
		lines = append(lines, `# Default: "INFO"`)
		lines = append(lines, "#")
		lines = append(lines, `# Options: "ERROR", "DEBUG", "INFO", "WARN", "TRACE"`)
		lines = append(lines, "#")
		lines = append(lines, fmt.Sprintf(`logLevel: "%s"`, c.Config.LogLevel))
	}

	if !foundLineLogPath {
		lines = append(lines, "# Log Path")
		lines = append(lines, "#")
		lines = append(lines, "# Optional")
		lines = append(lines, "#")
		if c.Config.LogPath == "" {
			lines = append(lines, `#logPath: ""`)
		} else {
			lines = append(lines, fmt.Sprintf(`logPath: "%s"`, c.Config.LogPath))
		}
	}

	return lines
}

func (c *AppConfig) GetString(key string) string {
	return c.v.GetString(key)
}

func (c *AppConfig) GetInt(key string) int {
	return c.v.GetInt(key)
}

func (c *AppConfig) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// Set stores value under key and persists it to config.yaml.
func (c *AppConfig) Set(key string, value any) error {
	c.m.Lock()
	defer c.m.Unlock()

	c.v.Set(key, value)

	switch key {
	case domain.KeyRefreshToken:
		c.Config.RefreshToken = c.v.GetString(key)
	case domain.KeyUsername:
		c.Config.Username = c.v.GetString(key)
	}

	rendered := fmt.Sprintf("%s: %s", key, renderValue(value))

	return c.rewrite(func(lines []string) []string {
		return setLine(lines, key, rendered)
	})
}

func (c *AppConfig) rewrite(edit func(lines []string) []string) error {
	filePath := filepath.Join(c.Config.ConfigPath, configFile)

	f, err := os.ReadFile(filePath)
	if err != nil {
		return errors.Wrapf(err, "could not read config file: %s", filePath)
	}

	lines := strings.Split(string(f), "\n")
	lines = edit(lines)

	output := strings.Join(lines, "\n")
	if err := os.WriteFile(filePath, []byte(output), 0o600); err != nil {
		return errors.Wrapf(err, "could not write config file: %s", filePath)
	}

	return nil
}

// setLine replaces the (possibly commented out) line for key, dropping any
// block-style continuation lines that belonged to the old value.
func setLine(lines []string, key, rendered string) []string {
	for i, line := range lines {
		if !isKeyLine(line, key) {
			continue
		}

		end := i + 1
		for end < len(lines) && isContinuation(lines[end]) {
			end++
		}

		out := append([]string{}, lines[:i]...)
		out = append(out, rendered)
		return append(out, lines[end:]...)
	}

	if n := len(lines); n > 0 && lines[n-1] == "" {
		return append(lines[:n-1], rendered, "")
	}
	return append(lines, rendered)
}

func isKeyLine(line, key string) bool {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimPrefix(trimmed, "#")
	return strings.HasPrefix(trimmed, key+":")
}

func isContinuation(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	return strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") || strings.HasPrefix(line, "-")
}

func renderValue(value any) string {
	switch v := value.(type) {
	case string:
		return strconv.Quote(v)
	case []string:
		quoted := make([]string, 0, len(v))
		for _, s := range v {
			quoted = append(quoted, strconv.Quote(s))
		}
		return "[" + strings.Join(quoted, ", ") + "]"
	default:
		return fmt.Sprint(v)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
