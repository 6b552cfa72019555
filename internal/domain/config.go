package domain

type Config struct {
	Version       string
	ConfigPath    string
	BaseURL       string   `yaml:"baseURL"`
	RefreshToken  string   `yaml:"refreshToken"`
	Username      string   `yaml:"username"`
	ContentRating []string `yaml:"contentRating"`
	Locale        string   `yaml:"locale"`
	MangaLimit    int      `yaml:"mangaLimit"`
	ChapterLimit  int      `yaml:"chapterLimit"`
	PageCacheSize int      `yaml:"pageCacheSize"`
	LogPath       string   `yaml:"logPath"`
	LogLevel      string   `yaml:"LogLevel"`
	LogMaxSize    int      `yaml:"logMaxSize"` // in megabytes
	LogMaxBackups int      `yaml:"logMaxBackups"`
}
