package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Swissdamed SwissdamedConfig `mapstructure:"swissdamed"`
	Migel      MigelConfig      `mapstructure:"migel"`
	Matcher    MatcherConfig    `mapstructure:"matcher"`
	Deploy     DeployConfig     `mapstructure:"deploy"`
}

type ServerConfig struct {
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	AllowOrigins []string `mapstructure:"allow_origins"`
	MaxUploadMB  int      `mapstructure:"max_upload_mb"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

type SwissdamedConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	PageSize   int           `mapstructure:"page_size"`
	RatePerSec float64       `mapstructure:"rate_per_sec"`
	Timeout    time.Duration `mapstructure:"timeout"`
	UserAgent  string        `mapstructure:"user_agent"`
}

type MigelConfig struct {
	CatalogURL  string `mapstructure:"catalog_url"`
	CatalogFile string `mapstructure:"catalog_file"` // download target, or the source when no URL
	UserAgent   string `mapstructure:"user_agent"`
	Workers     int    `mapstructure:"workers"` // 0 = NumCPU
}

// MatcherConfig mirrors the matcher's tuning options. StopWords replaces the
// built-in list when set; ExtraStopWords is added to whichever list is used.
type MatcherConfig struct {
	MinKeywordLen   int      `mapstructure:"min_keyword_len"`
	MinSecondaryLen int      `mapstructure:"min_secondary_len"`
	FuzzyMinLen     int      `mapstructure:"fuzzy_min_len"`
	SuffixMinExtra  int      `mapstructure:"suffix_min_extra"`
	MultiMinRatio   float64  `mapstructure:"multi_min_ratio"`
	MultiMinMaxLen  int      `mapstructure:"multi_min_max_len"`
	SingleMinRatio  float64  `mapstructure:"single_min_ratio"`
	SingleMinMaxLen int      `mapstructure:"single_min_max_len"`
	StopWords       []string `mapstructure:"stop_words"`
	ExtraStopWords  []string `mapstructure:"extra_stop_words"`
}

type DeployConfig struct {
	SCPTarget string `mapstructure:"scp_target"`
}

var envReplacer = strings.NewReplacer(".", "_")

const DefaultCatalogURL = "https://www.bag.admin.ch/dam/de/sd-web/77j5rwUTzbkq/Mittel-%20und%20Gegenst%C3%A4ndeliste%20per%2001.01.2026%20in%20Excel-Format.xlsx"

// Load reads config.yaml (optional) and SWISSDAMED_* environment variables
// on top of the defaults. configFile, when set, must exist.
func Load(configFile string) (Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("SWISSDAMED")
	v.SetEnvKeyReplacer(envReplacer)
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := validate(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 8082)
	v.SetDefault("server.allow_origins", []string{"*"})
	v.SetDefault("server.max_upload_mb", 256)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "logs/swissdamed.log")

	v.SetDefault("swissdamed.base_url", "https://swissdamed.ch")
	v.SetDefault("swissdamed.page_size", 50)
	v.SetDefault("swissdamed.rate_per_sec", 5)
	v.SetDefault("swissdamed.timeout", "60s")
	v.SetDefault("swissdamed.user_agent", "")

	v.SetDefault("migel.catalog_url", DefaultCatalogURL)
	v.SetDefault("migel.catalog_file", "migel.xlsx")
	v.SetDefault("migel.user_agent", "swissdamed2sqlite/0.1")
	v.SetDefault("migel.workers", 0)

	v.SetDefault("matcher.min_keyword_len", 3)
	v.SetDefault("matcher.min_secondary_len", 8)
	v.SetDefault("matcher.fuzzy_min_len", 7)
	v.SetDefault("matcher.suffix_min_extra", 2)
	v.SetDefault("matcher.multi_min_ratio", 0.3)
	v.SetDefault("matcher.multi_min_max_len", 6)
	v.SetDefault("matcher.single_min_ratio", 0.5)
	v.SetDefault("matcher.single_min_max_len", 10)
	v.SetDefault("matcher.stop_words", []string{})
	v.SetDefault("matcher.extra_stop_words", []string{})

	v.SetDefault("deploy.scp_target", "zdavatz@65.109.137.20:/var/www/pillbox.oddb.org/swissdamed.db")
}

func validate(c Config) error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Swissdamed.PageSize <= 0 {
		return fmt.Errorf("swissdamed.page_size must be positive, got %d", c.Swissdamed.PageSize)
	}
	if c.Matcher.MinKeywordLen < 1 || c.Matcher.MinSecondaryLen < 1 {
		return errors.New("matcher keyword lengths must be at least 1")
	}
	for name, r := range map[string]float64{
		"matcher.multi_min_ratio":  c.Matcher.MultiMinRatio,
		"matcher.single_min_ratio": c.Matcher.SingleMinRatio,
	} {
		if r < 0 || r > 1 {
			return fmt.Errorf("%s must be within [0,1], got %v", name, r)
		}
	}
	if c.Migel.Workers < 0 {
		return fmt.Errorf("migel.workers must not be negative, got %d", c.Migel.Workers)
	}
	return nil
}

func (c Config) Addr() string { return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port) }
