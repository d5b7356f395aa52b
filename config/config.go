package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Log          Logger       `mapstructure:"logger"`
	API          API          `mapstructure:"api"`
	YahooFinance YahooFinance `mapstructure:"yahoo_finance"`
	IRBank       IRBank       `mapstructure:"irbank"`
	Storage      Storage      `mapstructure:"storage"`
	Cache        Cache        `mapstructure:"cache"`
	History      History      `mapstructure:"history"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type API struct {
	Port int `mapstructure:"port"`
}

type YahooFinance struct {
	ChartBaseURL        string        `mapstructure:"chart_base_url"`
	QuoteSummaryBaseURL string        `mapstructure:"quote_summary_base_url"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	MarketSuffix        string        `mapstructure:"market_suffix"`
	MaxRetries          int           `mapstructure:"max_retries"`
	RetryBaseDelay      time.Duration `mapstructure:"retry_base_delay"`
	CourtesyDelay       time.Duration `mapstructure:"courtesy_delay"`
}

type IRBank struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Storage struct {
	DataDir     string `mapstructure:"data_dir"`
	HistoryFile string `mapstructure:"history_file"`
	RankingFile string `mapstructure:"ranking_file"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

type History struct {
	MaxEntries int `mapstructure:"max_entries"`
}

func Load() (*Config, error) {
	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("yahoo_finance.chart_base_url", "https://query1.finance.yahoo.com/v8/finance/chart")
	viper.SetDefault("yahoo_finance.quote_summary_base_url", "https://query1.finance.yahoo.com/v10/finance/quoteSummary")
	viper.SetDefault("yahoo_finance.timeout", 10*time.Second)
	viper.SetDefault("yahoo_finance.max_request_per_minute", 30)
	viper.SetDefault("yahoo_finance.market_suffix", ".T")
	viper.SetDefault("yahoo_finance.max_retries", 3)
	viper.SetDefault("yahoo_finance.retry_base_delay", 2*time.Second)
	viper.SetDefault("yahoo_finance.courtesy_delay", 1*time.Second)
	viper.SetDefault("irbank.base_url", "https://irbank.net")
	viper.SetDefault("irbank.timeout", 10*time.Second)
	viper.SetDefault("storage.data_dir", "data")
	viper.SetDefault("storage.history_file", "analysis_history.json")
	viper.SetDefault("storage.ranking_file", "monthly_ranking.json")
	viper.SetDefault("cache.default_expiration", 5*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 10*time.Minute)
	viper.SetDefault("history.max_entries", 100)
}
