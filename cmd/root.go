package cmd

import (
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	app = "internship-assistant"
)

type Config struct {
	User        string `mapstructure:"user"`
	ProfileFile string `mapstructure:"profile-file"`

	Store    *StoreConfig    `mapstructure:"store"`
	Redis    *RedisConfig    `mapstructure:"redis"`
	Scraper  *ScraperConfig  `mapstructure:"scraper"`
	Telegram *TelegramConfig `mapstructure:"telegram"`
	Poll     *PollConfig     `mapstructure:"poll"`
	Scoring  *ScoringConfig  `mapstructure:"scoring"`
	AI       *AIConfig       `mapstructure:"ai"`
}

type StoreConfig struct {
	DSN string `mapstructure:"dsn"`
}

type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type ScraperConfig struct {
	// Sources to enable: "linkedin", "adzuna".
	Sources           []string      `mapstructure:"sources"`
	FetchDescriptions bool          `mapstructure:"fetch-descriptions"`
	Adzuna            *AdzunaConfig `mapstructure:"adzuna"`
}

type AdzunaConfig struct {
	AppID      string `mapstructure:"app-id"`
	AppKeyFile string `mapstructure:"app-key-file"`
	Country    string `mapstructure:"country"`
}

type TelegramConfig struct {
	TokenFile string `mapstructure:"token-file"`
	ChatID    string `mapstructure:"chat-id"`
}

type PollConfig struct {
	Interval   string `mapstructure:"interval"`
	MaxQueries int    `mapstructure:"max-queries"`
	MaxResults int    `mapstructure:"max-results"`
}

// ScoringConfig overrides the default score weights (0.40/0.35/0.25) and the
// acceptance-probability ceiling (0.85). Zero values keep the defaults.
type ScoringConfig struct {
	TechnicalWeight    float64 `mapstructure:"technical-weight"`
	ExperienceWeight   float64 `mapstructure:"experience-weight"`
	EducationWeight    float64 `mapstructure:"education-weight"`
	ProbabilityCeiling float64 `mapstructure:"probability-ceiling"`
}

type AIConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "internship-assistant polls job boards, scores postings against your profile and notifies you about new matches",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("telegram.token-file", "TELEGRAM_TOKEN_FILE"); err != nil {
		log.Fatalf("binding TELEGRAM_TOKEN_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("store.dsn", "DATABASE_URL"); err != nil {
		log.Fatalf("binding DATABASE_URL environment variable: %v", err)
	}
	if err := viper.BindEnv("redis.url", "REDIS_URL"); err != nil {
		log.Fatalf("binding REDIS_URL environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is internship-assistant.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	// Config needed only for watch command now. If there is no config, we can skip initialization
	if watchCmd.CalledAs() == "" {
		return
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// We can't proceed if the config file parsed with error.
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}
