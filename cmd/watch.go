package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/ai"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/ai/gemini"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/dedup"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/logger"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/matching"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/notify"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/profile"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/scheduler"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/scraper"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/secrets"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/store"
	"github.com/mohamedazizhadjkacem/AI-Internship-Assistant/internal/tracker"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the polling loop: scrape, score, deduplicate and notify",
	Run: func(cmd *cobra.Command, _ []string) {
		watch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Bool("once", false, "run a single cycle and exit")
	watchCmd.Flags().Bool("dry-run", false, "use an in-memory store and log notifications instead of sending them")
}

func watch(cmd *cobra.Command) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		zlog.Fatal("getting a config", zap.Error(err))
	}

	zlog.Info("starting the internship-assistant", zap.String("version", version))

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	zlog.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	if config == nil {
		zlog.Fatal("config is required")
	}
	if config.User == "" {
		zlog.Fatal("user id is required under the 'user' key")
	}
	if config.ProfileFile == "" {
		zlog.Fatal("profile file is required under the 'profile-file' key")
	}

	dryRun := cmd.Flag("dry-run").Value.String() == "true"

	st, closeStore, err := buildStore(ctx, config, dryRun)
	if err != nil {
		zlog.Fatal("connecting to the store", zap.Error(err))
	}
	defer closeStore()

	cache := buildSeenCache(config, zlog)
	notifier, err := buildNotifier(config, dryRun, zlog)
	if err != nil {
		zlog.Fatal("building the notifier", zap.Error(err))
	}
	scrapers, err := buildScrapers(config, zlog)
	if err != nil {
		zlog.Fatal("building job sources", zap.Error(err))
	}
	drafter, err := buildDrafter(ctx, config.AI, zlog)
	if err != nil {
		zlog.Warn("skipping draft generation", zap.Error(err))
	}

	interval := scheduler.DefaultInterval
	maxQueries, maxResults := 0, 0
	if config.Poll != nil {
		if config.Poll.Interval != "" {
			interval, err = time.ParseDuration(config.Poll.Interval)
			if err != nil {
				zlog.Fatal("parsing poll.interval", zap.Error(err))
			}
		}
		maxQueries = config.Poll.MaxQueries
		maxResults = config.Poll.MaxResults
	}

	engine := &scheduler.Engine{
		UserID:     config.User,
		Profiles:   &profile.FileSource{Path: config.ProfileFile},
		Scrapers:   scrapers,
		Gate:       dedup.New(st, cache, zlog),
		Tracker:    tracker.New(st, zlog),
		Notifier:   notifier,
		Drafter:    drafter,
		MaxQueries: maxQueries,
		MaxResults: maxResults,
		Logger:     zlog,
	}
	if config.Scoring != nil {
		engine.Weights = matching.Weights{
			Technical:  config.Scoring.TechnicalWeight,
			Experience: config.Scoring.ExperienceWeight,
			Education:  config.Scoring.EducationWeight,
		}
		engine.ProbabilityCeiling = config.Scoring.ProbabilityCeiling
	}

	sched := scheduler.New(engine, interval, zlog)

	if cmd.Flag("once").Value.String() == "true" {
		if _, err := sched.RunOnce(ctx); err != nil {
			zlog.Fatal("cycle failed", zap.Error(err))
		}
		return
	}

	if err := sched.Start(ctx); err != nil {
		zlog.Fatal("starting the scheduler", zap.Error(err))
	}

	<-ctx.Done()
	zlog.Info("shutting down", zap.String("reason", "signal received"))
	sched.Stop()
}

func buildStore(ctx context.Context, config *Config, dryRun bool) (store.Store, func(), error) {
	if dryRun {
		return store.NewMemory(), func() {}, nil
	}

	if config.Store == nil || config.Store.DSN == "" {
		return nil, nil, fmt.Errorf("store.dsn is required (or DATABASE_URL)")
	}

	pg, err := store.NewPostgres(ctx, config.Store.DSN)
	if err != nil {
		return nil, nil, err
	}
	return pg, pg.Close, nil
}

func buildSeenCache(config *Config, zlog *zap.Logger) *dedup.SeenCache {
	if config.Redis == nil || config.Redis.URL == "" {
		return nil
	}

	opts, err := redis.ParseURL(config.Redis.URL)
	if err != nil {
		zlog.Warn("invalid redis url, running without the seen-cache", zap.Error(err))
		return nil
	}

	return dedup.NewSeenCache(redis.NewClient(opts), 0, zlog)
}

func buildNotifier(config *Config, dryRun bool, zlog *zap.Logger) (notify.Notifier, error) {
	if dryRun {
		return notify.NewConsole(zlog), nil
	}

	if config.Telegram == nil || config.Telegram.ChatID == "" {
		return nil, fmt.Errorf("telegram.chat-id is required")
	}

	token, err := secrets.Load(secrets.Source{
		Name: "telegram bot token",
		File: config.Telegram.TokenFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set telegram.token-file or TELEGRAM_TOKEN_FILE)", err)
	}

	return notify.NewTelegram(token, config.Telegram.ChatID, zlog), nil
}

func buildScrapers(config *Config, zlog *zap.Logger) ([]scraper.Scraper, error) {
	sources := []string{"linkedin"}
	fetchDescriptions := false
	if config.Scraper != nil {
		if len(config.Scraper.Sources) > 0 {
			sources = config.Scraper.Sources
		}
		fetchDescriptions = config.Scraper.FetchDescriptions
	}

	var scrapers []scraper.Scraper
	for _, source := range sources {
		switch strings.ToLower(strings.TrimSpace(source)) {
		case "linkedin":
			l := scraper.NewLinkedIn(zlog)
			l.FetchDescriptions = fetchDescriptions
			scrapers = append(scrapers, l)
		case "adzuna":
			if config.Scraper == nil || config.Scraper.Adzuna == nil {
				return nil, fmt.Errorf("scraper.adzuna configuration is required for the adzuna source")
			}
			appKey, err := secrets.Load(secrets.Source{
				Name: "adzuna app key",
				File: config.Scraper.Adzuna.AppKeyFile,
			})
			if err != nil {
				return nil, err
			}
			scrapers = append(scrapers, scraper.NewAdzuna(
				config.Scraper.Adzuna.AppID, appKey, config.Scraper.Adzuna.Country, zlog,
			))
		default:
			return nil, fmt.Errorf("unsupported job source: %s", source)
		}
	}

	return scrapers, nil
}

func buildDrafter(ctx context.Context, cfg *AIConfig, zlog *zap.Logger) (ai.Drafter, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
	if cfg.Gemini == nil {
		return nil, fmt.Errorf("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.Gemini.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file or GEMINI_API_KEY_FILE)", err)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model)
	if err != nil {
		return nil, err
	}

	drafterLogger := logger.WithFields(zlog,
		zap.String("provider", "gemini"),
		zap.String("model", generator.Model()),
	)

	return gemini.NewDrafter(generator, drafterLogger, cfg.Gemini.MaxLogLength), nil
}
