package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/clipnova/clipnova-bot/pkg/converter"
	"github.com/clipnova/clipnova-bot/pkg/database"
	"github.com/clipnova/clipnova-bot/pkg/domain"
	"github.com/clipnova/clipnova-bot/pkg/logger"
	"github.com/clipnova/clipnova-bot/pkg/repository"
	"github.com/clipnova/clipnova-bot/pkg/services"
	"github.com/clipnova/clipnova-bot/pkg/telegram/handlers"
	"github.com/clipnova/clipnova-bot/pkg/telegram/matchers"
	"github.com/clipnova/clipnova-bot/pkg/telegram/middleware"
	"github.com/clipnova/clipnova-bot/pkg/youtube"
	"github.com/go-telegram/bot"
)

type Config struct {
	TelegramBotToken          string        `env:"TELEGRAM_BOT_TOKEN,required"`
	TelegramAuthorizedUserIDs []int64       `env:"TELEGRAM_AUTHORIZED_USER_IDS" envSeparator:" "`
	PgURL                     string        `env:"DATABASE_URL"`
	PgHost                    string        `env:"DB_HOST" envDefault:"localhost:61234"`
	DownloadDir               string        `env:"DOWNLOAD_DIR" envDefault:"tmp/downloads"`
	MaxConcurrentDownloads    int64         `env:"MAX_CONCURRENT_DOWNLOADS" envDefault:"3"`
	DownloadTimeout           time.Duration `env:"DOWNLOAD_TIMEOUT" envDefault:"1h"`
	UserRateLimit             int           `env:"USER_RATE_LIMIT" envDefault:"5"`
	YouTubeProxyURL           string        `env:"YOUTUBE_PROXY_URL"`
	BunDebug                  int           `env:"BUNDEBUG" envDefault:"0"`
}

func main() {
	slog.SetDefault(slog.New(logger.NewHandler(os.Stderr, logger.DefaultOptions)))

	if err := runMain(); err != nil {
		slog.Error("shutting down due to error", logger.Err(err))
		os.Exit(1)
	}
	slog.Info("shutdown complete")
}

func runMain() error {
	ctx, cancelFn := context.WithCancel(context.Background())
	defer cancelFn()

	svcGroup, err := setupServices(ctx)
	if err != nil {
		return err
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGHUP)
		select {
		case s := <-sigCh:
			slog.Info("shutting down due to signal", "signal", s.String())
			cancelFn()
		case <-ctx.Done():
		}
	}()

	return svcGroup.Start(ctx)
}

func setupServices(ctx context.Context) (services.Group, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	var svc services.Service
	var svcGroup services.Group

	db, err := database.NewDB(cfg.PgURL, cfg.PgHost)
	if err != nil {
		return nil, fmt.Errorf("initializing database: %w", err)
	}

	youtubeClient, err := youtube.NewClient(youtube.Config{
		DownloadDir:   cfg.DownloadDir,
		MaxConcurrent: cfg.MaxConcurrentDownloads,
		Timeout:       cfg.DownloadTimeout,
		ProxyURL:      cfg.YouTubeProxyURL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating youtube client: %w", err)
	}

	downloadRepository := repository.NewDownloadRepository(db)
	sessionRepository := repository.NewSessionRepository(domain.DefaultSessionTTL)
	audioExtractor := &converter.AudioExtractor{}

	opts := []bot.Option{
		// process updates concurrently so one slow chat cannot stall the rest
		bot.WithWorkers(8),
		bot.WithMiddlewares(
			middleware.RequestID,
			middleware.Auth(cfg.TelegramAuthorizedUserIDs),
			middleware.Typing,
			middleware.RateLimit(cfg.UserRateLimit),
		),

		bot.WithDefaultHandler(handlers.Unknown()),
		bot.WithMessageTextHandler("/start", bot.MatchTypePrefix, handlers.Start()),
		bot.WithMessageTextHandler("/help", bot.MatchTypePrefix, handlers.Help()),
		bot.WithMessageTextHandler("/cancel", bot.MatchTypePrefix, handlers.Cancel(sessionRepository)),
		bot.WithMessageTextHandler("/history", bot.MatchTypePrefix, handlers.ShowHistory(downloadRepository)),

		bot.WithCallbackQueryDataHandler(domain.SelectFormatCallbackPrefix, bot.MatchTypePrefix, handlers.SelectFormat(sessionRepository)),
		bot.WithCallbackQueryDataHandler(domain.ConfirmDownloadCallback, bot.MatchTypePrefix, handlers.ConfirmDownload(sessionRepository, youtubeClient, audioExtractor, downloadRepository)),
		bot.WithCallbackQueryDataHandler(domain.CancelCallback, bot.MatchTypePrefix, handlers.CancelDownload(sessionRepository)),
	}

	b, err := bot.New(cfg.TelegramBotToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	b.RegisterHandlerMatchFunc(matchers.IsYouTubeURL(), handlers.DownloadRequest(youtubeClient, sessionRepository))

	if svc, err = services.NewTelegramBot(b); err == nil {
		svcGroup = append(svcGroup, svc)
	} else {
		return nil, err
	}

	if svc, err = services.NewScheduler(
		services.Job{
			Name:     "purge expired sessions",
			Interval: 10 * time.Minute,
			Run: func(ctx context.Context) {
				if n := sessionRepository.PurgeExpired(); n > 0 {
					slog.InfoContext(ctx, "expired sessions purged", "count", n)
				}
			},
		},
		services.Job{
			Name:     "purge stale downloads",
			Interval: time.Hour,
			Run: func(ctx context.Context) {
				n, err := youtubeClient.PurgeStaleFiles(cfg.DownloadTimeout)
				if err != nil {
					slog.ErrorContext(ctx, "purging stale downloads", logger.Err(err))
					return
				}
				if n > 0 {
					slog.InfoContext(ctx, "stale downloads purged", "count", n)
				}
			},
		},
	); err == nil {
		svcGroup = append(svcGroup, svc)
	} else {
		return nil, err
	}

	return svcGroup, nil
}
