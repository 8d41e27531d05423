package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"tweetsense/internal/adapters/language"
	"tweetsense/internal/adapters/twitter"
	"tweetsense/internal/adapters/web"
	"tweetsense/internal/config"
	"tweetsense/internal/usecases"
	"tweetsense/pkg/log"
	"tweetsense/pkg/log/transporters"
)

const configPath = "config/gateway.yaml"

func main() {
	logger := log.New(log.Info, transporters.NewStdout()).With("service", "tweetsense")
	log.SetDefault(logger)
	defer logger.Close()

	cfg, err := config.LoadFromEnv(configPath)
	if err != nil {
		fatal("failed to load config", "path", configPath, "error", err)
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		log.GlobalWarn("unknown log level, using info", "level", cfg.Log.Level)
	}
	logger.SetLevel(level)

	if err := cfg.Validate(); err != nil {
		fatal("invalid config", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize adapters
	tweetClient := twitter.NewClient(cfg.Twitter)
	sentimentClient, err := language.NewClient(ctx, cfg.Language)
	if err != nil {
		fatal("failed to create language client", "error", err)
	}
	defer sentimentClient.Close()

	// Initialize use cases
	analyzeTweetUC := usecases.NewAnalyzeTweetUseCase(tweetClient)
	analyzeSentimentUC := usecases.NewAnalyzeSentimentUseCase(sentimentClient)

	handlers := web.NewHandlers(analyzeTweetUC, analyzeSentimentUC)

	app := fiber.New(web.AppConfig())

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New(web.RequestIDConfig()))
	app.Use(web.RequestIDToContextMiddleware())
	app.Use(web.RequestLoggerMiddleware())
	app.Use(cors.New(web.CORSConfig(cfg.Server.ClientURL)))

	web.SetupRoutes(app, handlers)

	go func() {
		<-ctx.Done()
		log.GlobalInfo("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			log.GlobalError("shutdown failed", "error", err)
		}
	}()

	log.GlobalInfo("server listening", "addr", cfg.Server.Addr(), "twitter_base_url", cfg.Twitter.BaseURL)
	if err := app.Listen(cfg.Server.Addr()); err != nil {
		log.GlobalError("server stopped", "error", err)
	}
}

// fatal logs through the default logger, flushes it and exits.
func fatal(msg string, keysAndValues ...any) {
	log.GlobalFatal(msg, keysAndValues...)
	log.Default().Close()
	os.Exit(1)
}
