package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"

	"stockdash/db"
	"stockdash/internal/aggregator"
	"stockdash/internal/jobs"
	"stockdash/internal/repository"
	"stockdash/pkg/llm"
	"stockdash/pkg/mailer"
	"stockdash/pkg/news"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	var newsClient news.NewsClient = news.NewFinnHubClient(os.Getenv("FINNHUB_API_KEY"))
	if os.Getenv("NEWS_CACHE") != "off" {
		if err := db.ConnectRedis(); err != nil {
			slog.Warn("redis unavailable, fetching news uncached", "error", err)
		} else {
			defer db.CloseRedis()
			newsClient = news.NewCachedClient(newsClient, db.Redis)
		}
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		log.Fatalf("invalid SMTP_PORT: %v", err)
	}

	sender, err := mailer.NewSMTPSender(os.Getenv("SMTP_HOST"), smtpPort, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), os.Getenv("MAIL_FROM"))
	if err != nil {
		log.Fatalf("error creating mailer: %v", err)
	}

	completer := llm.NewCompleter(os.Getenv("LLM_PROVIDER"), os.Getenv("OPENAI_API_KEY"), os.Getenv("ANTHROPIC_API_KEY"))

	digest := jobs.NewDigest(
		repository.NewUserRepository(db.DB),
		repository.NewWatchlistRepository(db.DB),
		aggregator.New(newsClient),
		llm.NewWriter(completer),
		sender,
	)

	report, err := digest.Run(context.Background())
	if err != nil {
		log.Fatalf("error running news digest: %v", err)
	}

	slog.Info("news digest sent", "users", report.Users, "sent", report.Sent, "skipped", report.Skipped, "failed", report.Failed)
}
