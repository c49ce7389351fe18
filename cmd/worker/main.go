package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"stockdash/db"
	"stockdash/internal/aggregator"
	"stockdash/internal/jobs"
	"stockdash/internal/model"
	"stockdash/internal/repository"
	"stockdash/pkg/llm"
	"stockdash/pkg/mailer"
	"stockdash/pkg/news"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		log.Fatalf("invalid SMTP_PORT: %v", err)
	}

	sender, err := mailer.NewSMTPSender(os.Getenv("SMTP_HOST"), smtpPort, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"), os.Getenv("MAIL_FROM"))
	if err != nil {
		log.Fatalf("error creating mailer: %v", err)
	}

	completer := llm.NewCompleter(os.Getenv("LLM_PROVIDER"), os.Getenv("OPENAI_API_KEY"), os.Getenv("ANTHROPIC_API_KEY"))
	writer := llm.NewWriter(completer)
	slog.Info("using model", "model", writer.ModelName())

	var newsClient news.NewsClient = news.NewFinnHubClient(os.Getenv("FINNHUB_API_KEY"))
	if os.Getenv("NEWS_CACHE") != "off" {
		newsClient = news.NewCachedClient(newsClient, db.Redis)
	}

	userRepo := repository.NewUserRepository(db.DB)
	watchlistRepo := repository.NewWatchlistRepository(db.DB)

	welcome := jobs.NewWelcomeEmail(userRepo, writer, sender, os.Getenv("FRONTEND_URL"))
	digest := jobs.NewDigest(userRepo, watchlistRepo, aggregator.New(newsClient), writer, sender)

	runner := jobs.NewRunner(jobs.NewQueue(db.Redis, db.EventQueueKey, db.DeadLetterKey))
	runner.Handle(model.UserCreatedEvent, welcome.Handle)
	runner.Handle(model.DailyNewsEvent, digest.Handle)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("worker started", "queue", db.EventQueueKey)

	if err := runner.Run(ctx); err != nil {
		slog.Error("worker stopped", "error", err)
		return
	}

	slog.Info("worker shut down")
}
