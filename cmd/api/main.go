package main

import (
	"log"
	"log/slog"
	"os"

	"stockdash/db"
	"stockdash/internal/aggregator"
	"stockdash/internal/handler"
	"stockdash/internal/jobs"
	"stockdash/internal/repository"
	"stockdash/internal/search"
	"stockdash/pkg/news"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
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

	err = db.Migrate()
	if err != nil {
		log.Fatalf("error migrating DB: %v", err)
	}

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	finnhubClient := news.NewFinnHubClient(os.Getenv("FINNHUB_API_KEY"))

	var newsClient news.NewsClient = finnhubClient
	if os.Getenv("NEWS_CACHE") != "off" {
		newsClient = news.NewCachedClient(finnhubClient, db.Redis)
	}

	newsAggregator := aggregator.New(newsClient)
	searchService := search.NewService(finnhubClient)

	userRepo := repository.NewUserRepository(db.DB)
	watchlistRepo := repository.NewWatchlistRepository(db.DB)
	eventQueue := jobs.NewQueue(db.Redis, db.EventQueueKey, db.DeadLetterKey)
	sessions := handler.NewRedisSessionValidator(db.Redis, db.SessionKeyPrefix)

	healthHandler := handler.NewHealthHandler(userRepo)
	newsHandler := handler.NewNewsHandler(newsAggregator, watchlistRepo)
	searchHandler := handler.NewSearchHandler(func() handler.StockSearcher { return searchService.NewScope() }, watchlistRepo)
	watchlistHandler := handler.NewWatchlistHandler(watchlistRepo)
	authHandler := handler.NewAuthHandler(userRepo, eventQueue)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
	}))

	r.GET("/health", healthHandler.GetHealth)
	r.GET("/news", newsHandler.GetNews)
	r.GET("/search", handler.OptionalSessionAuth(sessions), searchHandler.Search)
	r.POST("/auth/sign-up", authHandler.SignUp)

	watchlist := r.Group("/watchlist", handler.SessionAuth(sessions))
	watchlist.GET("", watchlistHandler.GetWatchlist)
	watchlist.POST("", watchlistHandler.AddToWatchlist)
	watchlist.DELETE("/:symbol", watchlistHandler.RemoveFromWatchlist)
	watchlist.GET("/news", newsHandler.GetWatchlistNews)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	err = r.Run(":" + port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
