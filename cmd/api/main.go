package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/GoldFish88/pollmph/db"
	"github.com/GoldFish88/pollmph/internal/handler"
	"github.com/GoldFish88/pollmph/internal/repository"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	pool, err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer pool.Close()

	propositionRepo := repository.NewPropositionRepository(pool)
	propositionHandler := handler.NewPropositionHandler(propositionRepo)

	sentimentRepo := repository.NewSentimentRepository(pool)
	trendHandler := handler.NewTrendHandler(sentimentRepo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/trends", trendHandler.GetTrends)
	r.GET("/trends/:id", trendHandler.GetTrend)
	r.GET("/propositions", propositionHandler.GetPropositions)
	r.GET("/propositions/:id", propositionHandler.GetProposition)
	r.GET("/propositions/:id/sentiments", trendHandler.GetSentiments)
	r.POST("/propositions", propositionHandler.CreateProposition)
	r.POST("/propositions/:id/archive", propositionHandler.ArchiveProposition)
	r.GET("/health", propositionHandler.GetHealth)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
