package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"estatecore/internal/cache"
	"estatecore/internal/config"
	"estatecore/internal/handler"
	"estatecore/internal/reelly"
	"estatecore/internal/repository"
	"estatecore/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	log.Printf("Estate Core")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Initialize database connection
	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer repo.Close()

	log.Println("✅ Connected to PostgreSQL database")

	// Optional Redis marker cache
	markerCache := cache.NewMarkerCache(&cfg.Redis)
	if markerCache != nil {
		log.Printf("✅ Marker cache enabled (Redis %s, TTL %ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
		defer markerCache.Close()
	} else {
		log.Println("⚠️  Marker cache disabled - set REDIS_ADDR to enable")
	}

	// Upstream marker feed
	feed := reelly.NewClient(&cfg.Reelly)
	log.Printf("✅ Marker feed client initialized (%s)", cfg.Reelly.BaseURL)

	// Generative text backend
	var generator service.TextGenerator
	if cfg.GenAI.Enabled {
		generator = service.NewGenAIClient(&cfg.GenAI)
		log.Printf("✅ Generative backend initialized")
		log.Printf("   - API Base: %s", cfg.GenAI.APIBase)
		log.Printf("   - Candidate models: %v", cfg.GenAI.Models)
		log.Printf("   - Temperature: %.2f, TopK: %d, TopP: %.2f", cfg.GenAI.Temperature, cfg.GenAI.TopK, cfg.GenAI.TopP)
		log.Printf("   - Timeouts: %ds generate, %ds translate", cfg.GenAI.TimeoutSec, cfg.GenAI.TranslateTimeout)
	} else {
		log.Println("⚠️  Generative backend disabled - general chat falls back to canned replies")
		log.Println("   Set GENAI_API_KEY environment variable to enable it")
	}

	// Initialize services
	ranker := service.NewRanker(0.6, 0.4)
	chatRouter := service.NewChatRouter(repo, generator, ranker, &cfg.Chat, &cfg.GenAI)

	log.Println("✅ Services initialized")

	// Initialize handlers
	chatHandler := handler.NewChatHandler(chatRouter)
	markersHandler := handler.NewMarkersHandler(feed, markerCache, &cfg.Map)
	propertiesHandler := handler.NewPropertiesHandler(repo, feed, &cfg.Search)
	interestHandler := handler.NewInterestHandler(repo)
	embeddingHandler := handler.NewEmbeddingHandler(repo, cfg.PostgreSQL.EmbeddingDim)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":     "healthy",
			"service":    "estate-core",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// API routes
	api := router.Group("/api")
	{
		api.POST("/chat", chatHandler.Chat)
		api.GET("/markers", markersHandler.List)
		api.GET("/properties", propertiesHandler.List)
		api.GET("/properties/:id", propertiesHandler.Get)
		api.POST("/interest", interestHandler.Submit)
		api.POST("/embeddings/batch", embeddingHandler.BatchUpdate)
	}

	// Serve static files (frontend)
	setupStaticFiles(router)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 Chat API: http://localhost:%d/api/chat", cfg.Server.Port)
	log.Printf("🗺  Map data: http://localhost:%d/api/markers", cfg.Server.Port)

	// Graceful shutdown
	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}
