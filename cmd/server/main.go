package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"homematch/internal/config"
	"homematch/internal/handler"
	"homematch/internal/index"
	"homematch/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	log.Printf("HomeMatch listing search")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(cfg.Server.GinMode)

	// Initialize LLM client
	aiClient := service.NewOpenAIClient(&cfg.OpenAI)
	if cfg.OpenAI.Enabled {
		log.Printf("OpenAI client initialized")
		log.Printf("   - API Base: %s", cfg.OpenAI.APIBase)
		log.Printf("   - Chat model: %s", cfg.OpenAI.ChatModel)
		log.Printf("   - Embedding model: %s", cfg.OpenAI.EmbeddingModel)
	} else {
		log.Println("OpenAI is disabled - constraint extraction and generation will not work")
		log.Println("Set OPENAI_API_KEY environment variable to enable LLM features")
	}

	// Initialize the vector index store
	var store index.Store
	switch cfg.Index.Backend {
	case "memory":
		store = index.NewMemory(aiClient)
		log.Println("Using in-memory vector index")
	default:
		pg, err := index.NewPgvector(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
			aiClient,
			cfg.Index.Table,
			cfg.OpenAI.EmbeddingDimensions,
		)
		if err != nil {
			log.Fatalf("Failed to connect to vector index: %v", err)
		}
		defer pg.Close()
		store = pg
		log.Println("Connected to pgvector index")
	}

	// Initialize services
	reranker := service.NewReranker(cfg.Rerank.MetadataPenalty, cfg.Rerank.AmenityPenalty)
	retriever := service.NewRetriever(store, reranker, cfg.Retrieval.Overfetch)
	constraints := service.NewConstraintExtractor(aiClient)
	personalizer := service.NewPersonalizer(aiClient)
	matcher := service.NewMatcher(store, constraints, retriever, personalizer)
	ingestor := service.NewIngestor(store, cfg.Index.ListingsFile)
	generator := service.NewListingGenerator(aiClient)

	log.Println("Services initialized")

	// Initialize handlers
	searchHandler := handler.NewSearchHandler(matcher, cfg.Retrieval.DefaultN, cfg.Retrieval.MaxN)
	ingestHandler := handler.NewIngestHandler(ingestor)
	generateHandler := handler.NewGenerateHandler(generator, cfg.Index.ListingsFile, 20)

	// Setup Gin router
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "homematch",
			"version": Version,
		})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/search", searchHandler.Search)
		apiV1.GET("/listings/:id", searchHandler.GetListing)
		apiV1.POST("/ingest", ingestHandler.Ingest)
		apiV1.POST("/generate", generateHandler.Generate)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting server on %s", addr)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	log.Println("Server stopped")
}
