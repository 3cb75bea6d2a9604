package main

import (
	"net/http"
	"time"

	"github.com/openbingo/board-server/config"
	"github.com/openbingo/board-server/routes"
	"github.com/openbingo/board-server/services"
	"github.com/openbingo/board-server/utils/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// setupRouter initializes Gin routes and middleware
func setupRouter(cfg *config.Config, engine *services.Engine) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Board-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup REST routes
	routes.SetupRoutes(r, engine)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket push channel
	r.GET("/ws", services.HandleWebSocket(engine))

	return r
}

func main() {
	cfg := config.Load()

	engine := services.NewEngine(cfg)

	stop := make(chan struct{})
	defer close(stop)
	go engine.RunPatternCycler(stop)

	router := setupRouter(cfg, engine)

	logger.Infof("bingo board server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Errorf("failed to start server: %v", err)
	}
}
