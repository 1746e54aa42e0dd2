package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/transport/http/middleware"
	"github.com/rs/zerolog"
)

type RouterConfig struct {
	Engine         *EngineHandler
	Games          *GameHandler
	Watch          *WatchHandler
	WebSocket      gin.HandlerFunc
	AllowedOrigins []string
	RateLimiter    *middleware.RateLimiter
	Logger         zerolog.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger(cfg.Logger), gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if cfg.RateLimiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{cfg.RateLimiter.Middleware(), h}
	}

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	router.POST("/api/engine/move", limited(cfg.Engine.BestMove)...)

	router.POST("/api/games", limited(cfg.Games.CreateGame)...)
	router.GET("/api/games", cfg.Watch.GetLiveGames)
	router.GET("/api/games/:id", cfg.Games.GetGame)
	router.POST("/api/games/:id/moves", limited(cfg.Games.MakeMove)...)
	router.POST("/api/games/:id/reset", limited(cfg.Games.ResetGame)...)
	router.DELETE("/api/games/:id", cfg.Games.DeleteGame)

	if cfg.WebSocket != nil {
		router.GET("/ws/games/:id", cfg.WebSocket)
	}

	return router
}
