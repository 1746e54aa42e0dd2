package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connect4-engine/internal/config"
	"github.com/iamasit07/connect4-engine/internal/logging"
	"github.com/iamasit07/connect4-engine/internal/service/bot"
	"github.com/iamasit07/connect4-engine/internal/service/cleanup"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	transportHttp "github.com/iamasit07/connect4-engine/internal/transport/http"
	"github.com/iamasit07/connect4-engine/internal/transport/http/middleware"
	"github.com/iamasit07/connect4-engine/internal/transport/websocket"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	envErr := godotenv.Load()
	if envErr != nil {
		envErr = godotenv.Load("../.env")
	}

	cfg := config.LoadConfig()
	logger := logging.Init(cfg.LogLevel, cfg.LogPretty)
	if envErr != nil {
		log.Info().Msg("no .env file found")
	}

	defaultDifficulty, err := bot.ParseDifficulty(cfg.DefaultDifficulty)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to medium difficulty")
		defaultDifficulty = bot.Medium
	}

	if !cfg.LogPretty {
		gin.SetMode(gin.ReleaseMode)
	}

	// Services
	engine := bot.NewEngine(cfg.EngineSeed, logger)
	connManager := websocket.NewConnectionManager(logger)
	sessionManager := game.NewSessionManager(engine, connManager, logger)
	gameService := game.NewService(engine, sessionManager)

	cleanupWorker := cleanup.NewWorker(sessionManager, connManager, cfg.CleanupInterval, cfg.SessionIdle, cfg.SessionFinished, logger)

	// Handlers
	engineHandler := transportHttp.NewEngineHandler(gameService, defaultDifficulty)
	gameHandler := transportHttp.NewGameHandler(sessionManager, defaultDifficulty)
	gameHandler.Disconnector = connManager
	watchHandler := transportHttp.NewWatchHandler(sessionManager)
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg.AllowedOrigins, logger)

	router := transportHttp.NewRouter(transportHttp.RouterConfig{
		Engine:         engineHandler,
		Games:          gameHandler,
		Watch:          watchHandler,
		WebSocket:      wsHandler.HandleGameSocket,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimiter:    middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Uint64("seed", cfg.EngineSeed).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return cleanupWorker.Start(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("server is shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		connManager.CloseAll()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server exited gracefully")
}
