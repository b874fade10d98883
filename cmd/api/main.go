package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"meetup-escrow-backend/internal/common/config"
	"meetup-escrow-backend/internal/common/logger"
	"meetup-escrow-backend/internal/common/middleware"
	escrowhttp "meetup-escrow-backend/internal/features/escrow/delivery/http"
	escrowredis "meetup-escrow-backend/internal/features/escrow/repository/redis"
	escrowservice "meetup-escrow-backend/internal/features/escrow/service"
	wallethttp "meetup-escrow-backend/internal/features/wallet/delivery/http"
	walletredis "meetup-escrow-backend/internal/features/wallet/repository/redis"
	walletservice "meetup-escrow-backend/internal/features/wallet/service"
	redisplatform "meetup-escrow-backend/internal/platform/redis"
	"meetup-escrow-backend/internal/platform/ton"
)

func main() {
	// Cancellable root context for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger.Init("meetup-escrow-backend", cfg.Debug)

	rdb, err := redisplatform.Open(ctx, cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis open")
	}
	defer rdb.Close()

	tonClient, err := ton.NewClient(ctx, ton.ClientConfig{
		LiteConfigURL: cfg.Ton.LiteConfigURL,
		WalletSeed:    cfg.Ton.WalletSeed,
		TonAPIBaseURL: cfg.Ton.TonAPIBaseURL,
		TonAPIToken:   cfg.Ton.TonAPIToken,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("ton client open")
	}
	log.Info().Str("escrow_address", tonClient.EscrowAddress()).Msg("escrow wallet ready")

	clock := clockwork.NewRealClock()

	escrowSvc := escrowservice.NewEscrowService(
		escrowredis.NewEscrowRepository(rdb),
		tonClient,
		clock,
		tonClient.EscrowAddress(),
		log.Logger.With().Str("component", "escrow").Logger(),
	)
	walletSvc := walletservice.NewWalletService(
		walletredis.NewWalletRepository(rdb),
		clock,
		log.Logger.With().Str("component", "wallet").Logger(),
	)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.Origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "init_data"},
		AllowCredentials: true,
	}))

	api := router.Group("/api/v1")
	api.Use(middleware.TelegramInitData(cfg.Telegram.BotToken, time.Duration(cfg.Telegram.InitDataTTLSec)*time.Second))
	escrowhttp.NewEscrowHandler(escrowSvc, walletSvc).RegisterRoutes(api)
	wallethttp.NewWalletHandler(walletSvc).RegisterRoutes(api)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
