package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/broker"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/config"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/gateway"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/logger"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/ratelimit"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/vision"
)

func main() {
	config.Load()
	logger.Init()
	log := logger.WithComponent("gateway_main")

	brokerCfg := config.BrokerConfigFromEnv()
	conn, ch, err := config.NewBrokerConnection(brokerCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to broker")
	}
	defer conn.Close()
	defer ch.Close()

	identityClient, err := broker.NewClient(ch, brokerCfg.Queue)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up identity RPC client")
	}

	visionAddr := fmt.Sprintf("%s:%d",
		config.GetString("VISION_HOST", "localhost"),
		config.GetInt("VISION_PORT", 50051),
	)
	captioner, err := vision.Dial(visionAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up vision client")
	}
	defer captioner.Close()

	limiter := ratelimit.New(
		config.GetInt("RATE_LIMIT_CAPACITY", ratelimit.DefaultCapacity),
		config.GetDuration("RATE_LIMIT_WINDOW", ratelimit.DefaultWindow),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	limiter.StartJanitor(ctx, 10*time.Minute)

	gw := gateway.New(identityClient, captioner, limiter)

	addr := fmt.Sprintf(":%d", config.GetInt("GATEWAY_PORT", 8080))
	srv := &http.Server{
		Addr:         addr,
		Handler:      gw.Mount(),
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting gateway")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-serverErrors:
		log.Fatal().Err(err).Msg("Server error")
	case sig := <-quit:
		log.Info().Str("signal", sig.String()).Msg("Received signal, starting graceful shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Gateway stopped")
}
