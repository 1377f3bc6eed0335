package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/broker"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/cache"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/config"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/hash"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/identity"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/logger"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/mail"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/store"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/token"
	"github.com/nikitosikvn1/intelligent-image-analyzer/internal/workerpool"
)

func main() {
	config.Load()
	logger.Init()
	log := logger.WithComponent("identity_main")

	db, err := config.NewDB(config.DBDSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	redisClient, err := config.NewRedisClient()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	brokerCfg := config.BrokerConfigFromEnv()
	conn, ch, err := config.NewBrokerConnection(brokerCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to broker")
	}
	defer conn.Close()
	defer ch.Close()

	codec, err := token.NewCodecFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize token codec")
	}

	mailer, err := mail.NewSMTPDispatcher(config.MailConfigFromEnv())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize mail dispatcher")
	}

	hasher := hash.New()
	defer hasher.Close()

	svc := identity.NewService(
		store.NewStorage(db),
		cache.NewTokenCache(redisClient),
		hasher,
		codec,
		mailer,
	)

	pool := workerpool.New(runtime.NumCPU() * 2)
	defer pool.Stop()

	server := broker.NewServer(ch, brokerCfg.Queue, svc, pool)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := server.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start broker consumer")
	}
	log.Info().Str("queue", brokerCfg.Queue).Msg("Identity service is consuming")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")

	// Cancel the consumer first so no new deliveries are picked up, then the
	// deferred closes drain the channel, connection and pool.
	cancel()
	log.Info().Msg("Identity service stopped")
}
