package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/example/storefront/internal/apiclient"
	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/infrastructure/kafka"
	"github.com/example/storefront/internal/infrastructure/store"
	"github.com/example/storefront/internal/logx"
	"github.com/example/storefront/internal/storefront"
	"github.com/example/storefront/internal/web"
)

const sweepInterval = time.Minute

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("failed to load configuration")
	}
	logx.Init(logx.LoggerOpts{Environment: cfg.Environment()})
	log := logx.Component("main")

	log.Info().
		Str("env", cfg.Env).
		Str("addr", cfg.HTTPAddr).
		Str("api", cfg.APIBaseURL).
		Dur("api_timeout", cfg.APITimeout).
		Dur("session_ttl", cfg.SessionTTL).
		Str("admin_auth", cfg.Admin.Mode).
		Msg("Brasil Apple storefront")

	// Activity journal, published to Kafka when brokers are configured
	var publisher store.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer producer.Close()
		publisher = producer
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("journal publishing to kafka")
	}
	journal := store.NewEventStore(publisher)

	loop := storefront.NewLoop()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		loop.Run(ctx)
	}()

	sessions := storefront.NewSessions(storefront.Deps{
		Loop: loop,
		NewAPI: func() (storefront.API, error) {
			client, err := apiclient.New(cfg.APIBaseURL, apiclient.WithTimeout(cfg.APITimeout))
			if err != nil {
				return nil, err
			}
			return client, nil
		},
		Admins:  newAuthenticator(cfg.Admin, log),
		Journal: journal,
	}, cfg.SessionTTL)

	wg.Add(1)
	go func() {
		defer wg.Done()
		sessions.Run(ctx, sweepInterval)
	}()

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load templates")
	}
	router := web.NewRouter(web.NewHandlers(sessions, renderer), sessions)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("server started")
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("server shutdown")
	}

	cancel()
	wg.Wait()
}
