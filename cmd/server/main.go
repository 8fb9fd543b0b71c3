package main

import (
	"context"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/docesofia/storefront/internal/server"
	"github.com/docesofia/storefront/modules/core/infrastructure/persistence"
	"github.com/docesofia/storefront/pkg/composables"
	"github.com/docesofia/storefront/pkg/configuration"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Pool:          pool,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}

	go startSessionCleanup(pool, logger)

	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func startSessionCleanup(pool *pgxpool.Pool, logger *logrus.Logger) {
	ctx := composables.WithPool(context.Background(), pool)
	sessions := persistence.NewSessionRepository()
	for range time.Tick(time.Hour) {
		if err := sessions.DeleteExpired(ctx); err != nil {
			logger.WithError(err).Warn("failed to delete expired sessions")
		}
	}
}
