// Package server boots every backing service and runs the HTTP API until
// the context is cancelled.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/hpfoods/hpfoods-api/app/graph"
	"github.com/hpfoods/hpfoods-api/app/repositories"
	"github.com/hpfoods/hpfoods-api/app/routes"
	"github.com/hpfoods/hpfoods-api/app/services"
	"github.com/hpfoods/hpfoods-api/config"
	"github.com/hpfoods/hpfoods-api/database/migrations"
	"github.com/hpfoods/hpfoods-api/internal/kernel"
	"github.com/hpfoods/hpfoods-api/pkg/auth"
	"github.com/hpfoods/hpfoods-api/pkg/broker"
	"github.com/hpfoods/hpfoods-api/pkg/cache"
	"github.com/hpfoods/hpfoods-api/pkg/database"
	"github.com/hpfoods/hpfoods-api/pkg/event"
	gql "github.com/hpfoods/hpfoods-api/pkg/graphql"
	grpcserver "github.com/hpfoods/hpfoods-api/pkg/grpc"
	"github.com/hpfoods/hpfoods-api/pkg/logger"
	"github.com/hpfoods/hpfoods-api/pkg/storage"
	"github.com/hpfoods/hpfoods-api/pkg/ws"
)

const (
	shutdownTimeout = 10 * time.Second
	probeInterval   = 15 * time.Second
)

// Start runs the API until ctx is done, then drains HTTP, gRPC and
// pending event listeners.
func Start(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}

	if uri := config.MongoURI(); uri != "" {
		h, err := logger.NewMongoHandler(ctx, uri, config.MongoDB(), config.MongoLogCollection())
		if err != nil {
			logger.Warn("mongo log sink disabled", "error", err)
		} else {
			logger.Attach(h)
			defer h.Close()
		}
	}

	if config.APISecret() == "" {
		logger.Warn("API_SECRET is empty: logins fail and every bearer token is rejected")
	}

	if err := database.Connect(); err != nil {
		return err
	}
	defer database.Close(database.DB)

	if err := migrations.Run(ctx, database.DB); err != nil {
		return err
	}

	if err := cache.Connect(ctx); err != nil {
		logger.Warn("menu cache disabled", "error", err)
	}
	defer cache.Close()

	if err := storage.Connect(ctx); err != nil {
		return err
	}

	hub := ws.NewHub()
	defer hub.Close()
	event.Listen(event.OrderCreated, hub.Listener)

	if url := config.RabbitMQURL(); url != "" {
		pub, err := broker.Dial(url, config.RabbitMQExchange())
		if err != nil {
			return err
		}
		defer pub.Close()
		event.Listen(event.OrderCreated, pub.Listener(event.OrderCreated))
	}

	deps, err := Deps(database.DB, hub)
	if err != nil {
		return err
	}

	if port := config.GRPCPort(); port != "" {
		gs := grpcserver.New()
		if err := gs.Listen(port); err != nil {
			return err
		}
		defer gs.Stop()
		go gs.Watch(ctx, probeInterval, ping(database.DB))
	}

	srv := &http.Server{
		Addr:              ":" + config.AppPort(),
		Handler:           kernel.NewHTTPKernel(deps).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", "addr", srv.Addr, "env", config.AppEnv())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("HTTP server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	event.Wait()
	return nil
}

// Deps wires repositories and services over db into route dependencies.
// Storage must be connected first.
func Deps(db *gorm.DB, hub *ws.Hub) (routes.Deps, error) {
	issuer := auth.NewIssuer(config.APISecret())
	menuStore := repositories.NewCachedMenu(repositories.NewMenuRepository(db), cache.Default("menu"))

	disk := storage.Default()
	menu := services.NewMenuService(menuStore, disk)
	orders := services.NewOrderService(db)

	schema, err := graph.NewSchema(menu, orders)
	if err != nil {
		return routes.Deps{}, err
	}

	d := routes.Deps{
		Auth:      services.NewAuthService(db, issuer),
		Menu:      menu,
		Orders:    orders,
		Secret:    config.APISecret(),
		GraphQL:   gql.Handler(schema),
		OrderFeed: hub,
	}
	if local, ok := disk.(*storage.Local); ok {
		d.Images = kernel.Images(local)
	}
	return d, nil
}

func ping(db *gorm.DB) grpcserver.Probe {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
