package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Jyotindra-21/cartelpowersystem25-sub002/modules/tracker"
	"github.com/Jyotindra-21/cartelpowersystem25-sub002/pkg/config"
	"github.com/Jyotindra-21/cartelpowersystem25-sub002/pkg/httpserver"
	"github.com/Jyotindra-21/cartelpowersystem25-sub002/pkg/logger"
	"github.com/Jyotindra-21/cartelpowersystem25-sub002/pkg/mongo"
	"github.com/Jyotindra-21/cartelpowersystem25-sub002/pkg/redis"
)

type appConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var appCfg appConfig
	config.MustLoad(&appCfg)

	var httpCfg httpserver.Config
	config.MustLoad(&httpCfg)

	var trackerCfg tracker.Config
	config.MustLoad(&trackerCfg)

	var mongoCfg mongo.Config
	config.MustLoad(&mongoCfg)

	log := logger.New(logger.WithEnvironment(appCfg.Environment, "trackerd"))
	logger.SetAsDefault(log)

	db, err := mongo.NewWithDatabase(ctx, mongoCfg, mongoCfg.Database)
	if err != nil {
		log.Error("failed to connect to mongo", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = db.Client().Disconnect(context.Background())
	}()

	opts := []tracker.Option{tracker.WithLogger(log)}

	// Geo lookups are optional; without a database every location is unknown.
	if trackerCfg.GeoDBPath != "" {
		geo, err := tracker.NewMaxMindResolver(trackerCfg.GeoDBPath)
		if err != nil {
			log.Error("failed to open geo database", "path", trackerCfg.GeoDBPath, "error", err)
			os.Exit(1)
		}
		defer geo.Close()
		opts = append(opts, tracker.WithGeoResolver(geo))
	}

	// Realtime counters are optional; without Redis the stats endpoint is off.
	var redisCfg redis.Config
	if err := config.Load(&redisCfg); err == nil && redisCfg.ConnectionURL != "" {
		rdb, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			log.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		opts = append(opts, tracker.WithStats(tracker.NewStatsRecorder(rdb, log)))
	}

	svc := tracker.New(trackerCfg, tracker.NewMongoStore(db), opts...)
	handler := tracker.NewHandler(svc, tracker.NewCookieManager(trackerCfg), mongo.Healthcheck(db.Client()), log)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Mount("/", handler.Routes())

	if err := httpserver.New(httpCfg, log).Run(ctx, r); err != nil {
		log.Error("server failed", "error", err)
		os.Exit(1)
	}
}
