package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/medscanhq/medscan/modules/analysis"
	"github.com/medscanhq/medscan/modules/auth"
	"github.com/medscanhq/medscan/pkg/config"
	"github.com/medscanhq/medscan/pkg/cookie"
	"github.com/medscanhq/medscan/pkg/file"
	"github.com/medscanhq/medscan/pkg/httpserver"
	"github.com/medscanhq/medscan/pkg/logger"
	"github.com/medscanhq/medscan/pkg/mongo"
	"github.com/medscanhq/medscan/pkg/ratelimit"
	"github.com/medscanhq/medscan/pkg/redis"
	"github.com/medscanhq/medscan/pkg/requestid"
)

type appConfig struct {
	// JWTSecret selects the session mode: set means signed tokens, empty
	// means the plain email cookie.
	JWTSecret     string `env:"JWT_SECRET" envDefault:""`
	SecureCookies bool   `env:"SECURE_COOKIES" envDefault:"true"`

	AuthRateLimit  int           `env:"AUTH_RATE_LIMIT" envDefault:"10"`
	AuthRateWindow time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"1m"`
}

func main() {
	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.New(logger.WithConfig(logCfg), logger.WithService("medscan"))
	logger.SetAsDefault(log)

	if err := run(context.Background(), log); err != nil {
		log.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger) error {
	var appCfg appConfig
	config.MustLoad(&appCfg)

	var mongoCfg mongo.Config
	config.MustLoad(&mongoCfg)

	db, err := mongo.NewWithDatabase(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Client().Disconnect(context.Background()) }()

	userStorage := auth.NewMongoStorage(db)
	if err := userStorage.EnsureIndexes(ctx); err != nil {
		return err
	}

	analysisStorage := analysis.NewMongoStorage(db)
	if err := analysisStorage.EnsureIndexes(ctx); err != nil {
		return err
	}

	healthProbes := []func(context.Context) error{mongo.Healthcheck(db.Client())}

	limiterStore, redisProbe, err := newLimiterStore(ctx, log)
	if err != nil {
		return err
	}
	if redisProbe != nil {
		healthProbes = append(healthProbes, redisProbe)
	}
	limiter, err := ratelimit.NewSlidingWindow(limiterStore, appCfg.AuthRateLimit, appCfg.AuthRateWindow)
	if err != nil {
		return err
	}

	var fileCfg file.Config
	config.MustLoad(&fileCfg)
	files, err := file.NewFromConfig(ctx, fileCfg)
	if err != nil {
		return err
	}

	strategy, err := auth.NewStrategy(appCfg.JWTSecret, userStorage, cookie.New(), appCfg.SecureCookies)
	if err != nil {
		return err
	}
	log.Info("session mode selected", slog.Bool("token_mode", appCfg.JWTSecret != ""))

	authSvc := auth.NewService(userStorage, auth.WithLogger(log))
	authHandler := auth.NewHandler(authSvc, strategy,
		auth.WithFileStorage(files),
		auth.WithRateLimit(ratelimit.Middleware(limiter, ratelimit.ByClientIP)),
		auth.WithHandlerLogger(log),
	)
	analysisHandler := analysis.NewHandler(analysisStorage,
		analysis.WithIdentityGate(authHandler.RequireIdentity),
		analysis.WithHandlerLogger(log),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)

	r.Get("/health", httpserver.HealthCheckHandler(ctx, log, healthProbes...))

	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", authHandler.AuthRoutes())
		api.Mount("/profile", authHandler.ProfileRoutes())
		api.Mount("/analysis", analysisHandler.Handle())
	})

	if fileCfg.Driver == "local" || fileCfg.Driver == "" {
		mountUploads(r, fileCfg)
	}

	var srvCfg httpserver.Config
	config.MustLoad(&srvCfg)

	srv := httpserver.NewFromConfig(srvCfg,
		httpserver.WithLogger(log),
		httpserver.WithStartHook(func(l *slog.Logger) {
			l.Info("http server listening", slog.String("addr", srvCfg.Addr))
		}),
		httpserver.WithStopHook(func(l *slog.Logger) {
			l.Info("http server stopped")
		}),
	)

	return srv.Run(ctx, r)
}

// newLimiterStore picks redis when configured, falling back to the
// in-process store. The second return value is the redis health probe, nil
// without redis.
func newLimiterStore(ctx context.Context, log *slog.Logger) (ratelimit.Store, func(context.Context) error, error) {
	var redisCfg redis.Config
	config.MustLoad(&redisCfg)

	if !redisCfg.Enabled() {
		log.Info("rate limiter using in-memory store")
		return ratelimit.NewMemoryStore(), nil, nil
	}

	client, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return nil, nil, err
	}
	log.Info("rate limiter using redis store")
	return ratelimit.NewRedisStore(client, "auth"), redis.Healthcheck(client), nil
}

// mountUploads serves locally stored profile pictures from the uploads base
// URL.
func mountUploads(r chi.Router, cfg file.Config) {
	prefix := "/" + strings.Trim(cfg.LocalBaseURL, "/")
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.LocalDir)))
	r.Get(prefix+"/*", func(w http.ResponseWriter, req *http.Request) {
		fs.ServeHTTP(w, req)
	})
}
