package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"nutrirec-web/apiclient"
	cachepackage "nutrirec-web/cache"
	"nutrirec-web/config"
	"nutrirec-web/database"
	"nutrirec-web/handlers"
	"nutrirec-web/session"
	"nutrirec-web/tokenstore"

	"github.com/umakantv/go-utils/httpserver"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// sessionAuth reports the session cookie as the request's client so every
// request log line carries it. Pages decide access themselves.
func sessionAuth(h *handlers.Handler) func(r *http.Request) (bool, httpserver.RequestAuth) {
	return func(r *http.Request) (bool, httpserver.RequestAuth) {
		id, ok := h.SessionID(r)
		if !ok {
			return false, httpserver.RequestAuth{}
		}
		return true, httpserver.RequestAuth{
			Type:   "session",
			Client: id,
		}
	}
}

// componentLogger is handed to the packages that take a *zap.Logger. It
// uses the same keys as the request logger.
func componentLogger() *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.CallerKey = "file"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		logger.Error("Failed to build component logger", zap.Error(err))
		return zap.NewNop()
	}
	return l
}

// tokenBackend opens the configured token storage. The returned func
// releases it.
func tokenBackend(ctx context.Context, cfg config.Config, log *zap.Logger) (tokenstore.Backend, func()) {
	switch cfg.Session.TokenBackend {
	case config.BackendSQL:
		dbConn := database.InitializeDatabase(cfg.Database)
		backend, err := tokenstore.NewSQLBackend(ctx, dbConn)
		if err != nil {
			logger.Error("Failed to prepare token table", zap.Error(err))
			os.Exit(1)
		}
		go purgeExpired(ctx, backend, cfg.Session.SweepEvery, log)
		return backend, func() { dbConn.Close() }
	default:
		c := cachepackage.InitializeCache(cfg.Cache)
		return tokenstore.NewCacheBackend(c), func() { c.Close() }
	}
}

func purgeExpired(ctx context.Context, backend *tokenstore.SQLBackend, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := backend.Purge(ctx)
			if err != nil {
				log.Error("Purging expired tokens failed", zap.Error(err))
				continue
			}
			if n > 0 {
				log.Debug("Purged expired tokens", zap.Int64("count", n))
			}
		}
	}
}

func StartServer() {
	logger.Init(logger.LoggerConfig{
		CallerKey:  "file",
		TimeKey:    "timestamp",
		CallerSkip: 1,
	})

	logger.Info("Starting nutrirec-web...")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", zap.Error(err))
		os.Exit(1)
	}

	log := componentLogger()
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, closeBackend := tokenBackend(ctx, cfg, log)
	defer closeBackend()

	if cfg.Session.TokenSecret == "" {
		logger.Info("No token secret configured, stored tokens will not survive a restart")
	}
	sealer, err := tokenstore.NewSealer(cfg.Session.TokenSecret)
	if err != nil {
		logger.Error("Failed to create token sealer", zap.Error(err))
		os.Exit(1)
	}
	tokens := tokenstore.New(backend, sealer,
		tokenstore.WithTTL(cfg.Session.TokenTTL),
		tokenstore.WithLogger(log.Named("tokenstore")),
	)

	api := apiclient.New(apiclient.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, apiclient.WithLogger(log.Named("apiclient")))

	registry := session.NewRegistry(api, func(id string) apiclient.TokenStore {
		return tokens.Session(id)
	}, session.RegistryConfig{
		IdleTTL: cfg.Session.IdleTTL,
		Logger:  log.Named("session"),
	})
	go registry.Run(ctx, cfg.Session.SweepEvery)

	h := handlers.NewHandler(registry, api, handlers.CookieConfig{
		Name:   cfg.Session.CookieName,
		Secure: cfg.Session.CookieSecure,
		MaxAge: cfg.Session.TokenTTL,
	})

	server := httpserver.New(cfg.Server.Port, sessionAuth(h))
	for _, p := range pages(h) {
		server.Register(httpserver.Route{
			Name:     p.name,
			Method:   p.method,
			Path:     p.path,
			AuthType: "none",
		}, httpserver.HandlerFunc(p.handler))
	}

	logger.Info("nutrirec-web started",
		zap.String("port", cfg.Server.Port),
		zap.String("api", cfg.API.BaseURL),
		zap.String("token_backend", cfg.Session.TokenBackend))
	logger.Info("Health check: GET /health")

	if err := server.Start(); err != nil {
		logger.Error("Server failed to start", zap.Error(err))
		os.Exit(1)
	}
}
