package main

import (
	"context"
	"errors"
	"flag"
	"html/template"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"golang.org/x/net/netutil"

	"cultr.xyz/cultr-web/internal/config"
	"cultr.xyz/cultr-web/internal/content"
	"cultr.xyz/cultr-web/internal/handlers"
	"cultr.xyz/cultr-web/internal/live"
	"cultr.xyz/cultr-web/internal/market"
	mw "cultr.xyz/cultr-web/internal/middleware"
	"cultr.xyz/cultr-web/internal/observability"
	"cultr.xyz/cultr-web/internal/seo"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	// devMode is set in main() from CULTR_WEB_DEV
	devMode   bool
	tmplCache *template.Template
)

const shutdownTimeout = 15 * time.Second

// app carries the dependencies shared by the HTTP handlers.
type app struct {
	site      content.Site
	meta      seo.Meta
	quotes    *market.Client
	metrics   *observability.Metrics
	logger    *zap.Logger
	analytics handlers.Analytics
	live      *live.Handler
	origins   []string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	flag.StringVar(&cfg.Server.Addr, "addr", cfg.Server.Addr, "HTTP listen address")
	flag.StringVar(&cfg.Server.TemplatesDir, "templates", cfg.Server.TemplatesDir, "templates directory")
	flag.StringVar(&cfg.Server.PublicDir, "public", cfg.Server.PublicDir, "public assets directory")
	flag.Parse()

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	a, err := newApp(cfg, logger)
	if err != nil {
		logger.Fatal("init", zap.Error(err))
	}

	templatesDir = cfg.Server.TemplatesDir
	publicDir = cfg.Server.PublicDir
	devMode = cfg.Server.Dev
	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          zap.NewStdLog(logger),
	}
	srv.RegisterOnShutdown(a.live.Close)

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		logger.Fatal("listen", zap.String("addr", cfg.Server.Addr), zap.Error(err))
	}
	if cfg.Server.MaxConns > 0 {
		ln = netutil.LimitListener(ln, cfg.Server.MaxConns)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening",
			zap.String("addr", ln.Addr().String()),
			zap.Bool("dev", devMode),
			zap.Bool("market", cfg.Market.URL != ""),
			zap.Int("max_conns", cfg.Server.MaxConns),
		)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("serve", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}
}

func newApp(cfg config.Config, logger *zap.Logger) (*app, error) {
	site, err := content.Load(cfg.Site.ContentPath)
	if err != nil {
		return nil, err
	}
	metrics := observability.NewMetrics()
	quotes := market.NewClient(cfg.Market.URL,
		market.WithCacheTTL(cfg.Market.CacheTTL),
		market.WithObserver(metrics.ObserveMarket),
	)
	return &app{
		site:      site,
		meta:      seo.ForSite(site, cfg.Site.URL),
		quotes:    quotes,
		metrics:   metrics,
		logger:    logger,
		analytics: handlers.AnalyticsFromConfig(cfg.Analytics),
		origins:   cfg.API.AllowedOrigins,
		live: live.NewHandler(live.Config{
			Site:         site,
			Quotes:       quotes,
			RefreshEvery: cfg.Market.RefreshEvery,
			Logger:       logger.Named("live"),
			Metrics:      metrics,
		}),
	}, nil
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP.
	r.Use(middleware.RealIP)
	r.Use(mw.Logger(a.logger, a.metrics.ObserveRequest))
	r.Use(middleware.Recoverer)
	r.Use(mw.SecurityHeaders)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", a.metrics.Handler())

	// Long-lived: no compression or request timeout.
	r.Get("/live", a.live.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Compress(5))
		r.Use(middleware.Timeout(30 * time.Second))

		r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets"))))

		r.Get("/", a.HomeHandler)
		r.Get("/nav/{section}", a.NavHandler)
		r.Get("/menu", a.MenuHandler)

		r.Group(func(r chi.Router) {
			r.Use(cors.New(cors.Options{
				AllowedOrigins: a.origins,
				AllowedMethods: []string{http.MethodGet, http.MethodOptions},
				MaxAge:         600,
			}).Handler)
			r.Get("/api/token/quote", a.QuoteHandler)
			r.Options("/api/token/quote", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
		})
	})
	return r
}
