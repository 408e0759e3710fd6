package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/comic_catalog/internal/cache"
	"github.com/Skotchmaster/comic_catalog/internal/config"
	"github.com/Skotchmaster/comic_catalog/internal/db"
	"github.com/Skotchmaster/comic_catalog/internal/events"
	"github.com/Skotchmaster/comic_catalog/internal/hash"
	"github.com/Skotchmaster/comic_catalog/internal/httpserver"
	"github.com/Skotchmaster/comic_catalog/internal/logging"
	"github.com/Skotchmaster/comic_catalog/internal/media"
	authmw "github.com/Skotchmaster/comic_catalog/internal/middleware/auth"
	"github.com/Skotchmaster/comic_catalog/internal/middleware/csrf"
	loggingmw "github.com/Skotchmaster/comic_catalog/internal/middleware/logging"
	"github.com/Skotchmaster/comic_catalog/internal/repo"
	"github.com/Skotchmaster/comic_catalog/internal/search"
	"github.com/Skotchmaster/comic_catalog/internal/service"
	"github.com/Skotchmaster/comic_catalog/internal/tokens"
)

func main() {
	cfg := config.Load()
	cfg.MustValid()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	gdb, err := db.Open(initCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	defer func() { _ = db.Close(gdb) }()
	if err := db.Migrate(initCtx, gdb); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	issuer, err := tokens.NewIssuer(cfg.Auth.AccessSecret, cfg.Auth.RefreshSecret,
		tokens.WithTTL(cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL))
	if err != nil {
		log.Fatalf("token issuer: %v", err)
	}

	store := repo.New(gdb)
	hasher := hash.New(hash.DefaultCost)

	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		if err := events.EnsureTopics(cfg.KafkaBrokers[0], events.TopicUserEvents, events.TopicComicEvents); err != nil {
			logger.Warn("kafka_topics_not_ensured", "error", err)
		}
		prod, err := events.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			log.Fatalf("kafka producer: %v", err)
		}
		defer func() { _ = prod.Close() }()
		publisher = prod
		logger.Info("kafka_enabled", "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka_disabled", "reason", "KAFKA_BROKERS is empty")
	}

	var index service.ComicIndex
	if cfg.ESURL != "" {
		es, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("search_disabled", "reason", "elasticsearch unreachable", "error", err)
		} else {
			index = search.NewIndex(es, cfg.ESIndex)
			logger.Info("search_enabled", "index", cfg.ESIndex)
		}
	} else {
		logger.Info("search_disabled", "reason", "ES_URL is empty")
	}

	var comicCache service.ComicCache = cache.Nop{}
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(initCtx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			logger.Warn("cache_disabled", "reason", "redis unreachable", "error", err)
		} else {
			defer func() { _ = rdb.Close() }()
			comicCache = cache.NewComicCache(rdb, cfg.CacheTTL)
			logger.Info("cache_enabled", "ttl", cfg.CacheTTL.String())
		}
	} else {
		logger.Info("cache_disabled", "reason", "REDIS_URL is empty")
	}

	var uploader media.Uploader = media.Disabled{}
	if cc := cfg.Cloudinary; cc.CloudName != "" && cc.APIKey != "" && cc.APISecret != "" {
		cld, err := media.NewCloudinary(cc.CloudName, cc.APIKey, cc.APISecret, cc.Folder)
		if err != nil {
			log.Fatalf("cloudinary: %v", err)
		}
		uploader = cld
		logger.Info("media_enabled", "folder", cc.Folder)
	} else {
		logger.Info("media_disabled", "reason", "cloudinary credentials missing")
	}

	users := &service.UserService{Repo: store, Hasher: hasher, Events: publisher}
	if err := users.EnsureSuper(logging.IntoContext(initCtx, logger), cfg.SuperUsername, cfg.SuperPassword); err != nil {
		log.Fatalf("ensure super user: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(
		middleware.RequestID(),
		loggingmw.RequestLogger(logger),
		middleware.RecoverWithConfig(middleware.RecoverConfig{DisableErrorHandler: true}),
		middleware.ContextTimeoutWithConfig(middleware.ContextTimeoutConfig{
			Timeout:      cfg.RequestTimeout,
			ErrorHandler: httpserver.TimeoutError,
		}),
	)
	if cfg.Auth.CSRF {
		e.Use(csrf.Middleware(csrf.Config{
			Secure:    cfg.Auth.CookieSecure,
			SkipPaths: []string{"/api/auth/signIn", "/api/auth/refresh-token"},
		}))
	}

	httpserver.Register(e, &httpserver.Deps{
		DB:   gdb,
		Gate: &authmw.Gate{Tokens: issuer, Roles: store},
		Auth: &httpserver.AuthHTTP{
			Svc: &service.AuthService{
				Repo:          store,
				Tokens:        issuer,
				Hasher:        hasher,
				Events:        publisher,
				RotateRefresh: cfg.Auth.RotateRefresh,
			},
			Cookies: httpserver.CookieConfig{Secure: cfg.Auth.CookieSecure},
		},
		Users:      &httpserver.UsersHTTP{Svc: users},
		Genres:     &httpserver.GenresHTTP{Svc: &service.GenreService{Repo: store}},
		ComicTypes: &httpserver.ComicTypesHTTP{Svc: &service.ComicTypeService{Repo: store}},
		Comics: &httpserver.ComicsHTTP{Svc: &service.ComicService{
			Repo:   store,
			Media:  uploader,
			Events: publisher,
			Index:  index,
			Cache:  comicCache,
		}},
		Chapters: &httpserver.ChaptersHTTP{Svc: &service.ChapterService{Repo: store, Cache: comicCache}},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		logger.Info("http_server_started", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_failed", "error", err)
	}
	logger.Info("http_server_stopped")
}
