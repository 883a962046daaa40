package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/kamara/atlas/app"
	"github.com/kamara/atlas/app/api"
	"github.com/kamara/atlas/app/catalog"
	"github.com/kamara/atlas/app/database"
	apiDoc "github.com/kamara/atlas/app/doc"
	"github.com/kamara/atlas/app/favorites"
	"github.com/kamara/atlas/app/user"
	_ "github.com/kamara/atlas/docs"
	"github.com/kamara/atlas/internal/cache"
	"github.com/kamara/atlas/internal/deps"
	"github.com/kamara/atlas/internal/logger"
	"github.com/kamara/atlas/internal/router"
	"github.com/kamara/atlas/internal/sanitizer"
	"github.com/kamara/atlas/internal/security"
)

// @title Atlas API
// @version 1.0
// @description Country catalog browsing with per-user favorites.

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logLevel := logger.LevelInfo
	if cfg.Env == "development" {
		logLevel = logger.LevelDebug
	}
	appLogger := logger.NewZeroLogger(os.Stdout, logLevel, logger.Fields{"service": "atlas"})

	db, err := database.New(&cfg.DB)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := database.Migrate(&cfg.DB); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	tokenMaker, err := security.NewPasetoMaker(cfg.User.SymmetricKey)
	if err != nil {
		log.Fatal("Failed to create token maker:", err)
	}

	cacheService := newCache(cfg)
	container := deps.NewContainer(db, tokenMaker, sanitizer.NewHTMLStripper(), appLogger, cacheService)

	user.InitRepositories(container, &cfg.User)
	favorites.InitRepositories(container)
	catalog.InitServices(container, &cfg.Catalog)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), api.CorsMiddleware(), api.RequestLogger(appLogger))
	r.GET("/healthz", api.HealthCheck)

	mounter := router.NewMounter(container)
	mounter.Public(r).
		Mount(user.MountPublic).
		Mount(catalog.MountPublic)
	mounter.Authenticated(r, user.Middleware(container)).
		Mount(user.MountAuthenticated).
		Mount(catalog.MountAuthenticated).
		Mount(favorites.MountAuthenticated)

	apiDoc.Init(r)

	addr := fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort)
	appLogger.Info("starting server", logger.Fields{"addr": addr, "env": cfg.Env})
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func newCache(cfg *app.Config) cache.Cache[string] {
	if cfg.CacheBackend == cache.RedisBackend {
		return cache.New[string](cache.RedisBackend, &cache.RedisOptions{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			OpTimeout: cfg.RedisOpTimeout,
		})
	}
	return cache.New[string](cache.MemoryBackend, nil)
}
