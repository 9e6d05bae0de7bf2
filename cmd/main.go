package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/LenzB1987/maid-finderapp/internal/cache"
	"github.com/LenzB1987/maid-finderapp/internal/config"
	"github.com/LenzB1987/maid-finderapp/internal/consumer"
	"github.com/LenzB1987/maid-finderapp/internal/domain"
	"github.com/LenzB1987/maid-finderapp/internal/handler"
	"github.com/LenzB1987/maid-finderapp/internal/repository"
	"github.com/LenzB1987/maid-finderapp/internal/service"
	"github.com/LenzB1987/maid-finderapp/pkg/database"
	pkglog "github.com/LenzB1987/maid-finderapp/pkg/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := pkglog.L()
		l.Fatal().Err(err).Msg("failed to load config")
	}

	// Initialize structured logger
	pkglog.Init(pkglog.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Level == "debug",
		ServiceName: "caregiver-search",
	})
	logger := pkglog.L()

	// Connect to database using GORM
	dbConfig := &database.Config{
		Driver:          cfg.Database.Driver,
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		FilePath:        cfg.Database.FilePath,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}

	db, err := database.New(dbConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Auto-migrate read models (no-op against an already provisioned schema)
	if err := database.AutoMigrate(db, &domain.UserModel{}, &domain.CaregiverModel{}, &domain.ReviewModel{}); err != nil {
		logger.Fatal().Err(err).Msg("failed to auto-migrate")
	}
	logger.Info().Msg("database migration completed")

	// Initialize repositories
	caregiverRepo := repository.NewGormCaregiverRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)

	// Initialize optional Redis search cache
	var searchCache cache.SearchCache
	if cfg.Cache.Enabled {
		redisCache, err := cache.NewRedisSearchCache(cfg.Redis, cfg.Cache.Prefix)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisCache.Close()
		searchCache = redisCache
		logger.Info().Msg("redis search cache connected")
	}

	// Initialize service
	searchService := service.NewSearchService(caregiverRepo, reviewRepo, searchCache, cfg.Cache.TTL)

	// Initialize optional review-event consumer for cache invalidation
	if cfg.Kafka.Enabled {
		reviewConsumer, err := consumer.NewConfluentConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.GroupID, searchService)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create kafka consumer")
		}
		if err := reviewConsumer.Start(context.Background()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start kafka consumer")
		}
		defer reviewConsumer.Close()
	}

	// Initialize HTTP handler
	httpHandler := handler.NewHandler(searchService)

	// Setup Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Register routes
	httpHandler.RegisterRoutes(r)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info().Str("addr", addr).Str("driver", cfg.Database.Driver).Bool("cache_enabled", cfg.Cache.Enabled).Msg("caregiver-search starting")
	if err := r.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
