package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/scholarnet/review-core/internal/config"
	"github.com/scholarnet/review-core/internal/controllers"
	"github.com/scholarnet/review-core/internal/models"
	"github.com/scholarnet/review-core/internal/ratelimit"
	"github.com/scholarnet/review-core/internal/services"
	"github.com/scholarnet/review-core/pkg/logger"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "reviewcore",
	Short:   "Peer-review and moderation core service",
	Long:    "reviewcore serves the peer-review acceptance, flagging and moderation API of the publishing platform.",
	Version: version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("reviewcore", version)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		return migrate(db)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		if err := migrate(db); err != nil {
			return err
		}

		jwtSecret := []byte(cfg.Auth.JWTSecret)
		if len(jwtSecret) == 0 {
			jwtSecret = []byte("dev-secret-change-in-production")
		}

		var limiter ratelimit.Limiter
		if cfg.Redis.Addr != "" {
			rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
			limiter = ratelimit.NewRedis(rdb)
			log.Printf("rate limiter: redis at %s", cfg.Redis.Addr)
		} else {
			limiter = ratelimit.NewMemory()
			log.Println("rate limiter: in-memory (single instance only)")
		}

		articles := &services.ArticleService{DB: db, Log: logger.New("articles")}
		flags := &services.FlagService{
			DB:              db,
			Limiter:         limiter,
			Log:             logger.New("flags"),
			RateLimit:       cfg.Flagging.RateLimit,
			RateWindow:      cfg.Flagging.Window(),
			EscalationCount: cfg.Flagging.EscalationCount,
		}
		moderation := &services.ModerationService{DB: db, Log: logger.New("moderation")}

		handler := &controllers.Handler{
			Articles:   articles,
			Flags:      flags,
			Moderation: moderation,
			Log:        logger.New("http"),
		}

		r := gin.Default()
		handler.Register(r, jwtSecret)

		log.Printf("reviewcore starting on port %s", cfg.Server.Port)
		return r.Run(":" + cfg.Server.Port)
	},
}

func openDatabase(cfg config.Config) (*gorm.DB, error) {
	if cfg.Database.DSN == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Article{},
		&models.Review{},
		&models.Flag{},
		&models.AdminLog{},
	); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	log.Println("database migrated successfully")
	return nil
}
