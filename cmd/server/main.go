package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/minifootball/api/internal/config"
	"github.com/minifootball/api/internal/database"
	"github.com/minifootball/api/internal/handler"
	"github.com/minifootball/api/internal/middleware"
	"github.com/minifootball/api/internal/queue"
	"github.com/minifootball/api/internal/repository"
	"github.com/minifootball/api/internal/router"
	"github.com/minifootball/api/internal/seed"
	queue_publisher "github.com/minifootball/api/internal/service"
)

func main() {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// Redis is optional; a nil client degrades the country cache, the
	// response cache and the rate limiter to pass-through behavior.
	rdb := config.NewRedisClient()

	countries := repository.NewCountryRepo(db, rdb)
	cities := repository.NewCityRepo(db)
	fields := repository.NewFieldRepo(db)
	games := repository.NewGameRepo(db)
	members := repository.NewMembershipRepo(db)
	admins := repository.NewAdminRepo(db)
	stats := repository.NewStatsRepo(db)
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)

	if err := seed.Countries(ctx, countries); err != nil {
		log.Fatalf("seed countries: %v", err)
	}
	if cfg.SeedDemoData {
		if err := seed.DemoFields(ctx, db, countries, cities, fields); err != nil {
			log.Fatalf("seed demo fields: %v", err)
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	authH := handler.NewAuthHandler(cfg, users, tokens, admins)
	publicH := handler.NewPublicHandler(countries, cities, fields, games, members, stats, cfg.JWTSecret)
	adminH := handler.NewAdminHandler(fields, games, countries, cities, admins)
	userH := handler.NewUserHandler(games, members, queue_publisher.PublishGameJoined)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH)
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)
	router.RegisterUser(e, userH, cfg.JWTSecret)

	// Background consumer; runs its own reconnect loop forever.
	go func() {
		if err := queue.StartGameJoinedConsumer(); err != nil {
			log.Printf("games-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
