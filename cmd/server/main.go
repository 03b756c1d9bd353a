package main // entry point

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/leandrordg/api-restaurantes/internal/config"
	"github.com/leandrordg/api-restaurantes/internal/database"
	"github.com/leandrordg/api-restaurantes/internal/handler"
	"github.com/leandrordg/api-restaurantes/internal/middleware"
	"github.com/leandrordg/api-restaurantes/internal/queue"
	"github.com/leandrordg/api-restaurantes/internal/repository"
	"github.com/leandrordg/api-restaurantes/internal/router"
)

func main() {
	// .env is optional; in production the variables come from the host.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	userRepo := repository.NewUserRepo(db)
	mesaRepo := repository.NewMesaRepo(db)
	reservaRepo := repository.NewReservaRepo(db)
	ledger := repository.NewReservaLedger(db, mesaRepo, reservaRepo)

	e := echo.New()
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	// Redis is optional; without it rate limiting and caching are
	// pass-through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and caching disabled")
	}
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	router.Register(e, router.Deps{
		JWTSecret:       cfg.JWTSecret,
		Auth:            handler.NewAuthHandler(cfg, userRepo),
		Mesas:           handler.NewMesaHandler(mesaRepo),
		Reservas:        handler.NewReservaHandler(ledger),
		CacheMiddleware: cacheMW,
	})

	// Background consumer records reservation events to logs/reservas.log.
	go func() {
		if err := queue.StartReservaConsumer(); err != nil {
			log.Printf("reserva-consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
