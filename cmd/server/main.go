package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/dkerr/reelcart/internal/config"
	"github.com/dkerr/reelcart/internal/database"
	"github.com/dkerr/reelcart/internal/handler"
	"github.com/dkerr/reelcart/internal/middleware"
	"github.com/dkerr/reelcart/internal/queue"
	"github.com/dkerr/reelcart/internal/repository"
	"github.com/dkerr/reelcart/internal/router"
	"github.com/dkerr/reelcart/internal/session"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	// Redis backs both sessions and rate limiting. When it is down we
	// stay up: sessions fall back to process memory and the limiter
	// disables itself.
	rdb := config.NewRedisClient()
	var sessions session.Store
	if rdb != nil {
		sessions = session.NewRedisStore(rdb, "sess", cfg.SessionTTL)
	} else {
		log.Println("redis unavailable, sessions held in memory")
		sessions = session.NewMemoryStore(cfg.SessionTTL)
	}

	movies := repository.NewMovieRepo(db)
	users := repository.NewUserRepo(db)
	reviews := repository.NewReviewRepo(db)
	cartItems := repository.NewCartItemRepo(db)
	artists := repository.NewArtistRepo(db)
	albums := repository.NewAlbumRepo(db)
	albumReviews := repository.NewAlbumReviewRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RateLimit(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.ResolveSession(sessions, users, cfg.SessionCookie))

	router.RegisterRoutes(e, router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, users, reviews, cartItems, sessions),
		Movies:       handler.NewMovieHandler(movies, reviews, cartItems),
		Users:        handler.NewUserHandler(users, reviews, cartItems),
		Reviews:      handler.NewReviewHandler(reviews, movies, users),
		CartItems:    handler.NewCartItemHandler(cartItems, movies, users),
		Artists:      handler.NewArtistHandler(artists),
		Albums:       handler.NewAlbumHandler(albums),
		AlbumReviews: handler.NewAlbumReviewHandler(albumReviews, artists, albums),
	})

	// Activity consumer keeps its own connection and reconnects on its
	// own schedule; a broker outage never blocks the API.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
