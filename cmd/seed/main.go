// Command seed fills the database with a small demo catalogue: three
// movies, three users and a few reviews and cart items to click around
// with. Running it twice is safe; duplicate rows are skipped.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/dkerr/reelcart/internal/config"
	"github.com/dkerr/reelcart/internal/database"
	"github.com/dkerr/reelcart/internal/model"
	"github.com/dkerr/reelcart/internal/repository"
	"github.com/dkerr/reelcart/internal/utils"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("schema: %v", err)
	}

	movies := repository.NewMovieRepo(db)
	users := repository.NewUserRepo(db)
	reviews := repository.NewReviewRepo(db)
	cartItems := repository.NewCartItemRepo(db)

	movieSeed := []model.Movie{
		{
			Name:        "The Cabin in the Woods",
			Image:       "https://upload.wikimedia.org/wikipedia/en/0/01/The_Cabin_in_the_Woods_%282012%29_theatrical_poster.jpg",
			Year:        2011,
			Director:    "Drew Goddard",
			Description: "Five college friends head to a remote cabin and discover the horror waiting for them was scripted long before they arrived.",
			Price:       16.99,
		},
		{
			Name:        "Fear and Loathing in Las Vegas",
			Image:       "https://upload.wikimedia.org/wikipedia/en/2/26/Fear_and_loathing_in_las_vegas_poster.jpg",
			Year:        1998,
			Director:    "Terry Gilliam",
			Description: "A journalist and his attorney chase the American Dream through Las Vegas with a trunk full of bad decisions.",
			Price:       10.99,
		},
		{
			Name:        "Dune",
			Image:       "https://upload.wikimedia.org/wikipedia/en/8/8e/Dune_%282021_film%29.jpg",
			Year:        2021,
			Director:    "Denis Villeneuve",
			Description: "Paul Atreides travels to the most dangerous planet in the universe to secure the future of his family and his people.",
			Price:       21.95,
		},
	}
	movieIDs := make([]uint64, 0, len(movieSeed))
	for i := range movieSeed {
		m := movieSeed[i]
		if err := movies.Create(ctx, &m); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				log.Printf("movie %q already present, skipping", m.Name)
				continue
			}
			log.Fatalf("seed movie %q: %v", m.Name, err)
		}
		movieIDs = append(movieIDs, m.ID)
	}

	userSeed := []struct {
		username string
		password string
		role     string
	}{
		{"dkerr123", "abc123", model.RoleAdmin},
		{"clay456", "clay123", model.RoleCustomer},
		{"ana789", "ana123", model.RoleCustomer},
	}
	userIDs := make([]uint64, 0, len(userSeed))
	for _, s := range userSeed {
		hash, err := utils.HashPassword(s.password, cfg.BcryptCost)
		if err != nil {
			log.Fatalf("hash password for %q: %v", s.username, err)
		}
		u := model.User{Username: s.username, PasswordHash: hash, Type: s.role}
		if err := users.Create(ctx, &u); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				log.Printf("user %q already present, skipping", s.username)
				continue
			}
			log.Fatalf("seed user %q: %v", s.username, err)
		}
		userIDs = append(userIDs, u.ID)
	}

	// Reviews and cart items only make sense on a fresh seed where the
	// ids above were actually created.
	if len(movieIDs) == 3 && len(userIDs) == 3 {
		reviewSeed := []model.Review{
			{Rating: 9, Text: "A horror movie that dissects horror movies. Smarter than it has any right to be.", MovieID: movieIDs[0], UserID: userIDs[0]},
			{Rating: 7, Text: "Depp is unhinged in the best way. Not for everyone.", MovieID: movieIDs[1], UserID: userIDs[1]},
			{Rating: 10, Text: "Villeneuve makes sand cinematic. Cannot wait for part two.", MovieID: movieIDs[2], UserID: userIDs[2]},
		}
		for i := range reviewSeed {
			rv := reviewSeed[i]
			if err := reviews.Create(ctx, &rv); err != nil {
				log.Fatalf("seed review: %v", err)
			}
		}

		cartSeed := []model.CartItem{
			{MovieID: movieIDs[2], UserID: userIDs[0]},
			{MovieID: movieIDs[0], UserID: userIDs[1]},
			{MovieID: movieIDs[1], UserID: userIDs[2]},
		}
		for i := range cartSeed {
			ci := cartSeed[i]
			if err := cartItems.Create(ctx, &ci); err != nil {
				log.Fatalf("seed cart item: %v", err)
			}
		}
	}

	log.Println("seed complete")
}
