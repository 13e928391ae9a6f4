package database

import (
	"context"
	"database/sql"
)

// schema lists the DDL statements the service needs. Statements are
// idempotent so EnsureSchema can run on every startup. Cascade-delete
// semantics live here: removing a movie or user takes its reviews and
// cart items with it, removing an artist or album takes its album
// reviews. The application never has to clean up join rows by hand.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		image       TEXT NOT NULL,
		year        INT NOT NULL,
		director    VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		price       DOUBLE NOT NULL,
		UNIQUE KEY uq_movies_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username      VARCHAR(25) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		type          VARCHAR(16) NOT NULL,
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id       BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		rating   INT NOT NULL,
		text     TEXT NOT NULL,
		movie_id BIGINT UNSIGNED NOT NULL,
		user_id  BIGINT UNSIGNED NOT NULL,
		KEY idx_reviews_movie (movie_id),
		KEY idx_reviews_user (user_id),
		CONSTRAINT fk_reviews_movie FOREIGN KEY (movie_id) REFERENCES movies (id) ON DELETE CASCADE,
		CONSTRAINT fk_reviews_user  FOREIGN KEY (user_id)  REFERENCES users (id)  ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS cart_items (
		id       BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		movie_id BIGINT UNSIGNED NOT NULL,
		user_id  BIGINT UNSIGNED NOT NULL,
		KEY idx_cart_items_movie (movie_id),
		KEY idx_cart_items_user (user_id),
		CONSTRAINT fk_cart_items_movie FOREIGN KEY (movie_id) REFERENCES movies (id) ON DELETE CASCADE,
		CONSTRAINT fk_cart_items_user  FOREIGN KEY (user_id)  REFERENCES users (id)  ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS artists (
		id    BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name  VARCHAR(255) NOT NULL,
		image TEXT NOT NULL,
		UNIQUE KEY uq_artists_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS albums (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		name        VARCHAR(255) NOT NULL,
		year        INT NOT NULL,
		song        VARCHAR(255) NOT NULL,
		cover       TEXT NULL,
		artist_name VARCHAR(255) NOT NULL,
		UNIQUE KEY uq_albums_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS albumreviews (
		id        BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		rating    INT NOT NULL,
		text      TEXT NOT NULL,
		artist_id BIGINT UNSIGNED NOT NULL,
		album_id  BIGINT UNSIGNED NOT NULL,
		KEY idx_albumreviews_artist (artist_id),
		KEY idx_albumreviews_album (album_id),
		CONSTRAINT fk_albumreviews_artist FOREIGN KEY (artist_id) REFERENCES artists (id) ON DELETE CASCADE,
		CONSTRAINT fk_albumreviews_album  FOREIGN KEY (album_id)  REFERENCES albums (id)  ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables. It is safe to call on every
// startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
