// Package router wires the HTTP endpoints to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/dkerr/reelcart/internal/handler"
)

// Handlers collects every handler the route table needs. Grouping them
// in one struct keeps RegisterRoutes to a single call in main.
type Handlers struct {
	Auth         *handler.AuthHandler
	Movies       *handler.MovieHandler
	Users        *handler.UserHandler
	Reviews      *handler.ReviewHandler
	CartItems    *handler.CartItemHandler
	Artists      *handler.ArtistHandler
	Albums       *handler.AlbumHandler
	AlbumReviews *handler.AlbumReviewHandler
}

// RegisterRoutes maps every endpoint onto the Echo instance. Session
// resolution and rate limiting are applied globally in main, not here;
// the cart listing does its own role check because admins and customers
// share the endpoint.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/healthz", handler.Health)

	// session lifecycle
	e.POST("/signup", h.Auth.Signup)
	e.POST("/login", h.Auth.Login)
	e.GET("/check_session", h.Auth.CheckSession)
	e.DELETE("/logout", h.Auth.Logout)

	e.GET("/movies", h.Movies.List)
	e.POST("/movies", h.Movies.Create)
	e.GET("/movies/:id", h.Movies.GetByID)
	e.PATCH("/movies/:id", h.Movies.Update)
	e.DELETE("/movies/:id", h.Movies.Delete)

	e.GET("/users", h.Users.List)
	e.POST("/users", h.Users.Create)
	e.GET("/users/:id", h.Users.GetByID)
	e.DELETE("/users/:id", h.Users.Delete)

	e.GET("/reviews", h.Reviews.List)
	e.POST("/reviews", h.Reviews.Create)
	e.GET("/reviews/:id", h.Reviews.GetByID)
	e.PATCH("/reviews/:id", h.Reviews.Update)
	e.DELETE("/reviews/:id", h.Reviews.Delete)

	e.GET("/cart_items", h.CartItems.List)
	e.POST("/cart_items", h.CartItems.Create)
	e.GET("/cart_items/:id", h.CartItems.GetByID)
	e.DELETE("/cart_items/:id", h.CartItems.Delete)

	e.GET("/artists", h.Artists.List)
	e.POST("/artists", h.Artists.Create)
	e.GET("/artists/:id", h.Artists.GetByID)
	e.PATCH("/artists/:id", h.Artists.Update)
	e.DELETE("/artists/:id", h.Artists.Delete)

	e.GET("/albums", h.Albums.List)
	e.POST("/albums", h.Albums.Create)
	e.GET("/albums/:id", h.Albums.GetByID)
	e.PATCH("/albums/:id", h.Albums.Update)
	e.DELETE("/albums/:id", h.Albums.Delete)

	e.GET("/albumreviews", h.AlbumReviews.List)
	e.POST("/albumreviews", h.AlbumReviews.Create)
	e.GET("/albumreviews/:id", h.AlbumReviews.GetByID)
	e.PATCH("/albumreviews/:id", h.AlbumReviews.Update)
	e.DELETE("/albumreviews/:id", h.AlbumReviews.Delete)
}
