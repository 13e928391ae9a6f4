package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dkerr/reelcart/internal/model"
	"github.com/dkerr/reelcart/internal/repository"
)

// MovieHandler bundles the repositories the movie endpoints read from.
// Reviews and cart items are loaded alongside each movie because the
// movie response shapes embed them.
type MovieHandler struct {
	Movies    *repository.MovieRepo
	Reviews   *repository.ReviewRepo
	CartItems *repository.CartItemRepo
}

func NewMovieHandler(m *repository.MovieRepo, r *repository.ReviewRepo, ci *repository.CartItemRepo) *MovieHandler {
	return &MovieHandler{Movies: m, Reviews: r, CartItems: ci}
}

type movieCreateReq struct {
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	Year        int     `json:"year"`
	Director    string  `json:"director"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// moviePatch uses pointer fields so absent keys are distinguishable from
// zero values; only fields present in the body are overwritten.
type moviePatch struct {
	Name        *string  `json:"name"`
	Image       *string  `json:"image"`
	Year        *int     `json:"year"`
	Director    *string  `json:"director"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
}

// List handles GET /movies: every movie with its reviews and cart items.
func (h *MovieHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	movies, err := h.Movies.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	reviews, err := h.Reviews.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	carts, err := h.CartItems.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	reviewsByMovie := make(map[uint64][]*model.Review)
	for _, rv := range reviews {
		reviewsByMovie[rv.MovieID] = append(reviewsByMovie[rv.MovieID], rv)
	}
	cartsByMovie := make(map[uint64][]*model.CartItem)
	for _, ci := range carts {
		cartsByMovie[ci.MovieID] = append(cartsByMovie[ci.MovieID], ci)
	}

	body := make([]movieFull, 0, len(movies))
	for _, m := range movies {
		body = append(body, movieFull{
			movieView: newMovieView(m),
			Reviews:   newReviewViews(reviewsByMovie[m.ID]),
			CartItems: newCartItemViews(cartsByMovie[m.ID]),
		})
	}
	return c.JSON(http.StatusOK, body)
}

// Create handles POST /movies. Validation and uniqueness failures both
// collapse into the same generic bad-request body; the specific reason
// stays in the server log.
func (h *MovieHandler) Create(c echo.Context) error {
	var req movieCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "new movie could not be created"})
	}
	m := model.Movie{
		Name:        req.Name,
		Image:       req.Image,
		Year:        req.Year,
		Director:    req.Director,
		Description: req.Description,
		Price:       req.Price,
	}
	if err := m.Validate(); err != nil {
		c.Logger().Warnf("movie create rejected: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "new movie could not be created"})
	}
	if err := h.Movies.Create(c.Request().Context(), &m); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			c.Logger().Errorf("movie create failed: %v", err)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "new movie could not be created"})
	}
	return c.JSON(http.StatusCreated, movieFull{
		movieView: newMovieView(&m),
		Reviews:   []reviewView{},
		CartItems: []cartItemView{},
	})
}

// GetByID handles GET /movies/:id and enriches the movie with the
// distinct users who reviewed it.
func (h *MovieHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}
	ctx := c.Request().Context()
	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("movie %d not found", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	reviews, err := h.Reviews.ListByMovie(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	carts, err := h.CartItems.ListByMovie(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	reviewers, err := h.Movies.ListReviewers(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	users := make([]userRef, 0, len(reviewers))
	for _, u := range reviewers {
		users = append(users, userRef{ID: u.ID, Username: u.Username})
	}
	return c.JSON(http.StatusOK, movieDetail{
		movieFull: movieFull{
			movieView: newMovieView(m),
			Reviews:   newReviewViews(reviews),
			CartItems: newCartItemViews(carts),
		},
		Users: users,
	})
}

// Update handles PATCH /movies/:id. The patch is applied to a copy of the
// stored row and validated as a whole before the single UPDATE, so a
// failed patch leaves no observable change.
func (h *MovieHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}
	ctx := c.Request().Context()
	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("movie %d not found", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var patch moviePatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie could not be updated"})
	}
	updated := *m
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Image != nil {
		updated.Image = *patch.Image
	}
	if patch.Year != nil {
		updated.Year = *patch.Year
	}
	if patch.Director != nil {
		updated.Director = *patch.Director
	}
	if patch.Description != nil {
		updated.Description = *patch.Description
	}
	if patch.Price != nil {
		updated.Price = *patch.Price
	}
	if err := updated.Validate(); err != nil {
		c.Logger().Warnf("movie %d patch rejected: %v", id, err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie could not be updated"})
	}
	if err := h.Movies.Update(ctx, &updated); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			c.Logger().Errorf("movie %d update failed: %v", id, err)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "movie could not be updated"})
	}
	reviews, err := h.Reviews.ListByMovie(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	carts, err := h.CartItems.ListByMovie(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, movieFull{
		movieView: newMovieView(&updated),
		Reviews:   newReviewViews(reviews),
		CartItems: newCartItemViews(carts),
	})
}

// Delete handles DELETE /movies/:id. The schema cascades the delete to
// dependent reviews and cart items.
func (h *MovieHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}
	if err := h.Movies.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("movie %d was not found", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}
