package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dkerr/reelcart/internal/model"
	"github.com/dkerr/reelcart/internal/queue"
	"github.com/dkerr/reelcart/internal/repository"
	queue_publisher "github.com/dkerr/reelcart/internal/service"
)

// ReviewHandler bundles the repositories the review endpoints read from.
// Movies and Users are needed because review responses embed both sides
// of the association.
type ReviewHandler struct {
	Reviews *repository.ReviewRepo
	Movies  *repository.MovieRepo
	Users   *repository.UserRepo
}

func NewReviewHandler(r *repository.ReviewRepo, m *repository.MovieRepo, u *repository.UserRepo) *ReviewHandler {
	return &ReviewHandler{Reviews: r, Movies: m, Users: u}
}

type reviewCreateReq struct {
	Rating  int    `json:"rating"`
	Text    string `json:"text"`
	MovieID uint64 `json:"movie_id"`
	UserID  uint64 `json:"user_id"`
}

type reviewPatch struct {
	Rating  *int    `json:"rating"`
	Text    *string `json:"text"`
	MovieID *uint64 `json:"movie_id"`
	UserID  *uint64 `json:"user_id"`
}

// List handles GET /reviews: every review with its movie and sanitized
// user embedded.
func (h *ReviewHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	reviews, err := h.Reviews.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	movies, err := h.Movies.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	movieByID := make(map[uint64]*model.Movie, len(movies))
	for _, m := range movies {
		movieByID[m.ID] = m
	}
	userByID := make(map[uint64]*model.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}

	body := make([]reviewFull, 0, len(reviews))
	for _, rv := range reviews {
		body = append(body, h.full(rv, movieByID[rv.MovieID], userByID[rv.UserID]))
	}
	return c.JSON(http.StatusOK, body)
}

// Create handles POST /reviews. A successful create publishes a
// review.posted activity event; the broker being down never fails the
// request.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req reviewCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "review could not be created"})
	}
	rv := model.Review{Rating: req.Rating, Text: req.Text, MovieID: req.MovieID, UserID: req.UserID}
	if err := rv.Validate(); err != nil {
		c.Logger().Warnf("review create rejected: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "review could not be created"})
	}
	ctx := c.Request().Context()
	if err := h.Reviews.Create(ctx, &rv); err != nil {
		// missing movie/user surfaces as a foreign key violation here
		c.Logger().Warnf("review create failed: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "review could not be created"})
	}

	movie, _ := h.Movies.GetByID(ctx, rv.MovieID)
	user, _ := h.Users.GetByID(ctx, rv.UserID)

	ev := queue.ActivityEvent{
		Kind:       queue.KindReviewPosted,
		ReviewID:   rv.ID,
		MovieID:    rv.MovieID,
		UserID:     rv.UserID,
		Rating:     rv.Rating,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
	if movie != nil {
		ev.MovieName = movie.Name
	}
	// fire and forget; the request context ends with the response
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishActivity(ctx, ev)
	}()

	return c.JSON(http.StatusCreated, h.full(&rv, movie, user))
}

// GetByID handles GET /reviews/:id.
func (h *ReviewHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
	}
	ctx := c.Request().Context()
	rv, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("review %d could not be found", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	movie, _ := h.Movies.GetByID(ctx, rv.MovieID)
	user, _ := h.Users.GetByID(ctx, rv.UserID)
	return c.JSON(http.StatusOK, h.full(rv, movie, user))
}

// Update handles PATCH /reviews/:id, atomic in the same way movie patches
// are.
func (h *ReviewHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
	}
	ctx := c.Request().Context()
	rv, err := h.Reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("review %d not found", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var patch reviewPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "review could not be updated"})
	}
	updated := *rv
	if patch.Rating != nil {
		updated.Rating = *patch.Rating
	}
	if patch.Text != nil {
		updated.Text = *patch.Text
	}
	if patch.MovieID != nil {
		updated.MovieID = *patch.MovieID
	}
	if patch.UserID != nil {
		updated.UserID = *patch.UserID
	}
	if err := updated.Validate(); err != nil {
		c.Logger().Warnf("review %d patch rejected: %v", id, err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "review could not be updated"})
	}
	if err := h.Reviews.Update(ctx, &updated); err != nil {
		c.Logger().Errorf("review %d update failed: %v", id, err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "review could not be updated"})
	}
	movie, _ := h.Movies.GetByID(ctx, updated.MovieID)
	user, _ := h.Users.GetByID(ctx, updated.UserID)
	return c.JSON(http.StatusOK, h.full(&updated, movie, user))
}

// Delete handles DELETE /reviews/:id.
func (h *ReviewHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
	}
	if err := h.Reviews.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("review %d not found", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// full assembles the response shape; either side may be nil when the
// referenced row has vanished between queries.
func (h *ReviewHandler) full(rv *model.Review, m *model.Movie, u *model.User) reviewFull {
	out := reviewFull{reviewView: newReviewView(rv)}
	if m != nil {
		mv := newMovieView(m)
		out.Movie = &mv
	}
	if u != nil {
		uv := newUserView(u)
		out.User = &uv
	}
	return out
}
