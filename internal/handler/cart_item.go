package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dkerr/reelcart/internal/middleware"
	"github.com/dkerr/reelcart/internal/model"
	"github.com/dkerr/reelcart/internal/queue"
	"github.com/dkerr/reelcart/internal/repository"
	queue_publisher "github.com/dkerr/reelcart/internal/service"
)

// CartItemHandler bundles the repositories the cart endpoints read from.
type CartItemHandler struct {
	CartItems *repository.CartItemRepo
	Movies    *repository.MovieRepo
	Users     *repository.UserRepo
}

func NewCartItemHandler(ci *repository.CartItemRepo, m *repository.MovieRepo, u *repository.UserRepo) *CartItemHandler {
	return &CartItemHandler{CartItems: ci, Movies: m, Users: u}
}

type cartItemCreateReq struct {
	MovieID uint64 `json:"movie_id"`
	UserID  uint64 `json:"user_id"`
}

// List handles GET /cart_items. This is the one access-controlled listing
// in the API: the caller's session must resolve to a known user. Admins
// see every cart item in the system, customers only their own. Anonymous
// callers get the generic error the original contract specifies, not a
// 401.
func (h *CartItemHandler) List(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "something went wrong"})
	}
	ctx := c.Request().Context()

	var (
		items []*model.CartItem
		err   error
	)
	switch middleware.Role(c) {
	case model.RoleAdmin:
		items, err = h.CartItems.ListAll(ctx)
	case model.RoleCustomer:
		items, err = h.CartItems.ListByUser(ctx, uid)
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "something went wrong"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	body := make([]cartItemFull, 0, len(items))
	for _, ci := range items {
		full, err := h.full(ctx, ci)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
		}
		body = append(body, full)
	}
	return c.JSON(http.StatusOK, body)
}

// Create handles POST /cart_items. The join row is created explicitly
// with both foreign keys; a successful create publishes a cart_item.added
// activity event.
func (h *CartItemHandler) Create(c echo.Context) error {
	var req cartItemCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not add item to cart"})
	}
	ci := model.CartItem{MovieID: req.MovieID, UserID: req.UserID}
	if err := ci.Validate(); err != nil {
		c.Logger().Warnf("cart item create rejected: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not add item to cart"})
	}
	ctx := c.Request().Context()
	if err := h.CartItems.Create(ctx, &ci); err != nil {
		c.Logger().Warnf("cart item create failed: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not add item to cart"})
	}

	go func(ev queue.ActivityEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queue_publisher.PublishActivity(ctx, ev)
	}(queue.ActivityEvent{
		Kind:       queue.KindCartItemAdded,
		CartItemID: ci.ID,
		MovieID:    ci.MovieID,
		UserID:     ci.UserID,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	full, err := h.full(ctx, &ci)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusCreated, full)
}

// GetByID handles GET /cart_items/:id.
func (h *CartItemHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "cart item not found"})
	}
	ctx := c.Request().Context()
	ci, err := h.CartItems.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("cart item %d could not be found", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	full, err := h.full(ctx, ci)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, full)
}

// Delete handles DELETE /cart_items/:id.
func (h *CartItemHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "cart item not found"})
	}
	if err := h.CartItems.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrCartItemNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("cart item %d not found", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// full embeds the movie and sanitized user into a cart item view.
func (h *CartItemHandler) full(ctx context.Context, ci *model.CartItem) (cartItemFull, error) {
	out := cartItemFull{cartItemView: newCartItemView(ci)}
	movie, err := h.Movies.GetByID(ctx, ci.MovieID)
	if err != nil && !errors.Is(err, repository.ErrMovieNotFound) {
		return cartItemFull{}, err
	}
	if movie != nil {
		mv := newMovieView(movie)
		out.Movie = &mv
	}
	user, err := h.Users.GetByID(ctx, ci.UserID)
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return cartItemFull{}, err
	}
	if user != nil {
		uv := newUserView(user)
		out.User = &uv
	}
	return out, nil
}
