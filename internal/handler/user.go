package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dkerr/reelcart/internal/model"
	"github.com/dkerr/reelcart/internal/repository"
)

// UserHandler bundles the repositories the user endpoints read from.
type UserHandler struct {
	Users     *repository.UserRepo
	Reviews   *repository.ReviewRepo
	CartItems *repository.CartItemRepo
}

func NewUserHandler(u *repository.UserRepo, r *repository.ReviewRepo, ci *repository.CartItemRepo) *UserHandler {
	return &UserHandler{Users: u, Reviews: r, CartItems: ci}
}

// userCreateReq mirrors the resource's flat creation payload. The
// password_hash field is stored as submitted; the interactive signup
// endpoint is the one that hashes a raw password.
type userCreateReq struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Type         string `json:"type"`
}

// List handles GET /users: every user with reviews and cart items,
// credentials omitted by the view type.
func (h *UserHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	users, err := h.Users.ListAll(ctx)
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

	reviewsByUser := make(map[uint64][]*model.Review)
	for _, rv := range reviews {
		reviewsByUser[rv.UserID] = append(reviewsByUser[rv.UserID], rv)
	}
	cartsByUser := make(map[uint64][]*model.CartItem)
	for _, ci := range carts {
		cartsByUser[ci.UserID] = append(cartsByUser[ci.UserID], ci)
	}

	body := make([]userFull, 0, len(users))
	for _, u := range users {
		body = append(body, userFull{
			userView:  newUserView(u),
			Reviews:   newReviewViews(reviewsByUser[u.ID]),
			CartItems: newCartItemViews(cartsByUser[u.ID]),
		})
	}
	return c.JSON(http.StatusOK, body)
}

// Create handles POST /users.
func (h *UserHandler) Create(c echo.Context) error {
	var req userCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not create new user"})
	}
	u := model.User{Username: req.Username, PasswordHash: req.PasswordHash, Type: req.Type}
	if err := u.Validate(); err != nil {
		c.Logger().Warnf("user create rejected: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not create new user"})
	}
	if err := h.Users.Create(c.Request().Context(), &u); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			c.Logger().Errorf("user create failed: %v", err)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not create new user"})
	}
	return c.JSON(http.StatusCreated, userFull{
		userView:  newUserView(&u),
		Reviews:   []reviewView{},
		CartItems: []cartItemView{},
	})
}

// GetByID handles GET /users/:id and enriches the user with the distinct
// movies they reviewed.
func (h *UserHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	ctx := c.Request().Context()
	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("user %d was not found", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	body, err := h.userWithMoviesView(c, u)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, body)
}

// Delete handles DELETE /users/:id; the user's reviews and cart items
// cascade with it.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if err := h.Users.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("user %d could not be found", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// userWithMoviesView assembles the shared user+movies response used by
// the user detail endpoint and the auth endpoints.
func (h *UserHandler) userWithMoviesView(c echo.Context, u *model.User) (userWithMovies, error) {
	ctx := c.Request().Context()
	reviews, err := h.Reviews.ListByUser(ctx, u.ID)
	if err != nil {
		return userWithMovies{}, err
	}
	carts, err := h.CartItems.ListByUser(ctx, u.ID)
	if err != nil {
		return userWithMovies{}, err
	}
	movies, err := h.Users.ListReviewedMovies(ctx, u.ID)
	if err != nil {
		return userWithMovies{}, err
	}
	return newUserWithMovies(u, reviews, carts, movies), nil
}
