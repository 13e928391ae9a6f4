package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dkerr/reelcart/internal/config"
	"github.com/dkerr/reelcart/internal/middleware"
	"github.com/dkerr/reelcart/internal/model"
	"github.com/dkerr/reelcart/internal/queue"
	"github.com/dkerr/reelcart/internal/repository"
	queue_publisher "github.com/dkerr/reelcart/internal/service"
	"github.com/dkerr/reelcart/internal/session"
	"github.com/dkerr/reelcart/internal/utils"
)

// AuthHandler owns the signup/login/session lifecycle. Sessions live
// entirely server side: the browser only ever holds an opaque token in
// an HttpOnly cookie, so nothing about the user leaks into the cookie
// itself.
type AuthHandler struct {
	Cfg       config.Config
	Users     *repository.UserRepo
	Reviews   *repository.ReviewRepo
	CartItems *repository.CartItemRepo
	Sessions  session.Store
}

func NewAuthHandler(cfg config.Config, users *repository.UserRepo, reviews *repository.ReviewRepo, carts *repository.CartItemRepo, sessions session.Store) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users, Reviews: reviews, CartItems: carts, Sessions: sessions}
}

// Clients submit the raw credential under the "password_hash" key; the
// name is historical, the value is the plain password and is hashed
// server side.
type signupReq struct {
	Username string `json:"username"`
	Password string `json:"password_hash"`
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password_hash"`
}

// Signup handles POST /signup. New accounts are always customers; the
// password is bcrypt-hashed before it ever touches the users table.
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not create new user"})
	}
	if req.Password == "" {
		c.Logger().Warn("signup rejected: empty password")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not create new user"})
	}
	hash, err := utils.HashPassword(req.Password, h.Cfg.BcryptCost)
	if err != nil {
		c.Logger().Errorf("signup hash failed: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not create new user"})
	}
	u := model.User{Username: req.Username, PasswordHash: hash, Type: model.RoleCustomer}
	if err := u.Validate(); err != nil {
		c.Logger().Warnf("signup rejected: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not create new user"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Users.Create(ctx, &u); err != nil {
		c.Logger().Warnf("signup create failed: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "could not create new user"})
	}

	if err := h.openSession(c, u.ID); err != nil {
		c.Logger().Errorf("signup session failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "something went wrong"})
	}

	// fire and forget; nothing from the request context may be touched
	// after the handler returns
	go func(ev queue.ActivityEvent) {
		pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer pubCancel()
		_ = queue_publisher.PublishActivity(pubCtx, ev)
	}(queue.ActivityEvent{
		Kind:       queue.KindUserSignedUp,
		UserID:     u.ID,
		Username:   u.Username,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})

	// A brand new user has no reviews, cart items or movies yet.
	return c.JSON(http.StatusCreated, newUserWithMovies(&u, nil, nil, nil))
}

// Login handles POST /login. A failed lookup and a failed password
// check produce the same response so usernames cannot be probed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid username or password"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			c.Logger().Errorf("login lookup failed: %v", err)
		}
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid username or password"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid username or password"})
	}

	if err := h.openSession(c, u.ID); err != nil {
		c.Logger().Errorf("login session failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "something went wrong"})
	}

	body, err := h.profile(ctx, u)
	if err != nil {
		c.Logger().Errorf("login profile failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, body)
}

// CheckSession handles GET /check_session. The session middleware has
// already resolved the cookie into a user, if any.
func (h *AuthHandler) CheckSession(c echo.Context) error {
	uid, ok := middleware.UserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "please log in"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "please log in"})
	}
	body, err := h.profile(ctx, u)
	if err != nil {
		c.Logger().Errorf("check_session profile failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, body)
}

// Logout handles DELETE /logout. It succeeds whether or not a live
// session existed; the cookie is expired either way.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.Cfg.SessionCookie); err == nil && cookie.Value != "" {
		if err := h.Sessions.Destroy(c.Request().Context(), cookie.Value); err != nil {
			c.Logger().Warnf("logout destroy failed: %v", err)
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     h.Cfg.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.NoContent(http.StatusNoContent)
}

// profile loads the user's reviews, cart items and reviewed movies and
// assembles the shared auth response shape.
func (h *AuthHandler) profile(ctx context.Context, u *model.User) (userWithMovies, error) {
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

// openSession mints a fresh opaque token for the user and attaches it
// as an HttpOnly cookie.
func (h *AuthHandler) openSession(c echo.Context, userID uint64) error {
	token, err := h.Sessions.Create(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     h.Cfg.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.Cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
