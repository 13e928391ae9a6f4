package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkerr/reelcart/internal/middleware"
	"github.com/dkerr/reelcart/internal/repository"
	"github.com/dkerr/reelcart/internal/session"
)

type cartTestApp struct {
	e        *echo.Echo
	mock     sqlmock.Sqlmock
	sessions *session.MemoryStore
}

func newCartTestApp(t *testing.T) *cartTestApp {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	carts := repository.NewCartItemRepo(db)
	sessions := session.NewMemoryStore(time.Hour)
	h := NewCartItemHandler(carts, movies, users)

	e := echo.New()
	e.Use(middleware.ResolveSession(sessions, users, "session_token"))
	e.GET("/cart_items", h.List)

	return &cartTestApp{e: e, mock: mock, sessions: sessions}
}

func (a *cartTestApp) list(cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/cart_items", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

// login creates a session for the given user and queues the middleware's
// user lookup.
func (a *cartTestApp) login(t *testing.T, id uint64, username, role string) *http.Cookie {
	t.Helper()
	token, err := a.sessions.Create(context.Background(), id)
	require.NoError(t, err)
	a.mock.ExpectQuery("SELECT id, username, password_hash, type FROM users WHERE id").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "type"}).
			AddRow(id, username, "hash", role))
	return &http.Cookie{Name: "session_token", Value: token}
}

func (a *cartTestApp) expectCartEmbeds(movieID, userID uint64) {
	a.mock.ExpectQuery("SELECT id, name, image, year, director, description, price").
		WithArgs(movieID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image", "year", "director", "description", "price"}).
			AddRow(movieID, "Dune", "dune.jpg", 2021, "Denis Villeneuve", "Spice and sand.", 21.95))
	a.mock.ExpectQuery("SELECT id, username, password_hash, type FROM users WHERE id").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "type"}).
			AddRow(userID, "clay456", "hash", "customer"))
}

func TestCartList_AnonymousGetsGenericError(t *testing.T) {
	app := newCartTestApp(t)

	rec := app.list(nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "something went wrong", body["error"])
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestCartList_AdminSeesEveryCart(t *testing.T) {
	app := newCartTestApp(t)
	cookie := app.login(t, 1, "dkerr123", "admin")

	app.mock.ExpectQuery("SELECT id, movie_id, user_id FROM cart_items ORDER BY id").
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "user_id"}).
			AddRow(10, 3, 2))
	app.expectCartEmbeds(3, 2)

	rec := app.list(cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	// the admin sees another user's item
	assert.Equal(t, float64(2), body[0]["user_id"])
	assert.Equal(t, "Dune", body[0]["movie"].(map[string]any)["name"])
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestCartList_CustomerSeesOnlyOwn(t *testing.T) {
	app := newCartTestApp(t)
	cookie := app.login(t, 2, "clay456", "customer")

	app.mock.ExpectQuery("SELECT id, movie_id, user_id FROM cart_items WHERE user_id").
		WithArgs(uint64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "movie_id", "user_id"}).
			AddRow(11, 3, 2))
	app.expectCartEmbeds(3, 2)

	rec := app.list(cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, float64(2), body[0]["user_id"])
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestCartList_StaleSessionGetsGenericError(t *testing.T) {
	app := newCartTestApp(t)

	token, err := app.sessions.Create(context.Background(), 7)
	require.NoError(t, err)
	// the bound user no longer exists, so the middleware leaves the
	// request anonymous
	app.mock.ExpectQuery("SELECT id, username, password_hash, type FROM users WHERE id").
		WithArgs(uint64(7)).
		WillReturnError(sql.ErrNoRows)

	rec := app.list(&http.Cookie{Name: "session_token", Value: token})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "something went wrong", body["error"])
}
