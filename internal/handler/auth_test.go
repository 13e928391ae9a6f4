package handler

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkerr/reelcart/internal/config"
	"github.com/dkerr/reelcart/internal/middleware"
	"github.com/dkerr/reelcart/internal/repository"
	"github.com/dkerr/reelcart/internal/session"
)

// authTestApp wires a real echo instance with the session middleware so
// the login/check_session round trip exercises the same path production
// requests take.
type authTestApp struct {
	e        *echo.Echo
	mock     sqlmock.Sqlmock
	db       *sql.DB
	sessions *session.MemoryStore
}

func newAuthTestApp(t *testing.T) *authTestApp {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{
		BcryptCost:    bcrypt.MinCost,
		SessionTTL:    time.Hour,
		SessionCookie: "session_token",
	}
	users := repository.NewUserRepo(db)
	reviews := repository.NewReviewRepo(db)
	carts := repository.NewCartItemRepo(db)
	sessions := session.NewMemoryStore(cfg.SessionTTL)
	h := NewAuthHandler(cfg, users, reviews, carts, sessions)

	e := echo.New()
	e.Use(middleware.ResolveSession(sessions, users, cfg.SessionCookie))
	e.POST("/signup", h.Signup)
	e.POST("/login", h.Login)
	e.GET("/check_session", h.CheckSession)
	e.DELETE("/logout", h.Logout)

	return &authTestApp{e: e, mock: mock, db: db, sessions: sessions}
}

func (a *authTestApp) do(method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session_token" {
			return c
		}
	}
	return nil
}

func userRows(hash string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "username", "password_hash", "type"}).
		AddRow(1, "clay456", hash, "customer")
}

func emptyReviewRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "rating", "text", "movie_id", "user_id"})
}

func emptyCartRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "movie_id", "user_id"})
}

func emptyMovieRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "image", "year", "director", "description", "price"})
}

func TestSignup_ResponseNeverCarriesPassword(t *testing.T) {
	app := newAuthTestApp(t)

	app.mock.ExpectExec("INSERT INTO users").
		WithArgs("newbie", sqlmock.AnyArg(), "customer").
		WillReturnResult(sqlmock.NewResult(4, 1))

	rec := app.do(http.MethodPost, "/signup", `{"username":"newbie","password_hash":"hunter2"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "newbie", body["username"])
	assert.Equal(t, "customer", body["type"])
	_, hasPassword := body["password"]
	_, hasHash := body["password_hash"]
	assert.False(t, hasPassword)
	assert.False(t, hasHash)

	// a session was opened for the new account
	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	assert.Len(t, cookie.Value, 64)
	assert.True(t, cookie.HttpOnly)
}

// hashArg records the password hash bound to the INSERT so the test can
// check what credential it was derived from.
type hashArg struct{ v string }

func (a *hashArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	if ok {
		a.v = s
	}
	return ok
}

func TestSignup_CredentialReadFromPasswordHashKey(t *testing.T) {
	app := newAuthTestApp(t)

	hash := &hashArg{}
	app.mock.ExpectExec("INSERT INTO users").
		WithArgs("alice", hash, "customer").
		WillReturnResult(sqlmock.NewResult(9, 1))

	rec := app.do(http.MethodPost, "/signup", `{"username":"alice","password_hash":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	// the stored hash must verify against the submitted credential, not
	// against an empty string
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash.v), []byte("secret1")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash.v), []byte("")))

	// a wrong credential against that stored hash answers 401
	app.mock.ExpectQuery("SELECT id, username, password_hash, type FROM users WHERE username").
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password_hash", "type"}).
			AddRow(9, "alice", hash.v, "customer"))

	rec = app.do(http.MethodPost, "/login", `{"username":"alice","password_hash":"totally-wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, sessionCookie(t, rec))
}

func TestSignup_MissingPasswordRejected(t *testing.T) {
	app := newAuthTestApp(t)

	rec := app.do(http.MethodPost, "/signup", `{"username":"bob"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "could not create new user", body["error"])
	// no INSERT was ever attempted
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestSignup_DuplicateUsername(t *testing.T) {
	app := newAuthTestApp(t)

	app.mock.ExpectExec("INSERT INTO users").
		WithArgs("clay456", sqlmock.AnyArg(), "customer").
		WillReturnError(errMySQLDup)

	rec := app.do(http.MethodPost, "/signup", `{"username":"clay456","password_hash":"clay123"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "could not create new user", body["error"])
	assert.Nil(t, sessionCookie(t, rec))
}

func TestLogin_WrongPasswordOpensNoSession(t *testing.T) {
	app := newAuthTestApp(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("clay123"), bcrypt.MinCost)
	require.NoError(t, err)
	app.mock.ExpectQuery("SELECT id, username, password_hash, type FROM users WHERE username").
		WithArgs("clay456").
		WillReturnRows(userRows(string(hash)))

	rec := app.do(http.MethodPost, "/login", `{"username":"clay456","password_hash":"nope"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid username or password", body["error"])
	assert.Nil(t, sessionCookie(t, rec))
}

func TestLogin_UnknownUserSameAnswer(t *testing.T) {
	app := newAuthTestApp(t)

	app.mock.ExpectQuery("SELECT id, username, password_hash, type FROM users WHERE username").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	rec := app.do(http.MethodPost, "/login", `{"username":"ghost","password_hash":"whatever"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "invalid username or password", body["error"])
}

func TestLogin_ThenCheckSessionRoundTrip(t *testing.T) {
	app := newAuthTestApp(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("clay123"), bcrypt.MinCost)
	require.NoError(t, err)

	// login: credential lookup plus the profile queries
	app.mock.ExpectQuery("SELECT id, username, password_hash, type FROM users WHERE username").
		WithArgs("clay456").
		WillReturnRows(userRows(string(hash)))
	app.mock.ExpectQuery("SELECT id, rating, text, movie_id, user_id FROM reviews WHERE user_id").
		WithArgs(uint64(1)).
		WillReturnRows(emptyReviewRows())
	app.mock.ExpectQuery("SELECT id, movie_id, user_id FROM cart_items WHERE user_id").
		WithArgs(uint64(1)).
		WillReturnRows(emptyCartRows())
	app.mock.ExpectQuery("SELECT DISTINCT m.id, m.name").
		WithArgs(uint64(1)).
		WillReturnRows(emptyMovieRows())

	rec := app.do(http.MethodPost, "/login", `{"username":"clay456","password_hash":"clay123"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)

	// check_session: the middleware resolves the cookie and loads the
	// user, then the handler loads the user and profile again
	app.mock.ExpectQuery("SELECT id, username, password_hash, type FROM users WHERE id").
		WithArgs(uint64(1)).
		WillReturnRows(userRows(string(hash)))
	app.mock.ExpectQuery("SELECT id, username, password_hash, type FROM users WHERE id").
		WithArgs(uint64(1)).
		WillReturnRows(userRows(string(hash)))
	app.mock.ExpectQuery("SELECT id, rating, text, movie_id, user_id FROM reviews WHERE user_id").
		WithArgs(uint64(1)).
		WillReturnRows(emptyReviewRows())
	app.mock.ExpectQuery("SELECT id, movie_id, user_id FROM cart_items WHERE user_id").
		WithArgs(uint64(1)).
		WillReturnRows(emptyCartRows())
	app.mock.ExpectQuery("SELECT DISTINCT m.id, m.name").
		WithArgs(uint64(1)).
		WillReturnRows(emptyMovieRows())

	rec = app.do(http.MethodGet, "/check_session", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "clay456", body["username"])
	assert.Equal(t, []any{}, body["movies"])
	assert.NoError(t, app.mock.ExpectationsWereMet())
}

func TestCheckSession_Anonymous(t *testing.T) {
	app := newAuthTestApp(t)

	rec := app.do(http.MethodGet, "/check_session", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "please log in", body["error"])
}

func TestLogout_InvalidatesSession(t *testing.T) {
	app := newAuthTestApp(t)

	token, err := app.sessions.Create(context.Background(), 1)
	require.NoError(t, err)

	rec := app.do(http.MethodDelete, "/logout", "", &http.Cookie{Name: "session_token", Value: token})
	require.Equal(t, http.StatusNoContent, rec.Code)

	_, err = app.sessions.Resolve(context.Background(), token)
	assert.ErrorIs(t, err, session.ErrNoSession)
}
