package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkerr/reelcart/internal/repository"
)

func newMovieTestHandler(t *testing.T) (*MovieHandler, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	h := NewMovieHandler(
		repository.NewMovieRepo(db),
		repository.NewReviewRepo(db),
		repository.NewCartItemRepo(db),
	)
	return h, mock, db
}

func newJSONContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestMovieCreate_Success(t *testing.T) {
	h, mock, db := newMovieTestHandler(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO movies").
		WithArgs("Dune", "dune.jpg", 2021, "Denis Villeneuve", "Spice and sand.", 21.95).
		WillReturnResult(sqlmock.NewResult(3, 1))

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodPost, "/movies",
		`{"name":"Dune","image":"dune.jpg","year":2021,"director":"Denis Villeneuve","description":"Spice and sand.","price":21.95}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(3), body["id"])
	assert.Equal(t, "Dune", body["name"])
	// fresh movie serializes empty arrays, not null
	assert.Equal(t, []any{}, body["reviews"])
	assert.Equal(t, []any{}, body["cart_items"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieCreate_InvalidYearNeverHitsDB(t *testing.T) {
	h, mock, db := newMovieTestHandler(t)
	defer db.Close()

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodPost, "/movies",
		`{"name":"Old One","image":"x.jpg","year":1800,"director":"Nobody","description":"Too old.","price":1}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	// the reason is collapsed into the generic message
	assert.Equal(t, "new movie could not be created", body["error"])
	// no INSERT was ever attempted
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieCreate_DuplicateName(t *testing.T) {
	h, mock, db := newMovieTestHandler(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO movies").
		WithArgs("Dune", "dune.jpg", 2021, "Denis Villeneuve", "Spice and sand.", 21.95).
		WillReturnError(errMySQLDup)

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodPost, "/movies",
		`{"name":"Dune","image":"dune.jpg","year":2021,"director":"Denis Villeneuve","description":"Spice and sand.","price":21.95}`)

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "new movie could not be created", body["error"])
}

func TestMovieGetByID_NotFound(t *testing.T) {
	h, mock, db := newMovieTestHandler(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, image, year, director, description, price").
		WithArgs(uint64(42)).
		WillReturnError(sql.ErrNoRows)

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodGet, "/movies/42", "")
	c.SetParamNames("id")
	c.SetParamValues("42")

	require.NoError(t, h.GetByID(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "movie 42 not found", body["error"])
}

func TestMovieUpdate_InvalidPatchLeavesRowAlone(t *testing.T) {
	h, mock, db := newMovieTestHandler(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "image", "year", "director", "description", "price"}).
		AddRow(5, "Dune", "dune.jpg", 2021, "Denis Villeneuve", "Spice and sand.", 21.95)
	mock.ExpectQuery("SELECT id, name, image, year, director, description, price").
		WithArgs(uint64(5)).
		WillReturnRows(rows)

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodPatch, "/movies/5", `{"year":1800}`)
	c.SetParamNames("id")
	c.SetParamValues("5")

	require.NoError(t, h.Update(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "movie could not be updated", body["error"])
	// only the SELECT ran; nothing was written
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieDelete_NotFound(t *testing.T) {
	h, mock, db := newMovieTestHandler(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM movies").
		WithArgs(uint64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodDelete, "/movies/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "movie 9 was not found", body["error"])
}
