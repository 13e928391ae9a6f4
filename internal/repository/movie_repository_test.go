package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkerr/reelcart/internal/model"
)

func newTestMovieRepo(t *testing.T) (*MovieRepo, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	return NewMovieRepo(db), mock, db
}

func TestMovieCreate_Success(t *testing.T) {
	repo, mock, db := newTestMovieRepo(t)
	defer db.Close()

	m := model.Movie{
		Name:        "Dune",
		Image:       "https://m.media-amazon.com/images/I/61QbqeCVm0L.jpg",
		Year:        2021,
		Director:    "Denis Villeneuve",
		Description: "A mythic hero's journey.",
		Price:       21.95,
	}

	mock.ExpectExec("INSERT INTO movies").
		WithArgs(m.Name, m.Image, m.Year, m.Director, m.Description, m.Price).
		WillReturnResult(sqlmock.NewResult(7, 1))

	require.NoError(t, repo.Create(context.Background(), &m))
	assert.Equal(t, uint64(7), m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMovieCreate_DuplicateName(t *testing.T) {
	repo, mock, db := newTestMovieRepo(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO movies").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("Error 1062 (23000): Duplicate entry 'Dune' for key 'movies.name'"))

	err := repo.Create(context.Background(), &model.Movie{Name: "Dune"})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestMovieGetByID_Found(t *testing.T) {
	repo, mock, db := newTestMovieRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "image", "year", "director", "description", "price"}).
		AddRow(3, "Dune", "img", 2021, "Denis Villeneuve", "desc", 21.95)
	mock.ExpectQuery("SELECT id, name, image, year, director, description, price").
		WithArgs(uint64(3)).
		WillReturnRows(rows)

	m, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Dune", m.Name)
	assert.Equal(t, 21.95, m.Price)
}

func TestMovieGetByID_NotFound(t *testing.T) {
	repo, mock, db := newTestMovieRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name, image, year, director, description, price").
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	require.ErrorIs(t, err, ErrMovieNotFound)
}

func TestMovieListAll(t *testing.T) {
	repo, mock, db := newTestMovieRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "image", "year", "director", "description", "price"}).
		AddRow(1, "Dune", "img", 2021, "Denis Villeneuve", "desc", 21.95).
		AddRow(2, "The Cabin in the Woods", "img2", 2011, "Drew Goddard", "desc2", 16.99)
	mock.ExpectQuery("SELECT id, name, image, year, director, description, price").
		WillReturnRows(rows)

	list, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "The Cabin in the Woods", list[1].Name)
}

func TestMovieDelete_NotFound(t *testing.T) {
	repo, mock, db := newTestMovieRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM movies").
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 42)
	require.ErrorIs(t, err, ErrMovieNotFound)
}

func TestMovieDelete_Success(t *testing.T) {
	repo, mock, db := newTestMovieRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM movies").
		WithArgs(uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 1))
}

func TestMovieListReviewers_Distinct(t *testing.T) {
	repo, mock, db := newTestMovieRepo(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "username"}).
		AddRow(1, "dkerr123").
		AddRow(2, "clay456")
	mock.ExpectQuery("SELECT DISTINCT u.id, u.username").
		WithArgs(uint64(1)).
		WillReturnRows(rows)

	users, err := repo.ListReviewers(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "clay456", users[1].Username)
	// only reference fields are loaded, never the credential
	assert.Empty(t, users[0].PasswordHash)
}
