package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dkerr/reelcart/internal/model"
	"github.com/dkerr/reelcart/internal/repository"
)

// AlbumHandler bundles the album repository.
type AlbumHandler struct {
	Albums *repository.AlbumRepo
}

func NewAlbumHandler(a *repository.AlbumRepo) *AlbumHandler {
	return &AlbumHandler{Albums: a}
}

type albumCreateReq struct {
	Name       string `json:"name"`
	Year       int    `json:"year"`
	Song       string `json:"song"`
	Cover      string `json:"cover"`
	ArtistName string `json:"artist_name"`
}

type albumPatch struct {
	Name       *string `json:"name"`
	Year       *int    `json:"year"`
	Song       *string `json:"song"`
	Cover      *string `json:"cover"`
	ArtistName *string `json:"artist_name"`
}

// List handles GET /albums.
func (h *AlbumHandler) List(c echo.Context) error {
	albums, err := h.Albums.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, newAlbumViews(albums))
}

// Create handles POST /albums.
func (h *AlbumHandler) Create(c echo.Context) error {
	var req albumCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "album could not be created at this time"})
	}
	a := model.Album{Name: req.Name, Year: req.Year, Song: req.Song, Cover: req.Cover, ArtistName: req.ArtistName}
	if err := a.Validate(); err != nil {
		c.Logger().Warnf("album create rejected: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "album could not be created at this time"})
	}
	if err := h.Albums.Create(c.Request().Context(), &a); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			c.Logger().Errorf("album create failed: %v", err)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "album could not be created at this time"})
	}
	return c.JSON(http.StatusCreated, newAlbumView(&a))
}

// GetByID handles GET /albums/:id and embeds the distinct artists linked
// through album reviews.
func (h *AlbumHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "album not found"})
	}
	ctx := c.Request().Context()
	a, err := h.Albums.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAlbumNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("album %d was not found", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	artists, err := h.Albums.ListReviewingArtists(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, albumDetail{
		albumView: newAlbumView(a),
		Artists:   newArtistViews(artists),
	})
}

// Update handles PATCH /albums/:id.
func (h *AlbumHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "album not found"})
	}
	ctx := c.Request().Context()
	a, err := h.Albums.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAlbumNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("album %d could not be updated", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var patch albumPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "album could not be updated"})
	}
	updated := *a
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Year != nil {
		updated.Year = *patch.Year
	}
	if patch.Song != nil {
		updated.Song = *patch.Song
	}
	if patch.Cover != nil {
		updated.Cover = *patch.Cover
	}
	if patch.ArtistName != nil {
		updated.ArtistName = *patch.ArtistName
	}
	if err := updated.Validate(); err != nil {
		c.Logger().Warnf("album %d patch rejected: %v", id, err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "album could not be updated"})
	}
	if err := h.Albums.Update(ctx, &updated); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			c.Logger().Errorf("album %d update failed: %v", id, err)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "album could not be updated"})
	}
	return c.JSON(http.StatusOK, newAlbumView(&updated))
}

// Delete handles DELETE /albums/:id; album reviews cascade with it.
func (h *AlbumHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "album not found"})
	}
	if err := h.Albums.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrAlbumNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("album %d could not be deleted", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}
