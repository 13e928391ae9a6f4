package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dkerr/reelcart/internal/model"
	"github.com/dkerr/reelcart/internal/repository"
)

// ArtistHandler bundles the artist repository.
type ArtistHandler struct {
	Artists *repository.ArtistRepo
}

func NewArtistHandler(a *repository.ArtistRepo) *ArtistHandler {
	return &ArtistHandler{Artists: a}
}

type artistCreateReq struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

type artistPatch struct {
	Name  *string `json:"name"`
	Image *string `json:"image"`
}

// List handles GET /artists: flat artist views, no embedded reviews.
func (h *ArtistHandler) List(c echo.Context) error {
	artists, err := h.Artists.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, newArtistViews(artists))
}

// Create handles POST /artists.
func (h *ArtistHandler) Create(c echo.Context) error {
	var req artistCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist's name must be unique and both name and image fields must be completed"})
	}
	a := model.Artist{Name: req.Name, Image: req.Image}
	if err := a.Validate(); err != nil {
		c.Logger().Warnf("artist create rejected: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist's name must be unique and both name and image fields must be completed"})
	}
	if err := h.Artists.Create(c.Request().Context(), &a); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			c.Logger().Errorf("artist create failed: %v", err)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist's name must be unique and both name and image fields must be completed"})
	}
	return c.JSON(http.StatusCreated, newArtistView(&a))
}

// GetByID handles GET /artists/:id and embeds the distinct albums linked
// through album reviews.
func (h *ArtistHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
	}
	ctx := c.Request().Context()
	a, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("artist %d was not found", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	albums, err := h.Artists.ListReviewedAlbums(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, artistDetail{
		artistView: newArtistView(a),
		Albums:     newAlbumViews(albums),
	})
}

// Update handles PATCH /artists/:id.
func (h *ArtistHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
	}
	ctx := c.Request().Context()
	a, err := h.Artists.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("artist %d was not found", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var patch artistPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist could not be updated"})
	}
	updated := *a
	if patch.Name != nil {
		updated.Name = *patch.Name
	}
	if patch.Image != nil {
		updated.Image = *patch.Image
	}
	if err := updated.Validate(); err != nil {
		c.Logger().Warnf("artist %d patch rejected: %v", id, err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist could not be updated"})
	}
	if err := h.Artists.Update(ctx, &updated); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			c.Logger().Errorf("artist %d update failed: %v", id, err)
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "artist could not be updated"})
	}
	return c.JSON(http.StatusOK, newArtistView(&updated))
}

// Delete handles DELETE /artists/:id; album reviews referencing the
// artist cascade with it.
func (h *ArtistHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "artist not found"})
	}
	if err := h.Artists.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrArtistNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("artist %d was not found", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}
