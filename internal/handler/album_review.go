package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dkerr/reelcart/internal/model"
	"github.com/dkerr/reelcart/internal/repository"
)

// AlbumReviewHandler bundles the repositories the album review endpoints
// read from; artist and album repos are needed because responses embed
// both sides of the association.
type AlbumReviewHandler struct {
	AlbumReviews *repository.AlbumReviewRepo
	Artists      *repository.ArtistRepo
	Albums       *repository.AlbumRepo
}

func NewAlbumReviewHandler(ar *repository.AlbumReviewRepo, a *repository.ArtistRepo, al *repository.AlbumRepo) *AlbumReviewHandler {
	return &AlbumReviewHandler{AlbumReviews: ar, Artists: a, Albums: al}
}

type albumReviewCreateReq struct {
	Rating   int    `json:"rating"`
	Text     string `json:"text"`
	ArtistID uint64 `json:"artist_id"`
	AlbumID  uint64 `json:"album_id"`
}

type albumReviewPatch struct {
	Rating   *int    `json:"rating"`
	Text     *string `json:"text"`
	ArtistID *uint64 `json:"artist_id"`
	AlbumID  *uint64 `json:"album_id"`
}

// List handles GET /albumreviews.
func (h *AlbumReviewHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	reviews, err := h.AlbumReviews.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "album reviews could not be found"})
	}
	body := make([]albumReviewFull, 0, len(reviews))
	for _, rv := range reviews {
		body = append(body, h.full(ctx, rv))
	}
	return c.JSON(http.StatusOK, body)
}

// Create handles POST /albumreviews.
func (h *AlbumReviewHandler) Create(c echo.Context) error {
	var req albumReviewCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "review could not be made"})
	}
	rv := model.AlbumReview{Rating: req.Rating, Text: req.Text, ArtistID: req.ArtistID, AlbumID: req.AlbumID}
	if err := rv.Validate(); err != nil {
		c.Logger().Warnf("album review create rejected: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "review could not be made"})
	}
	ctx := c.Request().Context()
	if err := h.AlbumReviews.Create(ctx, &rv); err != nil {
		c.Logger().Warnf("album review create failed: %v", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "review could not be made"})
	}
	return c.JSON(http.StatusCreated, h.full(ctx, &rv))
}

// GetByID handles GET /albumreviews/:id.
func (h *AlbumReviewHandler) GetByID(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
	}
	ctx := c.Request().Context()
	rv, err := h.AlbumReviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAlbumReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("review %d could not be found", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, h.full(ctx, rv))
}

// Update handles PATCH /albumreviews/:id.
func (h *AlbumReviewHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
	}
	ctx := c.Request().Context()
	rv, err := h.AlbumReviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAlbumReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("review %d could not be updated at this time", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	var patch albumReviewPatch
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
	if patch.ArtistID != nil {
		updated.ArtistID = *patch.ArtistID
	}
	if patch.AlbumID != nil {
		updated.AlbumID = *patch.AlbumID
	}
	if err := updated.Validate(); err != nil {
		c.Logger().Warnf("album review %d patch rejected: %v", id, err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "review could not be updated"})
	}
	if err := h.AlbumReviews.Update(ctx, &updated); err != nil {
		c.Logger().Errorf("album review %d update failed: %v", id, err)
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "review could not be updated"})
	}
	return c.JSON(http.StatusOK, h.full(ctx, &updated))
}

// Delete handles DELETE /albumreviews/:id.
func (h *AlbumReviewHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "review not found"})
	}
	if err := h.AlbumReviews.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrAlbumReviewNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": fmt.Sprintf("review %d could not be deleted at this time", id)})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.NoContent(http.StatusNoContent)
}

// full embeds the flat artist and album into an album review view.
// Either side may be nil if the referenced row has vanished.
func (h *AlbumReviewHandler) full(ctx context.Context, rv *model.AlbumReview) albumReviewFull {
	out := albumReviewFull{
		ID:       rv.ID,
		Rating:   rv.Rating,
		Text:     rv.Text,
		ArtistID: rv.ArtistID,
		AlbumID:  rv.AlbumID,
	}
	if artist, err := h.Artists.GetByID(ctx, rv.ArtistID); err == nil {
		av := newArtistView(artist)
		out.Artist = &av
	}
	if album, err := h.Albums.GetByID(ctx, rv.AlbumID); err == nil {
		alv := newAlbumView(album)
		out.Album = &alv
	}
	return out
}
