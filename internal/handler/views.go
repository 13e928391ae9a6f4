// Package handler implements the HTTP endpoints. Every endpoint declares
// an explicit response shape in this file instead of serializing entity
// graphs recursively: embedded relationships are flattened one level and
// back-references simply have no field to land in, so cyclic expansion
// cannot happen by construction. User views carry no password field at
// all, which makes the credential impossible to leak regardless of call
// site.
package handler

import "github.com/dkerr/reelcart/internal/model"

// movieView is the flat movie shape shared by every endpoint that embeds
// a movie.
type movieView struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Image       string  `json:"image"`
	Year        int     `json:"year"`
	Director    string  `json:"director"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// reviewView is the flat review shape: payload plus foreign keys, no
// embedded entities.
type reviewView struct {
	ID      uint64 `json:"id"`
	Rating  int    `json:"rating"`
	Text    string `json:"text"`
	MovieID uint64 `json:"movie_id"`
	UserID  uint64 `json:"user_id"`
}

// cartItemView is the flat cart item shape.
type cartItemView struct {
	ID      uint64 `json:"id"`
	MovieID uint64 `json:"movie_id"`
	UserID  uint64 `json:"user_id"`
}

// userView is the sanitized user shape. There is deliberately no
// password field here.
type userView struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Type     string `json:"type"`
}

// userRef is the minimal user reference embedded in movie details.
type userRef struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
}

// movieFull is a movie with its owned reviews and cart items, the shape
// of /movies list and create responses.
type movieFull struct {
	movieView
	Reviews   []reviewView   `json:"reviews"`
	CartItems []cartItemView `json:"cart_items"`
}

// movieDetail additionally carries the distinct users who reviewed the
// movie (GET /movies/:id).
type movieDetail struct {
	movieFull
	Users []userRef `json:"users"`
}

// userFull is a user with their reviews and cart items (/users list and
// create).
type userFull struct {
	userView
	Reviews   []reviewView   `json:"reviews"`
	CartItems []cartItemView `json:"cart_items"`
}

// userWithMovies additionally carries the distinct movies the user has
// reviewed. Login, signup, check_session and GET /users/:id answer with
// this shape.
type userWithMovies struct {
	userFull
	Movies []movieView `json:"movies"`
}

// reviewFull embeds the flat movie and sanitized user alongside the
// review payload (/reviews endpoints).
type reviewFull struct {
	reviewView
	Movie *movieView `json:"movie,omitempty"`
	User  *userView  `json:"user,omitempty"`
}

// cartItemFull embeds the flat movie and sanitized user (/cart_items
// endpoints).
type cartItemFull struct {
	cartItemView
	Movie *movieView `json:"movie,omitempty"`
	User  *userView  `json:"user,omitempty"`
}

// artistView is the flat artist shape.
type artistView struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// albumView is the flat album shape.
type albumView struct {
	ID         uint64 `json:"id"`
	Name       string `json:"name"`
	Year       int    `json:"year"`
	Song       string `json:"song"`
	Cover      string `json:"cover"`
	ArtistName string `json:"artist_name"`
}

// artistDetail carries the distinct albums linked through album reviews
// (GET /artists/:id).
type artistDetail struct {
	artistView
	Albums []albumView `json:"albums"`
}

// albumDetail carries the distinct artists linked through album reviews
// (GET /albums/:id).
type albumDetail struct {
	albumView
	Artists []artistView `json:"artists"`
}

// albumReviewFull embeds the flat artist and album alongside the review
// payload (/albumreviews endpoints).
type albumReviewFull struct {
	ID       uint64      `json:"id"`
	Rating   int         `json:"rating"`
	Text     string      `json:"text"`
	ArtistID uint64      `json:"artist_id"`
	AlbumID  uint64      `json:"album_id"`
	Artist   *artistView `json:"artist,omitempty"`
	Album    *albumView  `json:"album,omitempty"`
}

// ----- view constructors -----

func newMovieView(m *model.Movie) movieView {
	return movieView{
		ID:          m.ID,
		Name:        m.Name,
		Image:       m.Image,
		Year:        m.Year,
		Director:    m.Director,
		Description: m.Description,
		Price:       m.Price,
	}
}

func newMovieViews(ms []*model.Movie) []movieView {
	out := make([]movieView, 0, len(ms))
	for _, m := range ms {
		out = append(out, newMovieView(m))
	}
	return out
}

func newReviewView(rv *model.Review) reviewView {
	return reviewView{ID: rv.ID, Rating: rv.Rating, Text: rv.Text, MovieID: rv.MovieID, UserID: rv.UserID}
}

func newReviewViews(rvs []*model.Review) []reviewView {
	out := make([]reviewView, 0, len(rvs))
	for _, rv := range rvs {
		out = append(out, newReviewView(rv))
	}
	return out
}

func newCartItemView(ci *model.CartItem) cartItemView {
	return cartItemView{ID: ci.ID, MovieID: ci.MovieID, UserID: ci.UserID}
}

func newCartItemViews(cis []*model.CartItem) []cartItemView {
	out := make([]cartItemView, 0, len(cis))
	for _, ci := range cis {
		out = append(out, newCartItemView(ci))
	}
	return out
}

func newUserView(u *model.User) userView {
	return userView{ID: u.ID, Username: u.Username, Type: u.Type}
}

func newUserWithMovies(u *model.User, reviews []*model.Review, carts []*model.CartItem, movies []*model.Movie) userWithMovies {
	return userWithMovies{
		userFull: userFull{
			userView:  newUserView(u),
			Reviews:   newReviewViews(reviews),
			CartItems: newCartItemViews(carts),
		},
		Movies: newMovieViews(movies),
	}
}

func newArtistView(a *model.Artist) artistView {
	return artistView{ID: a.ID, Name: a.Name, Image: a.Image}
}

func newArtistViews(as []*model.Artist) []artistView {
	out := make([]artistView, 0, len(as))
	for _, a := range as {
		out = append(out, newArtistView(a))
	}
	return out
}

func newAlbumView(a *model.Album) albumView {
	return albumView{ID: a.ID, Name: a.Name, Year: a.Year, Song: a.Song, Cover: a.Cover, ArtistName: a.ArtistName}
}

func newAlbumViews(as []*model.Album) []albumView {
	out := make([]albumView, 0, len(as))
	for _, a := range as {
		out = append(out, newAlbumView(a))
	}
	return out
}
