package film

import (
	domain "filmorate/internal/domain/film"
	"filmorate/internal/handler/binding"
)

// RefRequest ссылка на элемент справочника (жанр или рейтинг MPA).
// Имя в запросе игнорируется и берётся из справочника.
type RefRequest struct {
	ID   int64  `json:"id" binding:"required"`
	Name string `json:"name,omitempty"`
}

// FilmRequest тело запросов POST /films и PUT /films.
type FilmRequest struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	ReleaseDate string       `json:"releaseDate" binding:"required,datetime=2006-01-02"`
	Duration    int          `json:"duration"`
	Mpa         *RefRequest  `json:"mpa" binding:"required"`
	Genres      []RefRequest `json:"genres" binding:"omitempty,dive"`
}

// GenreResponse элемент справочника жанров.
type GenreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MpaResponse элемент справочника рейтингов MPA.
type MpaResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FilmResponse представление фильма в ответах API.
type FilmResponse struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ReleaseDate string          `json:"releaseDate"`
	Duration    int             `json:"duration"`
	Mpa         MpaResponse     `json:"mpa"`
	Genres      []GenreResponse `json:"genres"`
	Rate        int             `json:"rate"`
	Likes       []int64         `json:"likes"`
}

func (r *FilmRequest) toDomain() (*domain.Film, error) {
	releaseDate, err := binding.ParseDate("releaseDate", r.ReleaseDate)
	if err != nil {
		return nil, err
	}

	f := &domain.Film{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		ReleaseDate: releaseDate,
		Duration:    r.Duration,
		Mpa:         domain.Mpa{ID: r.Mpa.ID},
		Genres:      make([]domain.Genre, 0, len(r.Genres)),
	}
	for _, g := range r.Genres {
		f.Genres = append(f.Genres, domain.Genre{ID: g.ID})
	}
	return f, nil
}

func toFilmResponse(f *domain.Film) FilmResponse {
	resp := FilmResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: binding.FormatDate(f.ReleaseDate),
		Duration:    f.Duration,
		Mpa:         MpaResponse{ID: f.Mpa.ID, Name: f.Mpa.Name},
		Genres:      make([]GenreResponse, 0, len(f.Genres)),
		Rate:        f.Rate(),
		Likes:       f.LikeIDs(),
	}
	for _, g := range f.Genres {
		resp.Genres = append(resp.Genres, GenreResponse{ID: g.ID, Name: g.Name})
	}
	return resp
}

func toFilmResponses(films []*domain.Film) []FilmResponse {
	out := make([]FilmResponse, 0, len(films))
	for _, f := range films {
		out = append(out, toFilmResponse(f))
	}
	return out
}
