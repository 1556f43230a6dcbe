package film

import (
	"sort"
	"time"
)

// MaxDescriptionLength задаёт максимальную длину описания фильма в символах.
const MaxDescriptionLength = 200

// CinemaBirthday дата первого публичного киносеанса, раньше неё фильм выйти не мог.
var CinemaBirthday = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

// Genre элемент справочника жанров.
type Genre struct {
	ID   int64
	Name string
}

// Mpa элемент справочника возрастных рейтингов MPA.
type Mpa struct {
	ID   int64
	Name string
}

// Film представляет доменную модель фильма.
//
// Лайки хранятся множеством идентификаторов пользователей: это единственный
// источник истины, рейтинг (Rate) вычисляется из него.
type Film struct {
	ID          int64
	Name        string
	Description string
	ReleaseDate time.Time // Дата выхода (без времени, UTC)
	Duration    int       // Продолжительность в минутах
	Mpa         Mpa
	Genres      []Genre // Без повторов, упорядочены по ID
	LikedBy     map[int64]struct{}
}

// Rate возвращает количество лайков фильма.
func (f *Film) Rate() int {
	return len(f.LikedBy)
}

// IsLikedBy сообщает, поставил ли пользователь лайк фильму.
func (f *Film) IsLikedBy(userID int64) bool {
	_, ok := f.LikedBy[userID]
	return ok
}

// LikeIDs возвращает идентификаторы лайкнувших пользователей по возрастанию.
func (f *Film) LikeIDs() []int64 {
	ids := make([]int64, 0, len(f.LikedBy))
	for id := range f.LikedBy {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Clone возвращает глубокую копию фильма, чтобы хранилище не делило состояние с вызывающим кодом.
func (f *Film) Clone() *Film {
	c := *f
	c.Genres = append([]Genre(nil), f.Genres...)
	c.LikedBy = make(map[int64]struct{}, len(f.LikedBy))
	for id := range f.LikedBy {
		c.LikedBy[id] = struct{}{}
	}
	return &c
}

// NormalizeGenres убирает повторы жанров и упорядочивает их по ID.
func NormalizeGenres(genres []Genre) []Genre {
	seen := make(map[int64]struct{}, len(genres))
	result := make([]Genre, 0, len(genres))
	for _, g := range genres {
		if _, ok := seen[g.ID]; ok {
			continue
		}
		seen[g.ID] = struct{}{}
		result = append(result, g)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}
