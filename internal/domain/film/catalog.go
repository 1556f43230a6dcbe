package film

// DefaultGenres исходное содержимое справочника жанров.
// Миграция 002 засевает таблицу genres теми же значениями.
var DefaultGenres = []Genre{
	{ID: 1, Name: "Комедия"},
	{ID: 2, Name: "Драма"},
	{ID: 3, Name: "Мультфильм"},
	{ID: 4, Name: "Триллер"},
	{ID: 5, Name: "Документальный"},
	{ID: 6, Name: "Боевик"},
}

// DefaultMpa исходное содержимое справочника рейтингов MPA.
var DefaultMpa = []Mpa{
	{ID: 1, Name: "G"},
	{ID: 2, Name: "PG"},
	{ID: 3, Name: "PG-13"},
	{ID: 4, Name: "R"},
	{ID: 5, Name: "NC-17"},
}
