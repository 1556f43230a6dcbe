package validation

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	filmdomain "filmorate/internal/domain/film"
	userdomain "filmorate/internal/domain/user"
)

// ErrValidation общий признак ошибки валидации входных данных.
var ErrValidation = errors.New("validation failed")

// Сообщения об ошибках валидации. Они уходят клиенту как есть.
const (
	MsgDescriptionTooLong  = "description too long"
	MsgReleaseDateTooEarly = "release date before cinema existed"
	MsgDurationNotPositive = "duration must be positive"
	MsgNameBlank           = "name must not be blank"

	MsgLoginInvalid     = "login invalid"
	MsgEmailEmpty       = "email empty"
	MsgEmailMissingAt   = "email missing @"
	MsgBirthdayInFuture = "birthday in the future"

	MsgCountNotPositive = "count must be positive"
	MsgSelfFriendship   = "user cannot befriend themselves"
)

// Error описывает нарушение правила валидации конкретного поля.
// errors.Is(err, ErrValidation) для неё возвращает true.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is позволяет сравнивать Error с ErrValidation через errors.Is.
func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

// New создаёт ошибку валидации поля.
func New(field, message string) error {
	return &Error{Field: field, Message: message}
}

// Film проверяет фильм. Правила применяются по порядку, возвращается первое нарушение.
func Film(f *filmdomain.Film) error {
	if utf8.RuneCountInString(f.Description) > filmdomain.MaxDescriptionLength {
		return New("description", MsgDescriptionTooLong)
	}
	if f.ReleaseDate.Before(filmdomain.CinemaBirthday) {
		return New("releaseDate", MsgReleaseDateTooEarly)
	}
	if f.Duration <= 0 {
		return New("duration", MsgDurationNotPositive)
	}
	if strings.TrimSpace(f.Name) == "" {
		return New("name", MsgNameBlank)
	}
	return nil
}

// User проверяет пользователя относительно даты today. Правила применяются по порядку.
// Пустое имя заменяется логином: это нормализация, а не ошибка.
func User(u *userdomain.User, today time.Time) error {
	if u.Login == "" || strings.IndexFunc(u.Login, unicode.IsSpace) >= 0 {
		return New("login", MsgLoginInvalid)
	}
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
	if u.Email == "" {
		return New("email", MsgEmailEmpty)
	}
	if !strings.Contains(u.Email, "@") {
		return New("email", MsgEmailMissingAt)
	}
	if u.Birthday.After(Today(today)) {
		return New("birthday", MsgBirthdayInFuture)
	}
	return nil
}

// Today отбрасывает время суток, оставляя календарную дату в UTC.
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
