package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"

	repo "filmorate/internal/repository/interfaces"
)

// Коды ошибок PostgreSQL, которые репозитории переводят в доменные ошибки.
const (
	codeForeignKeyViolation = "23503"
)

// hasPgCode проверяет код ошибки PostgreSQL.
// Сначала смотрим на структурированную ошибку драйвера, затем на текст.
func hasPgCode(err error, code string, constraintNames ...string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != code {
			return false
		}
		if len(constraintNames) == 0 {
			return true
		}
		for _, name := range constraintNames {
			if name != "" && strings.EqualFold(pgErr.ConstraintName, name) {
				return true
			}
		}
		return false
	}

	errStr := err.Error()
	if !strings.Contains(errStr, code) {
		return false
	}
	if len(constraintNames) == 0 {
		return true
	}
	lower := strings.ToLower(errStr)
	for _, name := range constraintNames {
		if name != "" && strings.Contains(lower, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// isForeignKeyViolation сообщает, что запись ссылается на отсутствующую строку (23503).
func isForeignKeyViolation(err error, constraintNames ...string) bool {
	return hasPgCode(err, codeForeignKeyViolation, constraintNames...)
}

// notFoundOr переводит gorm.ErrRecordNotFound в NotFoundError, остальные ошибки отдаёт как есть.
func notFoundOr(err error, entity string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repo.NotFound(entity, id)
	}
	return err
}
