// Package binding настраивает валидатор gin и разбор параметров запроса.
package binding

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	ginbinding "github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// DateLayout формат дат в теле запросов и ответов.
const DateLayout = "2006-01-02"

var setupOnce sync.Once

// Setup включает в сообщениях валидатора имена полей из json-тегов.
// Вызывается один раз при сборке роутера.
func Setup() {
	setupOnce.Do(func() {
		v, ok := ginbinding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// Message превращает ошибку привязки тела запроса в короткое сообщение для клиента.
func Message(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", fe.Field())
		case "datetime":
			return fmt.Sprintf("%s must be a date in format YYYY-MM-DD", fe.Field())
		default:
			return fmt.Sprintf("%s is invalid", fe.Field())
		}
	}
	return "malformed request body"
}

// ParamID читает целочисленный идентификатор из пути запроса.
func ParamID(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return id, nil
}

// ParseDate разбирает дату формата YYYY-MM-DD в UTC.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date in format YYYY-MM-DD", field)
	}
	return t, nil
}

// FormatDate форматирует календарную дату для ответа.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
