// Package response содержит вспомогательные типы и функции для формирования
// унифицированных JSON‑ответов HTTP‑обработчиков. Каждый ответ несёт поля
// error и message, полезная нагрузка добавляется встраиванием Response.
package response

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator"
)

// Response описывает стандартную структуру JSON‑ответа сервера.
// Поле Error — признак неуспеха, Message — человеко‑читаемое сообщение.
type Response struct {
	Error   bool   `json:"error" example:"false"`
	Message string `json:"message" example:"Note added successfully"`
}

// ErrorResponse — структура ошибки для Swagger-документации.
type ErrorResponse struct {
	Error   bool   `json:"error" example:"true"`
	Message string `json:"message" example:"invalid request body"`
}

// OK возвращает успешный Response с сообщением.
func OK(msg string) Response {
	return Response{Message: msg}
}

// Error возвращает Response с ошибкой и переданным сообщением.
func Error(msg string) Response {
	return Response{
		Error:   true,
		Message: msg,
	}
}

// NewValidator создаёт валидатор, который называет поля по тегу label,
// а при его отсутствии по имени из тега json.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidationError формирует Response по первому нарушению.
// Поля проверяются в порядке объявления в структуре.
func ValidationError(errs validator.ValidationErrors) Response {
	if len(errs) == 0 {
		return Error("invalid request")
	}

	err := errs[0]
	switch err.ActualTag() {
	case "required":
		return Error(fmt.Sprintf("%s is required", err.Field()))
	case "email":
		return Error(fmt.Sprintf("%s is not a valid email", err.Field()))
	default:
		return Error(fmt.Sprintf("%s is not valid", err.Field()))
	}
}
