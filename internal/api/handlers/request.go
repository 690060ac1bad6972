package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

// maxBodyBytes ограничение размера JSON тела
const maxBodyBytes = 1 << 20

var (
	// ErrEmptyBody тело запроса пустое
	ErrEmptyBody = errors.New("request body is empty")

	// ErrValidation тело разобрано, но не прошло проверку тегов validate
	ErrValidation = errors.New("request validation failed")

	// ErrInvalidPathParam параметр пути не число
	ErrInvalidPathParam = errors.New("invalid path parameter")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSON разбирает тело запроса (неизвестные поля запрещены) и проверяет теги validate
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return err
	}

	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, describeValidation(err))
	}
	return nil
}

// PathInt64 положительный числовой параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidPathParam, name, raw)
	}
	return id, nil
}

// describeValidation "field: rule" для каждого непрошедшего поля
func describeValidation(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, "; ")
}
