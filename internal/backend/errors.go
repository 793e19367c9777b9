package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError - ответ backend со статусом вне 2xx.
// Detail хранит декодированное поле "detail" (строка, объект или массив ошибок валидации).
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Detail     any
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend %s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, e.Text())
}

// Text - человекочитаемое описание ошибки
func (e *APIError) Text() string {
	if e.Detail != nil {
		if s := detailText(e.Detail); s != "" {
			return s
		}
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// IsAuth - 401 или 403. Решение о завершении сессии остается за вызывающим.
func (e *APIError) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsClientError - 4xx
func (e *APIError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// AsAPIError достает *APIError из цепочки ошибок
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsUnauthorized - ошибка авторизации backend (401/403)
func IsUnauthorized(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.IsAuth()
}

// ErrorText превращает любую ошибку в текст для уведомления
func ErrorText(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Text()
	}
	return err.Error()
}

func detailText(detail any) string {
	switch d := detail.(type) {
	case string:
		return d
	case []any:
		parts := make([]string, 0, len(d))
		for _, item := range d {
			if s := detailItem(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, " | ")
	case map[string]any:
		return detailItem(d)
	case nil:
		return ""
	}
	b, err := json.Marshal(detail)
	if err != nil {
		return fmt.Sprint(detail)
	}
	return string(b)
}

// detailItem форматирует элемент вида {"loc": ["body","email"], "msg": "..."}
func detailItem(item any) string {
	m, ok := item.(map[string]any)
	if !ok {
		if s, ok := item.(string); ok {
			return s
		}
		b, _ := json.Marshal(item)
		return string(b)
	}

	msg := "Error"
	if s, ok := m["msg"].(string); ok && s != "" {
		msg = s
	}

	var loc string
	switch l := m["loc"].(type) {
	case []any:
		parts := make([]string, 0, len(l))
		for _, p := range l {
			parts = append(parts, fmt.Sprint(p))
		}
		loc = strings.Join(parts, ".")
	case string:
		loc = l
	}

	if loc != "" {
		return loc + ": " + msg
	}
	return msg
}
