// Package backend - HTTP-обертка над API системы детекции (инференс, камеры, хранилище).
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/shenikar/armguard_console/internal/config"
	"github.com/shenikar/armguard_console/internal/metrics"
)

const breakerName = "detection-backend"

// TokenSource отдает текущий bearer-токен; пустая строка - без заголовка Authorization
type TokenSource interface {
	Token() string
}

// TokenFunc адаптирует функцию к TokenSource
type TokenFunc func() string

func (f TokenFunc) Token() string { return f() }

// Client - обертка над REST API backend.
// Добавляет bearer-токен к запросам на хост backend, не повторяет запросы и ничего не кеширует.
type Client struct {
	baseURL  string
	baseHost string
	HTTP    *http.Client
	tokens  TokenSource
	cb      *gobreaker.CircuitBreaker[[]byte]
	logger  *logrus.Logger
}

// NewClient создает клиент по конфигурации
func NewClient(cfg *config.Config, tokens TokenSource, logger *logrus.Logger) *Client {
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	minRequests := uint32(cfg.BreakerMinRequests)
	ratio := cfg.BreakerFailureRatio

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < minRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= ratio
		},
		// 4xx - ответ backend, а не его недоступность
		IsSuccessful: func(err error) bool {
			if err == nil {
				return true
			}
			apiErr, ok := AsAPIError(err)
			return ok && apiErr.IsClientError()
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	baseHost := ""
	if u, err := url.Parse(cfg.APIBase); err == nil {
		baseHost = u.Host
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.APIBase, "/"),
		baseHost: baseHost,
		HTTP: &http.Client{
			Timeout: cfg.HTTPTimeout,
		},
		tokens: tokens,
		cb:     cb,
		logger: logger,
	}
}

// BaseURL - базовый адрес REST API
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PublicBase - адрес сервера без суффикса /api/v1, для статических файлов
func (c *Client) PublicBase() string {
	base := strings.TrimRight(c.baseURL, "/")
	return strings.TrimSuffix(base, "/api/v1")
}

// StreamURL - MJPEG поток камеры; токен передается в query, т.к. <img> не шлет заголовки
func (c *Client) StreamURL(cameraID, token string, cacheBust int64) string {
	q := url.Values{}
	if token != "" {
		q.Set("token", token)
	}
	q.Set("t", strconv.FormatInt(cacheBust, 10))
	return fmt.Sprintf("%s/inference/stream/%s?%s", c.baseURL, url.PathEscape(cameraID), q.Encode())
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        []byte
	contentType string
}

func (c *Client) target(path string, query url.Values) string {
	u := path
	if !strings.HasPrefix(path, "http://") && !strings.HasPrefix(path, "https://") {
		u = c.baseURL + path
	}
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + query.Encode()
	}
	return u
}

// do выполняет запрос через circuit breaker и возвращает тело ответа 2xx
func (c *Client) do(ctx context.Context, r request) ([]byte, string, error) {
	var contentType string
	body, err := c.cb.Execute(func() ([]byte, error) {
		var reader io.Reader
		if r.body != nil {
			reader = bytes.NewReader(r.body)
		}
		req, err := http.NewRequestWithContext(ctx, r.method, c.target(r.path, r.query), reader)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		if r.contentType != "" {
			req.Header.Set("Content-Type", r.contentType)
		}
		req.Header.Set("Accept", "application/json")
		// токен оператора уходит только на хост backend, абсолютные ссылки из данных его не получают
		if c.tokens != nil && strings.EqualFold(req.URL.Host, c.baseHost) {
			if token := c.tokens.Token(); token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		}

		started := time.Now()
		resp, err := c.HTTP.Do(req)
		if err != nil {
			metrics.BackendRequestDuration.WithLabelValues(r.method, "error").Observe(time.Since(started).Seconds())
			return nil, fmt.Errorf("backend %s %s: %w", r.method, r.path, err)
		}
		defer resp.Body.Close()
		metrics.BackendRequestDuration.WithLabelValues(r.method, strconv.Itoa(resp.StatusCode)).Observe(time.Since(started).Seconds())

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("backend %s %s: failed to read body: %w", r.method, r.path, err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, newAPIError(r.method, r.path, resp.StatusCode, data)
		}
		contentType = resp.Header.Get("Content-Type")
		return data, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, "", fmt.Errorf("backend %s %s: %w", r.method, r.path, err)
		}
		return nil, "", err
	}
	return body, contentType, nil
}

// doJSON отправляет in как JSON (если не nil) и декодирует ответ в out (если не nil)
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, in, out any) error {
	r := request{method: method, path: path, query: query}
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		r.body = payload
		r.contentType = "application/json"
	}

	data, _, err := c.do(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("backend %s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}

func newAPIError(method, path string, status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status, Method: method, Path: path}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		apiErr.Message = strings.TrimSpace(string(body))
		return apiErr
	}
	switch p := payload.(type) {
	case map[string]any:
		apiErr.Detail = p["detail"]
		if msg, ok := p["message"].(string); ok {
			apiErr.Message = msg
		}
	case string:
		apiErr.Message = p
	}
	return apiErr
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	}
	return 0
}
