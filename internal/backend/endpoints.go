package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shenikar/armguard_console/internal/models"
)

// AuthPayload - ответ /auth/login и /auth/me
type AuthPayload struct {
	AccessToken    string         `json:"access_token"`
	TokenType      string         `json:"token_type"`
	User           map[string]any `json:"user"`
	AllowedModules any            `json:"allowed_modules"`
}

// decodeList принимает любой JSON; не массив трактуется как пустой список
func decodeList(v any) []map[string]any {
	list, ok := v.([]any)
	if !ok {
		return []map[string]any{}
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

func (c *Client) getList(ctx context.Context, path string, query url.Values) ([]map[string]any, error) {
	var payload any
	if err := c.doJSON(ctx, http.MethodGet, path, query, nil, &payload); err != nil {
		return nil, err
	}
	return decodeList(payload), nil
}

func (c *Client) getObject(ctx context.Context, method, path string, query url.Values, in any) (map[string]any, error) {
	var payload map[string]any
	if err := c.doJSON(ctx, method, path, query, in, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = map[string]any{}
	}
	return payload, nil
}

func limitQuery(limit int) url.Values {
	return url.Values{"limit": []string{strconv.Itoa(limit)}}
}

func idPath(prefix, id string, suffix ...string) string {
	p := prefix + "/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

// Alerts

func (c *Client) ListAlerts(ctx context.Context, limit int) ([]map[string]any, error) {
	return c.getList(ctx, "/alerts", limitQuery(limit))
}

func (c *Client) MarkAlertRead(ctx context.Context, id string, read bool) (map[string]any, error) {
	q := url.Values{"read": []string{strconv.FormatBool(read)}}
	return c.getObject(ctx, http.MethodPatch, idPath("/alerts", id, "read"), q, nil)
}

func (c *Client) DeleteAlert(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, idPath("/alerts", id), nil, nil, nil)
}

// Incidents

func (c *Client) ListIncidents(ctx context.Context, limit int) ([]map[string]any, error) {
	return c.getList(ctx, "/incidents", limitQuery(limit))
}

func (c *Client) DeleteIncident(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, idPath("/incidents", id), nil, nil, nil)
}

// Cameras

func (c *Client) ListCameras(ctx context.Context) ([]map[string]any, error) {
	return c.getList(ctx, "/cameras", nil)
}

func (c *Client) CreateCamera(ctx context.Context, in models.CameraInput) (map[string]any, error) {
	return c.getObject(ctx, http.MethodPost, "/cameras", nil, in)
}

// UpdateCamera отправляет только переданные поля
func (c *Client) UpdateCamera(ctx context.Context, id string, patch map[string]any) (map[string]any, error) {
	return c.getObject(ctx, http.MethodPatch, idPath("/cameras", id), nil, patch)
}

func (c *Client) DeleteCamera(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, idPath("/cameras", id), nil, nil, nil)
}

func (c *Client) StartCamera(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, idPath("/cameras", id, "start"), nil, nil, nil)
}

func (c *Client) StopCamera(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, idPath("/cameras", id, "stop"), nil, nil, nil)
}

// Users

func (c *Client) ListUsers(ctx context.Context, limit int) ([]map[string]any, error) {
	return c.getList(ctx, "/users", limitQuery(limit))
}

func (c *Client) CreateUser(ctx context.Context, in models.UserInput) (map[string]any, error) {
	return c.getObject(ctx, http.MethodPost, "/users", nil, in)
}

func (c *Client) UpdateUser(ctx context.Context, id string, patch map[string]any) (map[string]any, error) {
	return c.getObject(ctx, http.MethodPatch, idPath("/users", id), nil, patch)
}

func (c *Client) SetUserRole(ctx context.Context, id string, role models.Role) error {
	q := url.Values{"role": []string{string(role)}}
	return c.doJSON(ctx, http.MethodPatch, idPath("/users", id, "role"), q, nil, nil)
}

// SetUserEstado включает (1) или выключает (0) пользователя
func (c *Client) SetUserEstado(ctx context.Context, id string, active bool) error {
	estado := 0
	if active {
		estado = 1
	}
	return c.doJSON(ctx, http.MethodPatch, idPath("/users", id, "estado"), nil, map[string]int{"estado": estado}, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, idPath("/users", id), nil, nil, nil)
}

// Auth

// Login отправляет учетные данные формой (username, password)
func (c *Client) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	form := url.Values{}
	form.Set("username", strings.TrimSpace(email))
	form.Set("password", password)

	var payload AuthPayload
	data, _, err := c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/auth/login",
		body:        []byte(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	})
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("backend POST /auth/login: %w", err)
	}
	if payload.AccessToken == "" {
		return nil, fmt.Errorf("backend POST /auth/login: response has no access_token")
	}
	return &payload, nil
}

func (c *Client) Me(ctx context.Context) (*AuthPayload, error) {
	var payload AuthPayload
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", nil, nil, &payload); err != nil {
		return nil, err
	}
	if payload.User == nil {
		return nil, fmt.Errorf("backend GET /auth/me: response has no user")
	}
	return &payload, nil
}

// Settings

func (c *Client) GetSettings(ctx context.Context) (*models.Settings, error) {
	var s models.Settings
	if err := c.doJSON(ctx, http.MethodGet, "/settings", nil, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (*models.Settings, error) {
	var s models.Settings
	if err := c.doJSON(ctx, http.MethodPatch, "/settings", nil, patch, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Evidence

// FetchEvidence скачивает снимок доказательства с авторизацией
func (c *Client) FetchEvidence(ctx context.Context, evidenceURL string) ([]byte, string, error) {
	if evidenceURL == "" {
		return nil, "", fmt.Errorf("empty evidence url")
	}
	data, contentType, err := c.do(ctx, request{method: http.MethodGet, path: evidenceURL})
	if err != nil {
		return nil, "", err
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}
