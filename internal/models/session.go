package models

import "time"

// Session - текущая сессия оператора.
// Token, User и AllowedModules всегда сохраняются и удаляются вместе.
type Session struct {
	Token          string     `json:"-"`
	User           *User      `json:"user"`
	AllowedModules []string   `json:"allowed_modules"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
}

// Authenticated - есть и токен, и пользователь
func (s *Session) Authenticated() bool {
	return s != nil && s.Token != "" && s.User != nil
}

// Role возвращает роль пользователя; без пользователя считается operator
func (s *Session) Role() Role {
	if s == nil || s.User == nil || s.User.Role == "" {
		return RoleOperator
	}
	return s.User.Role
}
