package service

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/normalize"
	"github.com/shenikar/armguard_console/internal/notify"
)

const (
	UserPageSize   = 5
	userFetchLimit = 500
)

var (
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	objectIDPattern = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)
)

type UserQuery struct {
	Search   string
	Page     int
	PageSize int
}

type UserList struct {
	Page  models.Page[models.User] `json:"page"`
	Stats models.UserStats         `json:"stats"`
}

// UserUpdate - форма редактирования; смена роли уходит отдельным запросом
type UserUpdate struct {
	Name  string
	Email string
	Role  models.Role
}

// UserService определяет контракт администрирования пользователей
type UserService interface {
	List(ctx context.Context, actor Actor, q UserQuery) (*UserList, error)
	Create(ctx context.Context, actor Actor, in models.UserInput) (*models.User, error)
	Update(ctx context.Context, actor Actor, id string, in UserUpdate) (*models.User, error)
	SetRole(ctx context.Context, actor Actor, id string, role models.Role) error
	SetActive(ctx context.Context, actor Actor, id string, active bool) error
	Delete(ctx context.Context, actor Actor, id string) error
}

type userService struct {
	api Backend
	reporter
}

func NewUserService(api Backend, audit AuditService, notifier notify.Notifier, logger *logrus.Logger) UserService {
	return &userService{
		api:      api,
		reporter: reporter{audit: audit, notifier: notifier, logger: logger},
	}
}

func validRole(r models.Role) bool {
	return r == models.RoleAdmin || r == models.RoleOperator
}

// normalizeIdentity приводит имя и email к виду, в котором они уходят в backend
func normalizeIdentity(name, email string) (string, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if len([]rune(name)) < 2 {
		return "", "", invalid("name must be at least 2 characters")
	}
	if !emailPattern.MatchString(email) {
		return "", "", invalid("invalid email (e.g. user@domain.com)")
	}
	return name, email, nil
}

func (s *userService) load(ctx context.Context) ([]models.User, error) {
	raw, err := s.api.ListUsers(ctx, userFetchLimit)
	if err != nil {
		return nil, err
	}
	users := normalize.Users(raw)
	// администраторы первыми, затем по email
	sort.SliceStable(users, func(i, j int) bool {
		ai, aj := users[i].Role == models.RoleAdmin, users[j].Role == models.RoleAdmin
		if ai != aj {
			return ai
		}
		return users[i].Email < users[j].Email
	})
	return users, nil
}

// List возвращает страницу пользователей; сводка считается по всему списку
func (s *userService) List(ctx context.Context, actor Actor, q UserQuery) (*UserList, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	users, err := s.load(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "user",
			"method":  "List",
		}).WithError(err).Error("Failed to list users")
		s.notify(notify.LevelError, "Could not load users", "")
		return nil, fmt.Errorf("service: could not list users: %w", err)
	}

	out := &UserList{}
	out.Stats.Total = len(users)
	for _, u := range users {
		if u.Role == models.RoleAdmin {
			out.Stats.Admins++
		}
		if u.Active {
			out.Stats.Active++
		}
	}
	out.Stats.Inactive = out.Stats.Total - out.Stats.Active

	search := strings.ToLower(strings.TrimSpace(q.Search))
	filtered := users
	if search != "" {
		filtered = make([]models.User, 0, len(users))
		for _, u := range users {
			if strings.Contains(strings.ToLower(u.Email), search) ||
				strings.Contains(strings.ToLower(u.Name), search) ||
				strings.Contains(string(u.Role), search) ||
				strings.Contains(strings.ToLower(u.ID), search) {
				filtered = append(filtered, u)
			}
		}
	}
	if q.PageSize < 1 {
		q.PageSize = UserPageSize
	}
	out.Page = models.Paginate(filtered, q.Page, q.PageSize)
	return out, nil
}

// Create создает пользователя; пароль обязателен только здесь
func (s *userService) Create(ctx context.Context, actor Actor, in models.UserInput) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	name, email, err := normalizeIdentity(in.Name, in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < 6 {
		return nil, invalid("password must be at least 6 characters")
	}
	if in.Role == "" {
		in.Role = models.RoleOperator
	}
	if !validRole(in.Role) {
		return nil, invalid("unknown role %q", in.Role)
	}
	in.Name, in.Email = name, email

	log := s.logger.WithFields(logrus.Fields{
		"service": "user",
		"method":  "Create",
		"email":   email,
	})
	log.Info("Attempting to create a new user")

	raw, err := s.api.CreateUser(ctx, in)
	s.outcome(ctx, actor, "user.create", email, err, "User created", "Could not create user")
	if err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, fmt.Errorf("service: could not create user: %w", err)
	}

	u := normalize.User(raw)
	log.WithField("user_id", u.ID).Info("User created successfully")
	return &u, nil
}

// Update отправляет имя и email, затем роль, если она изменилась
func (s *userService) Update(ctx context.Context, actor Actor, id string, in UserUpdate) (*models.User, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidID
	}
	name, email, err := normalizeIdentity(in.Name, in.Email)
	if err != nil {
		return nil, err
	}
	if in.Role != "" && !validRole(in.Role) {
		return nil, invalid("unknown role %q", in.Role)
	}
	if id == actor.ID && in.Role != "" && in.Role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: cannot remove your own admin role", ErrSelfAction)
	}

	log := s.logger.WithFields(logrus.Fields{
		"service": "user",
		"method":  "Update",
		"user_id": id,
	})

	users, err := s.load(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load users")
		return nil, fmt.Errorf("service: could not load users: %w", err)
	}
	var current *models.User
	for i := range users {
		if users[i].ID == id {
			current = &users[i]
			break
		}
	}
	if current == nil {
		return nil, fmt.Errorf("service: user %s: %w", id, ErrNotFound)
	}

	raw, err := s.api.UpdateUser(ctx, id, map[string]any{"name": name, "email": email})
	if err == nil && in.Role != "" && in.Role != current.Role {
		err = s.api.SetUserRole(ctx, id, in.Role)
	}
	s.outcome(ctx, actor, "user.update", id, err, "User updated", "Could not update user")
	if err != nil {
		log.WithError(err).Error("Failed to update user")
		return nil, fmt.Errorf("service: could not update user: %w", err)
	}

	u := normalize.User(raw)
	if u.ID == "" {
		u = *current
	}
	u.Name, u.Email = name, email
	if in.Role != "" {
		u.Role = in.Role
	}
	log.Info("User updated successfully")
	return &u, nil
}

func (s *userService) SetRole(ctx context.Context, actor Actor, id string, role models.Role) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}
	if !validRole(role) {
		return invalid("unknown role %q", role)
	}
	if id == actor.ID && role != models.RoleAdmin {
		return fmt.Errorf("%w: cannot remove your own admin role", ErrSelfAction)
	}

	err := s.api.SetUserRole(ctx, id, role)
	s.outcome(ctx, actor, "user.role."+string(role), id, err, "Role updated", "Could not update role")
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "user",
			"method":  "SetRole",
			"user_id": id,
		}).WithError(err).Error("Failed to set user role")
		return fmt.Errorf("service: could not set role: %w", err)
	}
	return nil
}

func (s *userService) SetActive(ctx context.Context, actor Actor, id string, active bool) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}
	if id == actor.ID && !active {
		return fmt.Errorf("%w: cannot deactivate yourself", ErrSelfAction)
	}

	action, title := "user.deactivate", "User deactivated"
	if active {
		action, title = "user.activate", "User activated"
	}
	err := s.api.SetUserEstado(ctx, id, active)
	s.outcome(ctx, actor, action, id, err, title, "Could not change user state")
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "user",
			"method":  "SetActive",
			"user_id": id,
		}).WithError(err).Error("Failed to set user state")
		return fmt.Errorf("service: could not change user state: %w", err)
	}
	return nil
}

// Delete удаляет пользователя; id должен быть ObjectId из 24 hex символов
func (s *userService) Delete(ctx context.Context, actor Actor, id string) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return ErrInvalidID
	}
	if id == actor.ID {
		return fmt.Errorf("%w: cannot delete your own user", ErrSelfAction)
	}
	if !objectIDPattern.MatchString(id) {
		return fmt.Errorf("%w: id is not a 24 character ObjectId", ErrInvalidID)
	}

	err := s.api.DeleteUser(ctx, id)
	s.outcome(ctx, actor, "user.delete", id, err, "User deleted", "Could not delete user")
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "user",
			"method":  "Delete",
			"user_id": id,
		}).WithError(err).Error("Failed to delete user")
		return fmt.Errorf("service: could not delete user: %w", err)
	}
	return nil
}
