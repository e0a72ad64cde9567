package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/schooldesk/api/internal/app/models"
	"github.com/schooldesk/api/internal/app/models/dto"
	"github.com/schooldesk/api/internal/app/repositories"
	"github.com/schooldesk/api/internal/pkg/apperrors"
	"github.com/schooldesk/api/internal/pkg/auth"
	"github.com/schooldesk/api/internal/pkg/export"
	"github.com/schooldesk/api/internal/pkg/listview"
	"github.com/schooldesk/api/internal/pkg/websocket"
)

// UserService implements staff account management. Every successful
// mutation is pushed to the websocket feed so open user-management views
// converge without polling.
type UserService struct {
	users    UserStore
	events   EventPublisher
	activity *ActivityService
}

// NewUserService creates a new user service
func NewUserService(users UserStore, events EventPublisher, activity *ActivityService) *UserService {
	return &UserService{
		users:    users,
		events:   events,
		activity: activity,
	}
}

var userView = listview.View[*models.User]{
	Fields: map[string]listview.Field[*models.User]{
		"name":   {Kind: listview.Text, Value: func(u *models.User) string { return u.FullName() }},
		"email":  {Kind: listview.Text, Value: func(u *models.User) string { return u.Email }},
		"role":   {Kind: listview.Text, Value: func(u *models.User) string { return string(u.Role) }},
		"status": {Kind: listview.Text, Value: func(u *models.User) string { return u.Status }},
		"createdAt": {Kind: listview.Date, Value: func(u *models.User) string {
			return u.CreatedAt.Format(time.RFC3339)
		}},
	},
	SearchKeys: []string{"name", "email"},
}

// ListUsers returns one page of the staff account table.
func (s *UserService) ListUsers(ctx context.Context, q dto.UserListQuery) (listview.Page[*models.User], error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return listview.Page[*models.User]{}, err
	}

	return userView.Apply(users, listview.Query{
		Search: q.Search,
		Filters: map[string]string{
			"role":   q.Role,
			"status": q.Status,
		},
		SortKey:  q.SortKey,
		SortDesc: q.SortDesc,
		Page:     q.Page,
		PageSize: q.PageSize,
	}), nil
}

// CreateUser creates a staff account with a bcrypt password hash.
func (s *UserService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	role := models.Role(req.Role)
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}
	if err := validatePermissions(req.Permissions); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Role:         role,
		Status:       models.UserActive,
		Permissions:  req.Permissions,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.events.Publish(websocket.EventUserCreated, user)
	s.activity.Record(ctx, "User created",
		fmt.Sprintf("%s (%s)", user.FullName(), user.Email),
		"", "", models.ActivityUser)

	return user, nil
}

// GetUser retrieves one staff account by ID.
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser patches a staff account. A new password is re-hashed; the
// stored hash is never exposed.
func (s *UserService) UpdateUser(ctx context.Context, id int64, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = strings.ToLower(*req.Email)
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		user.PasswordHash = hash
	}
	if req.Role != nil {
		role := models.Role(*req.Role)
		if !role.Valid() {
			return nil, apperrors.ErrInvalidRole
		}
		user.Role = role
	}
	if req.Status != nil {
		user.Status = *req.Status
	}
	if req.Permissions != nil {
		if err := validatePermissions(*req.Permissions); err != nil {
			return nil, err
		}
		user.Permissions = *req.Permissions
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrEmailAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.events.Publish(websocket.EventUserUpdated, user)
	s.activity.Record(ctx, "User updated",
		fmt.Sprintf("%s (%s)", user.FullName(), user.Email),
		"", "", models.ActivityUser)

	return user, nil
}

// DeleteUser removes a staff account.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.events.Publish(websocket.EventUserDeleted, map[string]int64{"id": id})
	s.activity.Record(ctx, "User deleted",
		fmt.Sprintf("%s (%s)", user.FullName(), user.Email),
		"", "", models.ActivityUser)

	return nil
}

// ExportCSV renders the staff account table as a CSV download.
func (s *UserService) ExportCSV(ctx context.Context) ([]byte, string, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, "", err
	}

	var rows [][]string
	for _, user := range users {
		rows = append(rows, []string{
			user.FullName(),
			user.Email,
			string(user.Role),
			user.Status,
			strings.Join(user.Permissions, ", "),
		})
	}

	return export.CSV(export.UserHeaders, rows), export.Filename("users", time.Now()), nil
}

func validatePermissions(keys []string) error {
	for _, key := range keys {
		if !models.ValidPermissionKey(key) {
			return apperrors.ErrInvalidPermission
		}
	}
	return nil
}
