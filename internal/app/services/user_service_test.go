package services

import (
	"context"
	"errors"
	"testing"

	"github.com/schooldesk/api/internal/app/models/dto"
	"github.com/schooldesk/api/internal/pkg/apperrors"
	"github.com/schooldesk/api/internal/pkg/auth"
	"github.com/schooldesk/api/internal/pkg/websocket"
)

func newUserFixture() (*fakeUserStore, *fakePublisher, *UserService) {
	store := newFakeUserStore()
	publisher := &fakePublisher{}
	return store, publisher, NewUserService(store, publisher, NewActivityService(&fakeActivityStore{}))
}

func TestCreateUserHashesPasswordAndPublishes(t *testing.T) {
	store, publisher, svc := newUserFixture()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		FirstName: "Ana", LastName: "Reyes", Email: "Ana@School.EDU",
		Password: "s3cret-pass", Role: "REGISTRAR",
		Permissions: []string{"students", "payments"},
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if user.Email != "ana@school.edu" {
		t.Errorf("email = %s, want lower-cased", user.Email)
	}
	stored, err := store.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.PasswordHash == "s3cret-pass" || stored.PasswordHash == "" {
		t.Error("password was not hashed")
	}
	if !auth.CheckPassword(stored.PasswordHash, "s3cret-pass") {
		t.Error("stored hash does not verify against the password")
	}

	if len(publisher.events) != 1 || publisher.events[0] != websocket.EventUserCreated {
		t.Errorf("published events = %v, want [%s]", publisher.events, websocket.EventUserCreated)
	}
}

func TestCreateUserValidation(t *testing.T) {
	_, _, svc := newUserFixture()
	ctx := context.Background()

	tests := []struct {
		name    string
		req     dto.CreateUserRequest
		wantErr error
	}{
		{
			name: "unknown role",
			req: dto.CreateUserRequest{
				FirstName: "A", LastName: "B", Email: "a@b.co", Password: "longenough", Role: "OWNER",
			},
			wantErr: apperrors.ErrInvalidRole,
		},
		{
			name: "unknown permission key",
			req: dto.CreateUserRequest{
				FirstName: "A", LastName: "B", Email: "a@b.co", Password: "longenough",
				Role: "VIEWER", Permissions: []string{"students", "grades"},
			},
			wantErr: apperrors.ErrInvalidPermission,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateUser(ctx, tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateUser() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	_, _, svc := newUserFixture()
	ctx := context.Background()

	req := dto.CreateUserRequest{
		FirstName: "A", LastName: "B", Email: "dup@school.edu", Password: "longenough", Role: "VIEWER",
	}
	if _, err := svc.CreateUser(ctx, req); err != nil {
		t.Fatalf("first CreateUser() error = %v", err)
	}
	if _, err := svc.CreateUser(ctx, req); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Errorf("CreateUser() error = %v, want %v", err, apperrors.ErrEmailAlreadyExists)
	}
}

func TestUpdateAndDeleteUserPublish(t *testing.T) {
	_, publisher, svc := newUserFixture()
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, dto.CreateUserRequest{
		FirstName: "A", LastName: "B", Email: "a@school.edu", Password: "longenough", Role: "CASHIER",
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	status := "inactive"
	if _, err := svc.UpdateUser(ctx, user.ID, dto.UpdateUserRequest{Status: &status}); err != nil {
		t.Fatalf("UpdateUser() error = %v", err)
	}
	if err := svc.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	want := []string{websocket.EventUserCreated, websocket.EventUserUpdated, websocket.EventUserDeleted}
	if len(publisher.events) != len(want) {
		t.Fatalf("published %d events, want %d", len(publisher.events), len(want))
	}
	for i, e := range want {
		if publisher.events[i] != e {
			t.Errorf("event[%d] = %s, want %s", i, publisher.events[i], e)
		}
	}
}
