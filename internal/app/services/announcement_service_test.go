package services

import (
	"context"
	"errors"
	"testing"

	"github.com/schooldesk/api/internal/app/models/dto"
	"github.com/schooldesk/api/internal/pkg/apperrors"
)

func TestAnnouncementRange(t *testing.T) {
	svc := NewAnnouncementService(newFakeAnnouncementStore())
	ctx := context.Background()

	for _, seed := range []struct{ title, date string }{
		{"Enrollment week", "2026-09-01"},
		{"Foundation day", "2026-09-15"},
		{"Semestral break", "2026-10-20"},
	} {
		_, err := svc.Create(ctx, dto.CreateAnnouncementRequest{Title: seed.title, Date: seed.date}, "registrar@school.edu")
		if err != nil {
			t.Fatalf("Create(%s) error = %v", seed.title, err)
		}
	}

	t.Run("window includes both endpoints", func(t *testing.T) {
		got, err := svc.ListRange(ctx, dto.AnnouncementRangeQuery{From: "2026-09-01", To: "2026-09-15"})
		if err != nil {
			t.Fatalf("ListRange() error = %v", err)
		}
		if len(got) != 2 {
			t.Errorf("got %d announcements, want 2", len(got))
		}
	})

	t.Run("reversed window rejected", func(t *testing.T) {
		_, err := svc.ListRange(ctx, dto.AnnouncementRangeQuery{From: "2026-10-01", To: "2026-09-01"})
		if !errors.Is(err, apperrors.ErrBadRequest) {
			t.Errorf("ListRange() error = %v, want bad request", err)
		}
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, dto.CreateAnnouncementRequest{Title: "x", Date: "Sept 1"}, "")
		if !errors.Is(err, apperrors.ErrBadRequest) {
			t.Errorf("Create() error = %v, want bad request", err)
		}
	})
}

func TestAnnouncementUpdateAndDelete(t *testing.T) {
	svc := NewAnnouncementService(newFakeAnnouncementStore())
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateAnnouncementRequest{Title: "Draft", Date: "2026-09-01"}, "")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Audience != "all" {
		t.Errorf("default audience = %s, want all", created.Audience)
	}

	title := "Final"
	updated, err := svc.Update(ctx, created.ID, dto.UpdateAnnouncementRequest{Title: &title})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Title != "Final" {
		t.Errorf("title = %s, want Final", updated.Title)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, apperrors.ErrAnnouncementNotFound) {
		t.Errorf("second Delete() error = %v, want %v", err, apperrors.ErrAnnouncementNotFound)
	}
}
