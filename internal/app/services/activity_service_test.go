package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/schooldesk/api/internal/app/models"
)

func TestActivityListPagination(t *testing.T) {
	store := &fakeActivityStore{}
	svc := NewActivityService(store)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		tag := models.ActivityStudent
		if i%3 == 0 {
			tag = models.ActivityPayment
		}
		svc.Record(ctx, fmt.Sprintf("action %d", i), "", "", "", tag)
	}

	t.Run("unfiltered first page", func(t *testing.T) {
		entries, p, err := svc.List(ctx, "", 1, 5)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(entries) != 5 {
			t.Errorf("got %d entries, want 5", len(entries))
		}
		if p.TotalItems != 12 || p.TotalPages != 3 {
			t.Errorf("pagination = %+v, want 12 items over 3 pages", p)
		}
		// Newest first.
		if entries[0].Action != "action 11" {
			t.Errorf("first entry = %s, want action 11", entries[0].Action)
		}
	})

	t.Run("type filter", func(t *testing.T) {
		entries, p, err := svc.List(ctx, models.ActivityPayment, 1, 10)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if p.TotalItems != 4 {
			t.Errorf("TotalItems = %d, want 4", p.TotalItems)
		}
		for _, e := range entries {
			if e.Type != models.ActivityPayment {
				t.Errorf("filter leaked %s entry", e.Type)
			}
		}
	})

	t.Run("page past the end clamps", func(t *testing.T) {
		_, p, err := svc.List(ctx, "", 99, 5)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if p.CurrentPage != 3 {
			t.Errorf("CurrentPage = %d, want 3", p.CurrentPage)
		}
	})
}

func TestRecordSwallowsStoreErrors(t *testing.T) {
	svc := NewActivityService(failingActivityStore{})
	// Must not panic or propagate.
	svc.Record(context.Background(), "action", "", "", "", models.ActivityStudent)
}

type failingActivityStore struct{}

func (failingActivityStore) Create(context.Context, *models.Activity) error {
	return fmt.Errorf("store down")
}

func (failingActivityStore) List(context.Context, string, int, int) ([]*models.Activity, error) {
	return nil, fmt.Errorf("store down")
}

func (failingActivityStore) Count(context.Context, string) (int, error) {
	return 0, fmt.Errorf("store down")
}
