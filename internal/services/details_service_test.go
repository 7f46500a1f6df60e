package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Rigzin00/HHTrails-BE/internal/apperr"
	"github.com/Rigzin00/HHTrails-BE/internal/supabase"
)

const detailsJSON = `{
	"id": "td1", "tour_id": "t1", "overview": "o",
	"highlights": ["h"], "inclusions": ["i"], "exclusions": ["e"],
	"feature_is_video": false,
	"created_at": "2026-08-01T10:00:00Z", "updated_at": "2026-08-01T10:00:00Z"
}`

// detailsStore resolves the parent tour and reports whether a details row
// already exists for it.
func detailsStore(t *testing.T, existing bool) *stubStore {
	t.Helper()
	return &stubStore{
		selectOne: func(table string, filters supabase.Filters, dest any) error {
			switch table {
			case "tours":
				fill(t, dest, tourJSON)
				return nil
			case "tour_details":
				if !existing {
					return noRows()
				}
				fill(t, dest, detailsJSON)
				return nil
			default:
				t.Fatalf("table=%s", table)
				return nil
			}
		},
	}
}

func TestDetailsService_Create(t *testing.T) {
	store := detailsStore(t, false)
	store.insert = func(table string, body, dest any) error {
		got := body.(map[string]any)
		if got["tour_id"] != "t1" || got["overview"] != "o" {
			t.Fatalf("body=%v", got)
		}
		fill(t, dest, detailsJSON)
		return nil
	}

	details, err := NewDetailsService(store).Create(context.Background(), "t1", CreateTourDetailsInput{
		Overview:   "o",
		Highlights: []string{"h"},
		Inclusions: []string{"i"},
		Exclusions: []string{"e"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if details.TourID != "t1" {
		t.Fatalf("details=%+v", details)
	}
}

func TestDetailsService_Create_AlreadyExists(t *testing.T) {
	store := detailsStore(t, true)

	_, err := NewDetailsService(store).Create(context.Background(), "t1", CreateTourDetailsInput{
		Overview:   "o",
		Highlights: []string{"h"},
		Inclusions: []string{"i"},
		Exclusions: []string{"e"},
	})
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusConflict {
		t.Fatalf("err=%v", err)
	}
	if ae.Message != "Tour details already exist. Use PUT to update them." {
		t.Fatalf("message=%q", ae.Message)
	}
}

func TestDetailsService_Create_RaceOnUniqueConstraint(t *testing.T) {
	// The pre-check misses but the insert still hits the unique constraint.
	store := detailsStore(t, false)
	store.insert = func(string, any, any) error {
		return &supabase.StoreError{StatusCode: 409, Code: supabase.CodeUniqueViolation, Message: "duplicate key"}
	}

	_, err := NewDetailsService(store).Create(context.Background(), "t1", CreateTourDetailsInput{
		Overview:   "o",
		Highlights: []string{"h"},
		Inclusions: []string{"i"},
		Exclusions: []string{"e"},
	})
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusConflict {
		t.Fatalf("err=%v", err)
	}
}

func TestDetailsService_Get_TourMissing(t *testing.T) {
	store := &stubStore{
		selectOne: func(string, supabase.Filters, any) error { return noRows() },
	}

	_, err := NewDetailsService(store).Get(context.Background(), "nope")
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Message != "Tour not found" {
		t.Fatalf("err=%v", err)
	}
}

func TestDetailsService_Get_DetailsMissing(t *testing.T) {
	store := detailsStore(t, false)

	_, err := NewDetailsService(store).Get(context.Background(), "t1")
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Message != "Tour details not found" {
		t.Fatalf("err=%v", err)
	}
}

func TestDetailsService_Update_Miss(t *testing.T) {
	store := &stubStore{
		updateOne: func(string, supabase.Filters, any, any) error { return noRows() },
	}

	_, err := NewDetailsService(store).Update(context.Background(), "t1", UpdateTourDetailsInput{
		Overview: ptr("new"),
	})
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusNotFound {
		t.Fatalf("err=%v", err)
	}
	if ae.Message != "Tour details not found. Create them first with POST." {
		t.Fatalf("message=%q", ae.Message)
	}
}

func TestDetailsService_Update_PatchHasOnlySetFields(t *testing.T) {
	var gotPatch map[string]any
	store := &stubStore{
		updateOne: func(table string, filters supabase.Filters, patch, dest any) error {
			gotPatch = patch.(map[string]any)
			fill(t, dest, detailsJSON)
			return nil
		},
	}

	_, err := NewDetailsService(store).Update(context.Background(), "t1", UpdateTourDetailsInput{
		Overview:       ptr("new"),
		FeatureIsVideo: ptr(true),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if len(gotPatch) != 2 || gotPatch["overview"] != "new" || gotPatch["feature_is_video"] != true {
		t.Fatalf("patch=%v", gotPatch)
	}
}
