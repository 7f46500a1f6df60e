package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Rigzin00/HHTrails-BE/internal/apperr"
	"github.com/Rigzin00/HHTrails-BE/internal/supabase"
)

const dayJSON = `{
	"id": "d1", "tour_id": "t1", "day_number": 3,
	"description": "Leh to Nubra", "image_url": "https://img.example.com/d3.jpg",
	"created_at": "2026-08-01T10:00:00Z", "updated_at": "2026-08-01T10:00:00Z"
}`

func itineraryStore(t *testing.T) *stubStore {
	t.Helper()
	return &stubStore{
		selectOne: func(table string, filters supabase.Filters, dest any) error {
			if table != "tours" {
				t.Fatalf("table=%s", table)
			}
			fill(t, dest, tourJSON) // duration_days = 7
			return nil
		},
	}
}

func TestItineraryService_AddDay(t *testing.T) {
	store := itineraryStore(t)
	store.insert = func(table string, body, dest any) error {
		if table != "tour_itinerary" {
			t.Fatalf("table=%s", table)
		}
		got := body.(map[string]any)
		if got["tour_id"] != "t1" || got["day_number"] != 3 {
			t.Fatalf("body=%v", got)
		}
		fill(t, dest, dayJSON)
		return nil
	}

	day, err := NewItineraryService(store).AddDay(context.Background(), "t1", CreateItineraryDayInput{
		DayNumber:   3,
		Description: "Leh to Nubra",
		ImageURL:    "https://img.example.com/d3.jpg",
	})
	if err != nil {
		t.Fatalf("AddDay: %v", err)
	}
	if day.DayNumber != 3 || day.TourID != "t1" {
		t.Fatalf("day=%+v", day)
	}
}

func TestItineraryService_AddDay_ExceedsDuration(t *testing.T) {
	store := itineraryStore(t)

	_, err := NewItineraryService(store).AddDay(context.Background(), "t1", CreateItineraryDayInput{
		DayNumber:   8,
		Description: "x",
		ImageURL:    "https://img.example.com/x.jpg",
	})
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		t.Fatalf("err=%v", err)
	}
	if ae.Status != http.StatusBadRequest {
		t.Fatalf("status=%d", ae.Status)
	}
	if ae.Message != "Day number 8 exceeds the tour duration of 7 days" {
		t.Fatalf("message=%q", ae.Message)
	}
}

func TestItineraryService_AddDay_DuplicateDay(t *testing.T) {
	store := itineraryStore(t)
	store.insert = func(string, any, any) error {
		return &supabase.StoreError{StatusCode: 409, Code: supabase.CodeUniqueViolation, Message: "duplicate key"}
	}

	_, err := NewItineraryService(store).AddDay(context.Background(), "t1", CreateItineraryDayInput{
		DayNumber:   3,
		Description: "x",
		ImageURL:    "https://img.example.com/x.jpg",
	})
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusConflict {
		t.Fatalf("err=%v", err)
	}
	if ae.Message != "Day 3 already exists. Use PUT to update it." {
		t.Fatalf("message=%q", ae.Message)
	}
}

func TestItineraryService_AddDay_TourMissing(t *testing.T) {
	store := &stubStore{
		selectOne: func(string, supabase.Filters, any) error { return noRows() },
	}

	_, err := NewItineraryService(store).AddDay(context.Background(), "nope", CreateItineraryDayInput{
		DayNumber:   1,
		Description: "x",
		ImageURL:    "https://img.example.com/x.jpg",
	})
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusNotFound || ae.Message != "Tour not found" {
		t.Fatalf("err=%v", err)
	}
}

func TestItineraryService_List_OrderedByDay(t *testing.T) {
	store := itineraryStore(t)
	store.selectList = func(table string, q supabase.ListQuery, dest any) (int64, error) {
		if q.Filters["tour_id"] != "eq.t1" || q.Order != "day_number.asc" {
			t.Fatalf("query=%+v", q)
		}
		fill(t, dest, "["+dayJSON+"]")
		return 1, nil
	}

	days, err := NewItineraryService(store).List(context.Background(), "t1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(days) != 1 || days[0].DayNumber != 3 {
		t.Fatalf("days=%+v", days)
	}
}

func TestItineraryService_UpdateDay_Miss(t *testing.T) {
	store := &stubStore{
		updateOne: func(table string, filters supabase.Filters, patch, dest any) error {
			if filters["tour_id"] != "eq.t1" || filters["day_number"] != "eq.4" {
				t.Fatalf("filters=%v", filters)
			}
			return noRows()
		},
	}

	_, err := NewItineraryService(store).UpdateDay(context.Background(), "t1", 4, UpdateItineraryDayInput{
		Description: ptr("x"),
	})
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Message != "Itinerary day 4 not found" {
		t.Fatalf("err=%v", err)
	}
}

func TestItineraryService_DeleteDay_CountZero(t *testing.T) {
	store := &stubStore{
		delete: func(string, supabase.Filters) (int64, error) { return 0, nil },
	}

	err := NewItineraryService(store).DeleteDay(context.Background(), "t1", 2)
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusNotFound || ae.Message != "Itinerary day 2 not found" {
		t.Fatalf("err=%v", err)
	}
}
