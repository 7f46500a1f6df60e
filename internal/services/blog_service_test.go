package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/Rigzin00/HHTrails-BE/internal/apperr"
	"github.com/Rigzin00/HHTrails-BE/internal/supabase"
)

const blogJSON = `{
	"id": "b1", "category": "Travel", "cover_image_url": "https://img.example.com/b1.jpg",
	"title": "Winter in Spiti", "short_description": "s", "content": "c",
	"author_name": "Ada", "published_date": "2026-08-15", "reading_time_minutes": 6,
	"created_at": "2026-08-01T10:00:00Z", "updated_at": "2026-08-01T10:00:00Z"
}`

func TestBlogService_List_OrderedByPublishedDate(t *testing.T) {
	var gotQ supabase.ListQuery
	store := &stubStore{
		selectList: func(table string, q supabase.ListQuery, dest any) (int64, error) {
			if table != "blogs" {
				t.Fatalf("table=%s", table)
			}
			gotQ = q
			fill(t, dest, "["+blogJSON+"]")
			return 1, nil
		},
	}

	blogs, pg, err := NewBlogService(store).List(context.Background(), ListBlogsQuery{
		Category: "Travel",
		Page:     1,
		Limit:    10,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotQ.Order != "published_date.desc" || gotQ.Filters["category"] != "eq.Travel" {
		t.Fatalf("query=%+v", gotQ)
	}
	if len(blogs) != 1 || blogs[0].Title != "Winter in Spiti" {
		t.Fatalf("blogs=%+v", blogs)
	}
	if pg.TotalPages != 1 {
		t.Fatalf("pagination=%+v", pg)
	}
}

func TestBlogService_Create_OmitsUnsetPublishedDate(t *testing.T) {
	var gotBody map[string]any
	store := &stubStore{
		insert: func(table string, body, dest any) error {
			gotBody = body.(map[string]any)
			fill(t, dest, blogJSON)
			return nil
		},
	}

	_, err := NewBlogService(store).Create(context.Background(), CreateBlogInput{
		Category:           "Travel",
		CoverImageURL:      "https://img.example.com/b1.jpg",
		Title:              "Winter in Spiti",
		ShortDescription:   "s",
		Content:            "c",
		AuthorName:         "Ada",
		ReadingTimeMinutes: 6,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	// The store defaults published_date to the current date.
	if _, present := gotBody["published_date"]; present {
		t.Fatalf("body=%v", gotBody)
	}
}

func TestBlogService_Delete_CountZero(t *testing.T) {
	store := &stubStore{
		delete: func(string, supabase.Filters) (int64, error) { return 0, nil },
	}

	err := NewBlogService(store).Delete(context.Background(), "nope")
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Status != http.StatusNotFound || ae.Message != "Blog not found" {
		t.Fatalf("err=%v", err)
	}
}

func TestBlogService_Update_Miss(t *testing.T) {
	store := &stubStore{
		updateOne: func(string, supabase.Filters, any, any) error { return noRows() },
	}

	_, err := NewBlogService(store).Update(context.Background(), "nope", UpdateBlogInput{Title: ptr("x")})
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Message != "Blog not found" {
		t.Fatalf("err=%v", err)
	}
}
