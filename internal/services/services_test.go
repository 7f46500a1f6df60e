package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Rigzin00/HHTrails-BE/internal/supabase"
)

// stubStore implements RecordStore with per-call hooks.
type stubStore struct {
	selectOne  func(table string, filters supabase.Filters, dest any) error
	selectList func(table string, q supabase.ListQuery, dest any) (int64, error)
	insert     func(table string, body, dest any) error
	updateOne  func(table string, filters supabase.Filters, patch, dest any) error
	delete     func(table string, filters supabase.Filters) (int64, error)
}

func (s *stubStore) SelectOne(_ context.Context, table string, filters supabase.Filters, dest any) error {
	return s.selectOne(table, filters, dest)
}

func (s *stubStore) SelectList(_ context.Context, table string, q supabase.ListQuery, dest any) (int64, error) {
	return s.selectList(table, q, dest)
}

func (s *stubStore) Insert(_ context.Context, table string, body, dest any) error {
	return s.insert(table, body, dest)
}

func (s *stubStore) UpdateOne(_ context.Context, table string, filters supabase.Filters, patch, dest any) error {
	return s.updateOne(table, filters, patch, dest)
}

func (s *stubStore) Delete(_ context.Context, table string, filters supabase.Filters) (int64, error) {
	return s.delete(table, filters)
}

// fill decodes raw JSON into a store destination, the way the real client
// decodes response bodies.
func fill(t *testing.T, dest any, raw string) {
	t.Helper()
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		t.Fatalf("fill: %v", err)
	}
}

func noRows() error {
	return &supabase.StoreError{StatusCode: 406, Code: supabase.CodeNoRows, Message: "no rows"}
}

func ptr[T any](v T) *T { return &v }
