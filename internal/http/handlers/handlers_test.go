package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Rigzin00/HHTrails-BE/internal/http/middleware"
	"github.com/Rigzin00/HHTrails-BE/internal/services"
	"github.com/Rigzin00/HHTrails-BE/internal/supabase"
)

const adminKey = "test-admin-key"

// stubStore implements services.RecordStore with per-call hooks.
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

// newTestRouter mounts the tour, details, itinerary, and blog handlers the
// way the real router does, with the terminal classifier installed.
func newTestRouter(store services.RecordStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(true))

	admin := middleware.RequireAdmin(adminKey)
	tours := r.Group("/api/v1/tours")
	NewTourHandler(services.NewTourService(store)).Register(tours, admin)
	NewDetailsHandler(services.NewDetailsService(store)).Register(tours, admin)
	NewItineraryHandler(services.NewItineraryService(store)).Register(tours, admin)
	NewBlogHandler(services.NewBlogService(store)).Register(r.Group("/api/v1/blogs"), admin)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string, admin bool) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if admin {
		req.Header.Set("x-admin-key", adminKey)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("json: %v (body=%s)", err, w.Body.String())
	}
	return w, out
}

func doRaw(t *testing.T, r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errMessage(t *testing.T, body map[string]any) string {
	t.Helper()
	if body["success"] != false {
		t.Fatalf("success=%v", body["success"])
	}
	errBody, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("error missing: %v", body)
	}
	msg, _ := errBody["message"].(string)
	return msg
}

const storeTourJSON = `{
	"id": "8d7f4a9e-3c21-4a57-9c15-0f6f1fddc001", "title": "Ladakh Monasteries",
	"description": "d", "region": "Ladakh", "types": ["Cultural"], "season": "Summer",
	"duration_days": 7, "duration_nights": 6,
	"photo_url": "https://img.example.com/t1.jpg", "is_custom": false,
	"created_at": "2026-08-01T10:00:00Z", "updated_at": "2026-08-01T10:00:00Z"
}`

const tourID = "8d7f4a9e-3c21-4a57-9c15-0f6f1fddc001"

func TestCreateTour_EmptyBody_ListsEveryRequiredField(t *testing.T) {
	r := newTestRouter(&stubStore{})

	w, body := do(t, r, http.MethodPost, "/api/v1/tours", `{}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	msg := errMessage(t, body)
	for _, field := range []string{
		"title: is required",
		"description: is required",
		"region: is required",
		"types: is required",
		"season: is required",
		"durationDays: is required",
		"photoUrl: is required",
	} {
		if !strings.Contains(msg, field) {
			t.Fatalf("missing %q in %q", field, msg)
		}
	}
}

func TestCreateTour_CollectsMixedViolations(t *testing.T) {
	r := newTestRouter(&stubStore{})

	w, body := do(t, r, http.MethodPost, "/api/v1/tours", `{
		"title": "T", "description": "d", "region": "Atlantis",
		"types": ["Cultural"], "season": "Summer",
		"durationDays": 7, "durationNights": 6, "photoUrl": "not-a-url"
	}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	msg := errMessage(t, body)
	if !strings.Contains(msg, "region: must be one of: Ladakh, Spiti, Kashmir, Himachal") {
		t.Fatalf("msg=%q", msg)
	}
	if !strings.Contains(msg, "photoUrl: must be a valid URL") {
		t.Fatalf("msg=%q", msg)
	}
}

func TestCreateTour_UnknownFieldsIgnored(t *testing.T) {
	store := &stubStore{
		insert: func(table string, body, dest any) error {
			return json.Unmarshal([]byte(storeTourJSON), dest)
		},
	}
	r := newTestRouter(store)

	w, body := do(t, r, http.MethodPost, "/api/v1/tours", `{
		"title": "Ladakh Monasteries", "description": "d", "region": "Ladakh",
		"types": ["Cultural"], "season": "Summer",
		"durationDays": 7, "durationNights": 6,
		"photoUrl": "https://img.example.com/t1.jpg",
		"somethingExtra": true
	}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%v", w.Code, body)
	}
	if body["success"] != true {
		t.Fatalf("body=%v", body)
	}
	data := body["data"].(map[string]any)
	tour := data["tour"].(map[string]any)
	if tour["durationDays"] != float64(7) {
		t.Fatalf("tour=%v", tour)
	}
}

func TestCreateTour_WrongFieldType(t *testing.T) {
	r := newTestRouter(&stubStore{})

	w, body := do(t, r, http.MethodPost, "/api/v1/tours", `{"durationDays": "seven"}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if msg := errMessage(t, body); !strings.Contains(msg, "durationDays: must be a number") {
		t.Fatalf("msg=%q", msg)
	}
}

func TestCreateTour_RequiresAdminBeforeValidation(t *testing.T) {
	r := newTestRouter(&stubStore{})

	// Invalid body, no admin key: the gate answers first.
	w, body := do(t, r, http.MethodPost, "/api/v1/tours", `{}`, false)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status=%d", w.Code)
	}
	if msg := errMessage(t, body); msg != "Admin authentication required. Please provide admin key." {
		t.Fatalf("msg=%q", msg)
	}
}

func TestGetTour_InvalidUUIDParam(t *testing.T) {
	r := newTestRouter(&stubStore{})

	w, body := do(t, r, http.MethodGet, "/api/v1/tours/not-a-uuid", "", false)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if msg := errMessage(t, body); msg != "id: must be a valid UUID" {
		t.Fatalf("msg=%q", msg)
	}
}

func TestGetTour_NotFoundEnvelope(t *testing.T) {
	store := &stubStore{
		selectOne: func(string, supabase.Filters, any) error {
			return &supabase.StoreError{StatusCode: 406, Code: supabase.CodeNoRows, Message: "no rows"}
		},
	}
	r := newTestRouter(store)

	w, body := do(t, r, http.MethodGet, "/api/v1/tours/"+tourID, "", false)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	if msg := errMessage(t, body); msg != "Tour not found" {
		t.Fatalf("msg=%q", msg)
	}
	meta := body["meta"].(map[string]any)
	if _, ok := meta["timestamp"].(string); !ok {
		t.Fatalf("meta=%v", meta)
	}
}

func TestUpdateTour_EmptyPatchRejected(t *testing.T) {
	r := newTestRouter(&stubStore{})

	w, body := do(t, r, http.MethodPut, "/api/v1/tours/"+tourID, `{}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if msg := errMessage(t, body); msg != "At least one field must be provided for update" {
		t.Fatalf("msg=%q", msg)
	}
}

func TestUpdateTour_FieldRulesStillApplyToPatch(t *testing.T) {
	r := newTestRouter(&stubStore{})

	w, body := do(t, r, http.MethodPut, "/api/v1/tours/"+tourID, `{"photoUrl": "nope"}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if msg := errMessage(t, body); msg != "photoUrl: must be a valid URL" {
		t.Fatalf("msg=%q", msg)
	}
}

func TestListTours_DefaultsAndFilters(t *testing.T) {
	var gotQ supabase.ListQuery
	store := &stubStore{
		selectList: func(table string, q supabase.ListQuery, dest any) (int64, error) {
			gotQ = q
			return 0, json.Unmarshal([]byte("[]"), dest)
		},
	}
	r := newTestRouter(store)

	w, body := do(t, r, http.MethodGet, "/api/v1/tours?region=Ladakh&types=Cultural,Festival", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%v", w.Code, body)
	}
	if gotQ.Limit != 10 || gotQ.Offset != 0 {
		t.Fatalf("query=%+v", gotQ)
	}
	if gotQ.Filters["region"] != "eq.Ladakh" || gotQ.Filters["types"] != "cs.{Cultural,Festival}" {
		t.Fatalf("filters=%v", gotQ.Filters)
	}
	data := body["data"].(map[string]any)
	pg := data["pagination"].(map[string]any)
	if pg["page"] != float64(1) || pg["limit"] != float64(10) {
		t.Fatalf("pagination=%v", pg)
	}
}

func TestListTours_RejectsUnknownRegionFilter(t *testing.T) {
	r := newTestRouter(&stubStore{})

	w, body := do(t, r, http.MethodGet, "/api/v1/tours?region=Atlantis", "", false)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if msg := errMessage(t, body); !strings.Contains(msg, "region: must be one of") {
		t.Fatalf("msg=%q", msg)
	}
}

func TestAddItineraryDay_ConflictEnvelope(t *testing.T) {
	store := &stubStore{
		selectOne: func(table string, filters supabase.Filters, dest any) error {
			return json.Unmarshal([]byte(storeTourJSON), dest)
		},
		insert: func(string, any, any) error {
			return &supabase.StoreError{StatusCode: 409, Code: supabase.CodeUniqueViolation, Message: "duplicate key"}
		},
	}
	r := newTestRouter(store)

	w, body := do(t, r, http.MethodPost, "/api/v1/tours/"+tourID+"/itinerary", `{
		"dayNumber": 3, "description": "Leh to Nubra",
		"imageUrl": "https://img.example.com/d3.jpg"
	}`, true)
	if w.Code != http.StatusConflict {
		t.Fatalf("status=%d", w.Code)
	}
	if msg := errMessage(t, body); msg != "Day 3 already exists. Use PUT to update it." {
		t.Fatalf("msg=%q", msg)
	}
}

func TestStoreTimeoutBecomes503(t *testing.T) {
	store := &stubStore{
		selectOne: func(string, supabase.Filters, any) error {
			return context.DeadlineExceeded
		},
	}
	r := newTestRouter(store)

	w, body := do(t, r, http.MethodGet, "/api/v1/tours/"+tourID, "", false)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d", w.Code)
	}
	if msg := errMessage(t, body); msg != "Connection timed out. Please try again." {
		t.Fatalf("msg=%q", msg)
	}
}

func TestBlogUpdate_InvalidDateFormat(t *testing.T) {
	r := newTestRouter(&stubStore{})

	w, body := do(t, r, http.MethodPut, "/api/v1/blogs/"+tourID, `{"publishedDate": "15-08-2026"}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d", w.Code)
	}
	if msg := errMessage(t, body); msg != "publishedDate: must be in YYYY-MM-DD format" {
		t.Fatalf("msg=%q", msg)
	}
}

func TestDeleteBlog_MissingRow(t *testing.T) {
	store := &stubStore{
		delete: func(string, supabase.Filters) (int64, error) { return 0, nil },
	}
	r := newTestRouter(store)

	w, body := do(t, r, http.MethodDelete, "/api/v1/blogs/"+tourID, "", true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	if msg := errMessage(t, body); msg != "Blog not found" {
		t.Fatalf("msg=%q", msg)
	}
}
