package services

import (
	"context"

	"github.com/Rigzin00/HHTrails-BE/internal/domain"
	"github.com/Rigzin00/HHTrails-BE/internal/supabase"
)

const tableTours = "tours"

// tourRow is the record store's shape for a tour.
type tourRow struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Region         string   `json:"region"`
	Types          []string `json:"types"`
	Season         string   `json:"season"`
	DurationDays   int      `json:"duration_days"`
	DurationNights int      `json:"duration_nights"`
	PhotoURL       string   `json:"photo_url"`
	IsCustom       bool     `json:"is_custom"`
	CreatedAt      string   `json:"created_at"`
	UpdatedAt      string   `json:"updated_at"`
}

func (r tourRow) toDomain() domain.Tour {
	return domain.Tour{
		ID:             r.ID,
		Title:          r.Title,
		Description:    r.Description,
		Region:         r.Region,
		Types:          r.Types,
		Season:         r.Season,
		DurationDays:   r.DurationDays,
		DurationNights: r.DurationNights,
		PhotoURL:       r.PhotoURL,
		IsCustom:       r.IsCustom,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// CreateTourInput is the payload for creating a tour.
type CreateTourInput struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Description    string   `json:"description" validate:"required"`
	Region         string   `json:"region" validate:"required,oneof=Ladakh Spiti Kashmir Himachal"`
	Types          []string `json:"types" validate:"required,min=1,dive,oneof=Cultural Photography Heritage Village Festival"`
	Season         string   `json:"season" validate:"required,oneof=Summer Winter Monsoon Festival"`
	DurationDays   int      `json:"durationDays" validate:"required,gt=0"`
	DurationNights int      `json:"durationNights" validate:"gte=0"`
	PhotoURL       string   `json:"photoUrl" validate:"required,url"`
	IsCustom       bool     `json:"isCustom"`
}

// UpdateTourInput is the partial payload for updating a tour. Only set
// fields are written.
type UpdateTourInput struct {
	Title          *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Description    *string  `json:"description" validate:"omitempty,min=1"`
	Region         *string  `json:"region" validate:"omitempty,oneof=Ladakh Spiti Kashmir Himachal"`
	Types          []string `json:"types" validate:"omitempty,min=1,dive,oneof=Cultural Photography Heritage Village Festival"`
	Season         *string  `json:"season" validate:"omitempty,oneof=Summer Winter Monsoon Festival"`
	DurationDays   *int     `json:"durationDays" validate:"omitempty,gt=0"`
	DurationNights *int     `json:"durationNights" validate:"omitempty,gte=0"`
	PhotoURL       *string  `json:"photoUrl" validate:"omitempty,url"`
	IsCustom       *bool    `json:"isCustom"`
}

// ListToursQuery carries the parsed catalog filters and paging.
type ListToursQuery struct {
	Region   string
	Season   string
	Types    []string
	IsCustom *bool
	Page     int
	Limit    int
}

// TourService manages the tour catalog.
type TourService struct {
	store RecordStore
}

// NewTourService constructs a TourService backed by store.
func NewTourService(store RecordStore) *TourService {
	return &TourService{store: store}
}

// Create inserts a new tour and returns the stored record.
func (s *TourService) Create(ctx context.Context, in CreateTourInput) (domain.Tour, error) {
	body := map[string]any{
		"title":           in.Title,
		"description":     in.Description,
		"region":          in.Region,
		"types":           in.Types,
		"season":          in.Season,
		"duration_days":   in.DurationDays,
		"duration_nights": in.DurationNights,
		"photo_url":       in.PhotoURL,
		"is_custom":       in.IsCustom,
	}

	var row tourRow
	if err := s.store.Insert(ctx, tableTours, body, &row); err != nil {
		return domain.Tour{}, writeError(err)
	}
	return row.toDomain(), nil
}

// List returns a page of tours matching q, newest first.
func (s *TourService) List(ctx context.Context, q ListToursQuery) ([]domain.Tour, domain.Pagination, error) {
	filters := supabase.Filters{}
	if q.Region != "" {
		filters["region"] = supabase.Eq(q.Region)
	}
	if q.Season != "" {
		filters["season"] = supabase.Eq(q.Season)
	}
	if len(q.Types) > 0 {
		filters["types"] = supabase.Cs(q.Types)
	}
	if q.IsCustom != nil {
		if *q.IsCustom {
			filters["is_custom"] = supabase.Eq("true")
		} else {
			filters["is_custom"] = supabase.Eq("false")
		}
	}

	var rows []tourRow
	total, err := s.store.SelectList(ctx, tableTours, supabase.ListQuery{
		Filters: filters,
		Order:   "created_at.desc",
		Limit:   q.Limit,
		Offset:  (q.Page - 1) * q.Limit,
	}, &rows)
	if err != nil {
		return nil, domain.Pagination{}, err
	}

	tours := make([]domain.Tour, 0, len(rows))
	for _, r := range rows {
		tours = append(tours, r.toDomain())
	}
	return tours, paginate(q.Page, q.Limit, total), nil
}

// Get returns the tour with the given id.
func (s *TourService) Get(ctx context.Context, id string) (domain.Tour, error) {
	var row tourRow
	if err := s.store.SelectOne(ctx, tableTours, supabase.Filters{"id": supabase.Eq(id)}, &row); err != nil {
		return domain.Tour{}, notFoundOr(err, "Tour not found")
	}
	return row.toDomain(), nil
}

// Update applies the set fields of in to the tour with the given id.
func (s *TourService) Update(ctx context.Context, id string, in UpdateTourInput) (domain.Tour, error) {
	patch := map[string]any{}
	if in.Title != nil {
		patch["title"] = *in.Title
	}
	if in.Description != nil {
		patch["description"] = *in.Description
	}
	if in.Region != nil {
		patch["region"] = *in.Region
	}
	if in.Types != nil {
		patch["types"] = in.Types
	}
	if in.Season != nil {
		patch["season"] = *in.Season
	}
	if in.DurationDays != nil {
		patch["duration_days"] = *in.DurationDays
	}
	if in.DurationNights != nil {
		patch["duration_nights"] = *in.DurationNights
	}
	if in.PhotoURL != nil {
		patch["photo_url"] = *in.PhotoURL
	}
	if in.IsCustom != nil {
		patch["is_custom"] = *in.IsCustom
	}

	var row tourRow
	err := s.store.UpdateOne(ctx, tableTours, supabase.Filters{"id": supabase.Eq(id)}, patch, &row)
	if err != nil {
		if supabase.IsNoRows(err) {
			return domain.Tour{}, notFoundOr(err, "Tour not found")
		}
		return domain.Tour{}, writeError(err)
	}
	return row.toDomain(), nil
}

// Delete removes the tour with the given id. Removing an absent tour is
// not an error.
func (s *TourService) Delete(ctx context.Context, id string) error {
	_, err := s.store.Delete(ctx, tableTours, supabase.Filters{"id": supabase.Eq(id)})
	return err
}

// fetchTour loads the parent tour for nested resources, mapping a miss to
// the tour's not-found error.
func fetchTour(ctx context.Context, store RecordStore, id string) (tourRow, error) {
	var row tourRow
	err := store.SelectOne(ctx, tableTours, supabase.Filters{"id": supabase.Eq(id)}, &row)
	if err != nil {
		return tourRow{}, notFoundOr(err, "Tour not found")
	}
	return row, nil
}

// paginate builds paging metadata for a page of size limit out of total
// rows.
func paginate(page, limit int, total int64) domain.Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return domain.Pagination{Page: page, Limit: limit, Total: total, TotalPages: pages}
}
