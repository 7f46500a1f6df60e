package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Rigzin00/HHTrails-BE/internal/apperr"
	"github.com/Rigzin00/HHTrails-BE/internal/domain"
	"github.com/Rigzin00/HHTrails-BE/internal/supabase"
)

const tableItinerary = "tour_itinerary"

// itineraryRow is the record store's shape for an itinerary day.
type itineraryRow struct {
	ID          string `json:"id"`
	TourID      string `json:"tour_id"`
	DayNumber   int    `json:"day_number"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (r itineraryRow) toDomain() domain.ItineraryDay {
	return domain.ItineraryDay{
		ID:          r.ID,
		TourID:      r.TourID,
		DayNumber:   r.DayNumber,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// CreateItineraryDayInput is the payload for adding a day to an itinerary.
type CreateItineraryDayInput struct {
	DayNumber   int    `json:"dayNumber" validate:"required,gt=0"`
	Description string `json:"description" validate:"required"`
	ImageURL    string `json:"imageUrl" validate:"required,url"`
}

// UpdateItineraryDayInput is the partial payload for updating a day.
type UpdateItineraryDayInput struct {
	Description *string `json:"description" validate:"omitempty,min=1"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
}

// ItineraryService manages the day-by-day itinerary nested under a tour.
// Day numbers are unique per tour and bounded by the tour's duration.
type ItineraryService struct {
	store RecordStore
}

// NewItineraryService constructs an ItineraryService backed by store.
func NewItineraryService(store RecordStore) *ItineraryService {
	return &ItineraryService{store: store}
}

// List returns all itinerary days for the tour, ordered by day number.
func (s *ItineraryService) List(ctx context.Context, tourID string) ([]domain.ItineraryDay, error) {
	if _, err := fetchTour(ctx, s.store, tourID); err != nil {
		return nil, err
	}

	var rows []itineraryRow
	_, err := s.store.SelectList(ctx, tableItinerary, supabase.ListQuery{
		Filters: supabase.Filters{"tour_id": supabase.Eq(tourID)},
		Order:   "day_number.asc",
	}, &rows)
	if err != nil {
		return nil, err
	}

	days := make([]domain.ItineraryDay, 0, len(rows))
	for _, r := range rows {
		days = append(days, r.toDomain())
	}
	return days, nil
}

// AddDay inserts a day into the tour's itinerary. The day number must not
// exceed the tour's duration, and each day exists at most once.
func (s *ItineraryService) AddDay(ctx context.Context, tourID string, in CreateItineraryDayInput) (domain.ItineraryDay, error) {
	tour, err := fetchTour(ctx, s.store, tourID)
	if err != nil {
		return domain.ItineraryDay{}, err
	}
	if in.DayNumber > tour.DurationDays {
		return domain.ItineraryDay{}, apperr.Validation(fmt.Sprintf(
			"Day number %d exceeds the tour duration of %d days", in.DayNumber, tour.DurationDays))
	}

	var row itineraryRow
	err = s.store.Insert(ctx, tableItinerary, map[string]any{
		"tour_id":     tourID,
		"day_number":  in.DayNumber,
		"description": in.Description,
		"image_url":   in.ImageURL,
	}, &row)
	if err != nil {
		if se, ok := err.(*supabase.StoreError); ok && se.Code == supabase.CodeUniqueViolation {
			return domain.ItineraryDay{}, apperr.Conflict(fmt.Sprintf(
				"Day %d already exists. Use PUT to update it.", in.DayNumber))
		}
		return domain.ItineraryDay{}, writeError(err)
	}
	return row.toDomain(), nil
}

// UpdateDay applies the set fields of in to one day of the tour's
// itinerary.
func (s *ItineraryService) UpdateDay(ctx context.Context, tourID string, dayNumber int, in UpdateItineraryDayInput) (domain.ItineraryDay, error) {
	patch := map[string]any{}
	if in.Description != nil {
		patch["description"] = *in.Description
	}
	if in.ImageURL != nil {
		patch["image_url"] = *in.ImageURL
	}

	var row itineraryRow
	err := s.store.UpdateOne(ctx, tableItinerary, supabase.Filters{
		"tour_id":    supabase.Eq(tourID),
		"day_number": supabase.Eq(strconv.Itoa(dayNumber)),
	}, patch, &row)
	if err != nil {
		if supabase.IsNoRows(err) {
			return domain.ItineraryDay{}, apperr.NotFound(fmt.Sprintf("Itinerary day %d not found", dayNumber))
		}
		return domain.ItineraryDay{}, writeError(err)
	}
	return row.toDomain(), nil
}

// DeleteDay removes one day from the tour's itinerary.
func (s *ItineraryService) DeleteDay(ctx context.Context, tourID string, dayNumber int) error {
	n, err := s.store.Delete(ctx, tableItinerary, supabase.Filters{
		"tour_id":    supabase.Eq(tourID),
		"day_number": supabase.Eq(strconv.Itoa(dayNumber)),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return apperr.NotFound(fmt.Sprintf("Itinerary day %d not found", dayNumber))
	}
	return nil
}
