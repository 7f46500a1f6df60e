package services

import (
	"context"

	"github.com/Rigzin00/HHTrails-BE/internal/apperr"
	"github.com/Rigzin00/HHTrails-BE/internal/domain"
	"github.com/Rigzin00/HHTrails-BE/internal/supabase"
)

const tableTourDetails = "tour_details"

// detailsRow is the record store's shape for a tour details record.
type detailsRow struct {
	ID                       string   `json:"id"`
	TourID                   string   `json:"tour_id"`
	Overview                 string   `json:"overview"`
	Highlights               []string `json:"highlights"`
	Inclusions               []string `json:"inclusions"`
	Exclusions               []string `json:"exclusions"`
	AccommodationDescription *string  `json:"accommodation_description"`
	AccommodationMediaURL    *string  `json:"accommodation_media_url"`
	FeatureDescription       *string  `json:"feature_description"`
	FeatureMediaURL          *string  `json:"feature_media_url"`
	FeatureIsVideo           bool     `json:"feature_is_video"`
	RouteDescription         *string  `json:"route_description"`
	RoutePhotoURL            *string  `json:"route_photo_url"`
	CreatedAt                string   `json:"created_at"`
	UpdatedAt                string   `json:"updated_at"`
}

func (r detailsRow) toDomain() domain.TourDetails {
	return domain.TourDetails{
		ID:                       r.ID,
		TourID:                   r.TourID,
		Overview:                 r.Overview,
		Highlights:               r.Highlights,
		Inclusions:               r.Inclusions,
		Exclusions:               r.Exclusions,
		AccommodationDescription: r.AccommodationDescription,
		AccommodationMediaURL:    r.AccommodationMediaURL,
		FeatureDescription:       r.FeatureDescription,
		FeatureMediaURL:          r.FeatureMediaURL,
		FeatureIsVideo:           r.FeatureIsVideo,
		RouteDescription:         r.RouteDescription,
		RoutePhotoURL:            r.RoutePhotoURL,
		CreatedAt:                r.CreatedAt,
		UpdatedAt:                r.UpdatedAt,
	}
}

// CreateTourDetailsInput is the payload for creating a tour's details
// record.
type CreateTourDetailsInput struct {
	Overview                 string   `json:"overview" validate:"required"`
	Highlights               []string `json:"highlights" validate:"required,min=1,dive,required"`
	Inclusions               []string `json:"inclusions" validate:"required,min=1,dive,required"`
	Exclusions               []string `json:"exclusions" validate:"required,min=1,dive,required"`
	AccommodationDescription *string  `json:"accommodationDescription" validate:"omitempty,min=1"`
	AccommodationMediaURL    *string  `json:"accommodationMediaUrl" validate:"omitempty,url"`
	FeatureDescription       *string  `json:"featureDescription" validate:"omitempty,min=1"`
	FeatureMediaURL          *string  `json:"featureMediaUrl" validate:"omitempty,url"`
	FeatureIsVideo           bool     `json:"featureIsVideo"`
	RouteDescription         *string  `json:"routeDescription" validate:"omitempty,min=1"`
	RoutePhotoURL            *string  `json:"routePhotoUrl" validate:"omitempty,url"`
}

// UpdateTourDetailsInput is the partial payload for updating a tour's
// details record.
type UpdateTourDetailsInput struct {
	Overview                 *string  `json:"overview" validate:"omitempty,min=1"`
	Highlights               []string `json:"highlights" validate:"omitempty,min=1,dive,required"`
	Inclusions               []string `json:"inclusions" validate:"omitempty,min=1,dive,required"`
	Exclusions               []string `json:"exclusions" validate:"omitempty,min=1,dive,required"`
	AccommodationDescription *string  `json:"accommodationDescription" validate:"omitempty,min=1"`
	AccommodationMediaURL    *string  `json:"accommodationMediaUrl" validate:"omitempty,url"`
	FeatureDescription       *string  `json:"featureDescription" validate:"omitempty,min=1"`
	FeatureMediaURL          *string  `json:"featureMediaUrl" validate:"omitempty,url"`
	FeatureIsVideo           *bool    `json:"featureIsVideo"`
	RouteDescription         *string  `json:"routeDescription" validate:"omitempty,min=1"`
	RoutePhotoURL            *string  `json:"routePhotoUrl" validate:"omitempty,url"`
}

// DetailsService manages the single details record nested under a tour.
type DetailsService struct {
	store RecordStore
}

// NewDetailsService constructs a DetailsService backed by store.
func NewDetailsService(store RecordStore) *DetailsService {
	return &DetailsService{store: store}
}

// Get returns the details record for the tour.
func (s *DetailsService) Get(ctx context.Context, tourID string) (domain.TourDetails, error) {
	if _, err := fetchTour(ctx, s.store, tourID); err != nil {
		return domain.TourDetails{}, err
	}

	var row detailsRow
	err := s.store.SelectOne(ctx, tableTourDetails, supabase.Filters{"tour_id": supabase.Eq(tourID)}, &row)
	if err != nil {
		return domain.TourDetails{}, notFoundOr(err, "Tour details not found")
	}
	return row.toDomain(), nil
}

// Create writes the tour's details record. Each tour has at most one; a
// second create is a conflict.
func (s *DetailsService) Create(ctx context.Context, tourID string, in CreateTourDetailsInput) (domain.TourDetails, error) {
	if _, err := fetchTour(ctx, s.store, tourID); err != nil {
		return domain.TourDetails{}, err
	}

	var existing detailsRow
	err := s.store.SelectOne(ctx, tableTourDetails, supabase.Filters{"tour_id": supabase.Eq(tourID)}, &existing)
	if err == nil {
		return domain.TourDetails{}, apperr.Conflict("Tour details already exist. Use PUT to update them.")
	}
	if !supabase.IsNoRows(err) {
		return domain.TourDetails{}, err
	}

	body := map[string]any{
		"tour_id":                   tourID,
		"overview":                  in.Overview,
		"highlights":                in.Highlights,
		"inclusions":                in.Inclusions,
		"exclusions":                in.Exclusions,
		"accommodation_description": in.AccommodationDescription,
		"accommodation_media_url":   in.AccommodationMediaURL,
		"feature_description":       in.FeatureDescription,
		"feature_media_url":         in.FeatureMediaURL,
		"feature_is_video":          in.FeatureIsVideo,
		"route_description":         in.RouteDescription,
		"route_photo_url":           in.RoutePhotoURL,
	}

	var row detailsRow
	if err := s.store.Insert(ctx, tableTourDetails, body, &row); err != nil {
		if se, ok := err.(*supabase.StoreError); ok && se.Code == supabase.CodeUniqueViolation {
			return domain.TourDetails{}, apperr.Conflict("Tour details already exist. Use PUT to update them.")
		}
		return domain.TourDetails{}, writeError(err)
	}
	return row.toDomain(), nil
}

// Update applies the set fields of in to the tour's details record.
func (s *DetailsService) Update(ctx context.Context, tourID string, in UpdateTourDetailsInput) (domain.TourDetails, error) {
	patch := map[string]any{}
	if in.Overview != nil {
		patch["overview"] = *in.Overview
	}
	if in.Highlights != nil {
		patch["highlights"] = in.Highlights
	}
	if in.Inclusions != nil {
		patch["inclusions"] = in.Inclusions
	}
	if in.Exclusions != nil {
		patch["exclusions"] = in.Exclusions
	}
	if in.AccommodationDescription != nil {
		patch["accommodation_description"] = *in.AccommodationDescription
	}
	if in.AccommodationMediaURL != nil {
		patch["accommodation_media_url"] = *in.AccommodationMediaURL
	}
	if in.FeatureDescription != nil {
		patch["feature_description"] = *in.FeatureDescription
	}
	if in.FeatureMediaURL != nil {
		patch["feature_media_url"] = *in.FeatureMediaURL
	}
	if in.FeatureIsVideo != nil {
		patch["feature_is_video"] = *in.FeatureIsVideo
	}
	if in.RouteDescription != nil {
		patch["route_description"] = *in.RouteDescription
	}
	if in.RoutePhotoURL != nil {
		patch["route_photo_url"] = *in.RoutePhotoURL
	}

	var row detailsRow
	err := s.store.UpdateOne(ctx, tableTourDetails, supabase.Filters{"tour_id": supabase.Eq(tourID)}, patch, &row)
	if err != nil {
		if supabase.IsNoRows(err) {
			return domain.TourDetails{}, apperr.NotFound("Tour details not found. Create them first with POST.")
		}
		return domain.TourDetails{}, writeError(err)
	}
	return row.toDomain(), nil
}
