// Package domain defines the wire-facing models returned by the API.
//
// These are the camelCase JSON shapes consumed by the client application.
// The snake_case row shapes returned by the record store live in the
// services layer, which owns the mapping between the two.
package domain

// Tour is a tour offering in the catalog.
type Tour struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Region         string   `json:"region"`
	Types          []string `json:"types"`
	Season         string   `json:"season"`
	DurationDays   int      `json:"durationDays"`
	DurationNights int      `json:"durationNights"`
	PhotoURL       string   `json:"photoUrl"`
	IsCustom       bool     `json:"isCustom"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

// TourDetails is the extended description attached to a tour. At most one
// details record exists per tour; the record store enforces uniqueness.
type TourDetails struct {
	ID                       string   `json:"id"`
	TourID                   string   `json:"tourId"`
	Overview                 string   `json:"overview"`
	Highlights               []string `json:"highlights"`
	Inclusions               []string `json:"inclusions"`
	Exclusions               []string `json:"exclusions"`
	AccommodationDescription *string  `json:"accommodationDescription"`
	AccommodationMediaURL    *string  `json:"accommodationMediaUrl"`
	FeatureDescription       *string  `json:"featureDescription"`
	FeatureMediaURL          *string  `json:"featureMediaUrl"`
	FeatureIsVideo           bool     `json:"featureIsVideo"`
	RouteDescription         *string  `json:"routeDescription"`
	RoutePhotoURL            *string  `json:"routePhotoUrl"`
	CreatedAt                string   `json:"createdAt"`
	UpdatedAt                string   `json:"updatedAt"`
}

// ItineraryDay is a single day within a tour itinerary. Day numbers are
// unique per tour and bounded by the tour's duration in days.
type ItineraryDay struct {
	ID          string `json:"id"`
	TourID      string `json:"tourId"`
	DayNumber   int    `json:"dayNumber"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// Blog is a published blog post.
type Blog struct {
	ID                 string `json:"id"`
	Category           string `json:"category"`
	CoverImageURL      string `json:"coverImageUrl"`
	Title              string `json:"title"`
	ShortDescription   string `json:"shortDescription"`
	Content            string `json:"content"`
	AuthorName         string `json:"authorName"`
	PublishedDate      string `json:"publishedDate"`
	ReadingTimeMinutes int    `json:"readingTimeMinutes"`
	CreatedAt          string `json:"createdAt"`
	UpdatedAt          string `json:"updatedAt"`
}

// User is the identity-provider account shape exposed to clients.
type User struct {
	ID            string `json:"id"`
	Email         string `json:"email,omitempty"`
	FullName      string `json:"fullName,omitempty"`
	Avatar        string `json:"avatar,omitempty"`
	EmailVerified bool   `json:"emailVerified,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

// Session is an identity-provider token pair.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
	ExpiresAt    int64  `json:"expiresAt"`
}

// Principal is the authenticated identity derived once per request by the
// bearer-token gate. It is absent on routes that do not apply the gate.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}

// Pagination carries list-response paging metadata.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}
