// Package handlers wires HTTP routes to the services layer. Handlers stay
// thin: request shapes are bound and checked by the validation middleware,
// failures propagate through the Gin error chain to the terminal
// classifier, and successes are wrapped in the response envelope.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rigzin00/HHTrails-BE/internal/http/respond"
	"github.com/Rigzin00/HHTrails-BE/internal/http/validation"
	"github.com/Rigzin00/HHTrails-BE/internal/services"
	"github.com/Rigzin00/HHTrails-BE/internal/utils"
)

const maxPageSize = 100

// tourIDParams binds the :id path segment shared by all tour routes.
type tourIDParams struct {
	ID string `uri:"id" validate:"required,uuid"`
}

// listToursQuery binds the catalog filter query string. Numeric values
// arrive as strings and are validated as digits before parsing.
type listToursQuery struct {
	Region   string `form:"region" validate:"omitempty,oneof=Ladakh Spiti Kashmir Himachal"`
	Season   string `form:"season" validate:"omitempty,oneof=Summer Winter Monsoon Festival"`
	Types    string `form:"types"`
	IsCustom string `form:"isCustom" validate:"omitempty,oneof=true false"`
	Page     string `form:"page" validate:"omitempty,number"`
	Limit    string `form:"limit" validate:"omitempty,number"`
}

// TourHandler serves the tour catalog routes.
type TourHandler struct {
	tours *services.TourService
}

// NewTourHandler constructs a TourHandler.
func NewTourHandler(tours *services.TourService) *TourHandler {
	return &TourHandler{tours: tours}
}

// Register mounts the catalog routes on rg. Write operations sit behind the
// admin gate.
func (h *TourHandler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.GET("", validation.Validate(validation.Schema{
		Query: func() any { return new(listToursQuery) },
	}), h.list)

	rg.GET("/:id", validation.Validate(validation.Schema{
		Params: func() any { return new(tourIDParams) },
	}), h.get)

	rg.POST("", admin, validation.Validate(validation.Schema{
		Body: func() any { return new(services.CreateTourInput) },
	}), h.create)

	rg.PUT("/:id", admin, validation.Validate(validation.Schema{
		Params: func() any { return new(tourIDParams) },
		Body:   func() any { return new(services.UpdateTourInput) },
		Refine: validation.NonEmptyPatch("At least one field must be provided for update"),
	}), h.update)

	rg.DELETE("/:id", admin, validation.Validate(validation.Schema{
		Params: func() any { return new(tourIDParams) },
	}), h.delete)
}

func (h *TourHandler) create(c *gin.Context) {
	in := validation.Body[services.CreateTourInput](c)

	tour, err := h.tours.Create(c.Request.Context(), *in)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusCreated, gin.H{"tour": tour})
}

func (h *TourHandler) list(c *gin.Context) {
	q := validation.Query[listToursQuery](c)

	query := services.ListToursQuery{
		Region: q.Region,
		Season: q.Season,
		Types:  utils.SplitCSV(q.Types),
		Page:   utils.AtoiDefault(q.Page, 1),
		Limit:  utils.ClampLimit(utils.AtoiDefault(q.Limit, 10), maxPageSize),
	}
	if q.IsCustom != "" {
		isCustom := q.IsCustom == "true"
		query.IsCustom = &isCustom
	}

	tours, pagination, err := h.tours.List(c.Request.Context(), query)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"tours": tours, "pagination": pagination})
}

func (h *TourHandler) get(c *gin.Context) {
	p := validation.Params[tourIDParams](c)

	tour, err := h.tours.Get(c.Request.Context(), p.ID)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"tour": tour})
}

func (h *TourHandler) update(c *gin.Context) {
	p := validation.Params[tourIDParams](c)
	in := validation.Body[services.UpdateTourInput](c)

	tour, err := h.tours.Update(c.Request.Context(), p.ID, *in)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"tour": tour})
}

func (h *TourHandler) delete(c *gin.Context) {
	p := validation.Params[tourIDParams](c)

	if err := h.tours.Delete(c.Request.Context(), p.ID); err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"message": "Tour deleted successfully"})
}
