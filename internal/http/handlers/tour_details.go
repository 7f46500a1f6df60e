package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rigzin00/HHTrails-BE/internal/http/respond"
	"github.com/Rigzin00/HHTrails-BE/internal/http/validation"
	"github.com/Rigzin00/HHTrails-BE/internal/services"
)

// DetailsHandler serves the details record nested under a tour.
type DetailsHandler struct {
	details *services.DetailsService
}

// NewDetailsHandler constructs a DetailsHandler.
func NewDetailsHandler(details *services.DetailsService) *DetailsHandler {
	return &DetailsHandler{details: details}
}

// Register mounts the details routes on the tour group.
func (h *DetailsHandler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.GET("/:id/details", validation.Validate(validation.Schema{
		Params: func() any { return new(tourIDParams) },
	}), h.get)

	rg.POST("/:id/details", admin, validation.Validate(validation.Schema{
		Params: func() any { return new(tourIDParams) },
		Body:   func() any { return new(services.CreateTourDetailsInput) },
	}), h.create)

	rg.PUT("/:id/details", admin, validation.Validate(validation.Schema{
		Params: func() any { return new(tourIDParams) },
		Body:   func() any { return new(services.UpdateTourDetailsInput) },
		Refine: validation.NonEmptyPatch("At least one field must be provided for update"),
	}), h.update)
}

func (h *DetailsHandler) get(c *gin.Context) {
	p := validation.Params[tourIDParams](c)

	details, err := h.details.Get(c.Request.Context(), p.ID)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"tourDetails": details})
}

func (h *DetailsHandler) create(c *gin.Context) {
	p := validation.Params[tourIDParams](c)
	in := validation.Body[services.CreateTourDetailsInput](c)

	details, err := h.details.Create(c.Request.Context(), p.ID, *in)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusCreated, gin.H{"tourDetails": details})
}

func (h *DetailsHandler) update(c *gin.Context) {
	p := validation.Params[tourIDParams](c)
	in := validation.Body[services.UpdateTourDetailsInput](c)

	details, err := h.details.Update(c.Request.Context(), p.ID, *in)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"tourDetails": details})
}
