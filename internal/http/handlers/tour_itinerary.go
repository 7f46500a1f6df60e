package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Rigzin00/HHTrails-BE/internal/http/respond"
	"github.com/Rigzin00/HHTrails-BE/internal/http/validation"
	"github.com/Rigzin00/HHTrails-BE/internal/services"
)

// dayParams binds the :id/:dayNumber pair for single-day routes.
type dayParams struct {
	ID        string `uri:"id" validate:"required,uuid"`
	DayNumber string `uri:"dayNumber" validate:"required,number"`
}

// ItineraryHandler serves the itinerary routes nested under a tour.
type ItineraryHandler struct {
	itinerary *services.ItineraryService
}

// NewItineraryHandler constructs an ItineraryHandler.
func NewItineraryHandler(itinerary *services.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{itinerary: itinerary}
}

// Register mounts the itinerary routes on the tour group.
func (h *ItineraryHandler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.GET("/:id/itinerary", validation.Validate(validation.Schema{
		Params: func() any { return new(tourIDParams) },
	}), h.list)

	rg.POST("/:id/itinerary", admin, validation.Validate(validation.Schema{
		Params: func() any { return new(tourIDParams) },
		Body:   func() any { return new(services.CreateItineraryDayInput) },
	}), h.addDay)

	rg.PUT("/:id/itinerary/:dayNumber", admin, validation.Validate(validation.Schema{
		Params: func() any { return new(dayParams) },
		Body:   func() any { return new(services.UpdateItineraryDayInput) },
		Refine: validation.NonEmptyPatch("At least one field must be provided for update"),
	}), h.updateDay)

	rg.DELETE("/:id/itinerary/:dayNumber", admin, validation.Validate(validation.Schema{
		Params: func() any { return new(dayParams) },
	}), h.deleteDay)
}

func (h *ItineraryHandler) list(c *gin.Context) {
	p := validation.Params[tourIDParams](c)

	days, err := h.itinerary.List(c.Request.Context(), p.ID)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"itinerary": days})
}

func (h *ItineraryHandler) addDay(c *gin.Context) {
	p := validation.Params[tourIDParams](c)
	in := validation.Body[services.CreateItineraryDayInput](c)

	day, err := h.itinerary.AddDay(c.Request.Context(), p.ID, *in)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusCreated, gin.H{"day": day})
}

func (h *ItineraryHandler) updateDay(c *gin.Context) {
	p := validation.Params[dayParams](c)
	in := validation.Body[services.UpdateItineraryDayInput](c)
	dayNum, _ := strconv.Atoi(p.DayNumber)

	day, err := h.itinerary.UpdateDay(c.Request.Context(), p.ID, dayNum, *in)
	if err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"day": day})
}

func (h *ItineraryHandler) deleteDay(c *gin.Context) {
	p := validation.Params[dayParams](c)
	dayNum, _ := strconv.Atoi(p.DayNumber)

	if err := h.itinerary.DeleteDay(c.Request.Context(), p.ID, dayNum); err != nil {
		c.Error(err) //nolint:errcheck
		c.Abort()
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"message": "Day " + p.DayNumber + " deleted successfully"})
}
