package handler

import (
	"net/http"

	"github.com/eventhub/backend/internal/model"
	"github.com/eventhub/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// DashboardHandler exposes the staff-only event CRUD surface. Routes
// are mounted behind both the auth and staff middleware.
type DashboardHandler struct {
	svc *service.EventService
}

func NewDashboardHandler(svc *service.EventService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// CreateEvent godoc
// @Summary Create an event
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateEventRequest true "Event payload"
// @Success 201 {object} model.EventEnvelope
// @Failure 400 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /api/dashboard/events [post]
func (h *DashboardHandler) CreateEvent(c *gin.Context) {
	var req model.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "Invalid request body."})
		return
	}

	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Message: "Invalid token."})
		return
	}

	event, err := h.svc.CreateEvent(c.Request.Context(), req, user.ID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.EventEnvelope{
		Message: "Event created successfully.",
		Event:   *event,
	})
}

func (h *DashboardHandler) ListEvents(c *gin.Context) {
	events, err := h.svc.ListEvents(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.EventListResponse{Events: events})
}

func (h *DashboardHandler) GetEvent(c *gin.Context) {
	event, err := h.svc.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.EventResponse{Event: *event})
}

// UpdateEvent godoc
// @Summary Update an event
// @Tags dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param request body model.UpdateEventRequest true "Partial event payload"
// @Success 200 {object} model.EventEnvelope
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/dashboard/events/{id} [put]
func (h *DashboardHandler) UpdateEvent(c *gin.Context) {
	var req model.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "Invalid request body."})
		return
	}

	event, err := h.svc.UpdateEvent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.EventEnvelope{
		Message: "Event updated successfully.",
		Event:   *event,
	})
}

func (h *DashboardHandler) DeleteEvent(c *gin.Context) {
	if err := h.svc.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.MessageResponse{Message: "Event deleted successfully."})
}
