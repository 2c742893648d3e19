package handler

import (
	"net/http"

	"github.com/eventhub/backend/internal/model"
	"github.com/eventhub/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	svc      *service.EventService
	calendar *service.CalendarService
}

func NewEventHandler(svc *service.EventService, calendar *service.CalendarService) *EventHandler {
	return &EventHandler{svc: svc, calendar: calendar}
}

// ListEvents godoc
// @Summary List all events
// @Tags events
// @Produce json
// @Success 200 {object} model.EventListResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.svc.ListEvents(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.EventListResponse{Events: events})
}

// GetEvent godoc
// @Summary Get one event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} model.EventResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/events/{id} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.svc.GetEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.EventResponse{Event: *event})
}

// ListCategories godoc
// @Summary List all categories
// @Tags categories
// @Produce json
// @Success 200 {object} model.CategoryListResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/categories [get]
func (h *EventHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, model.CategoryListResponse{Categories: categories})
}

// SignUp godoc
// @Summary Sign up the authenticated user for an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.SignupRequest true "Event ID"
// @Success 201 {object} model.MessageResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/events/signup [post]
func (h *EventHandler) SignUp(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.EventID == "" {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "Invalid request body."})
		return
	}

	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Message: "Invalid token."})
		return
	}

	if err := h.svc.SignUp(c.Request.Context(), user.ID, req.EventID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.MessageResponse{Message: "Successfully signed up for the event."})
}

// AddToGoogleCalendar godoc
// @Summary Add an event to the user's Google Calendar
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} model.CalendarResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/events/{id}/add-to-google-calendar [post]
func (h *EventHandler) AddToGoogleCalendar(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, model.ErrorResponse{Message: "Invalid token."})
		return
	}

	link, err := h.calendar.AddEvent(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.CalendarResponse{
		Message:   "Event added to your Google Calendar.",
		EventLink: link,
	})
}
