package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/eventhub/backend/internal/model"
	"github.com/eventhub/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// writeServiceError maps service errors to HTTP responses. Validation
// and precondition failures carry a precise message; anything else is
// logged in full and answered with a generic body.
func writeServiceError(c *gin.Context, err error) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: vErr.Message})
		return
	}

	switch {
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "Email already exists."})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "Invalid credentials."})
	case errors.Is(err, service.ErrNotLinked):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "Google account not linked. Please log in with Google."})
	case errors.Is(err, service.ErrRefreshRequired):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "Your Google permissions need to be refreshed. Please log in with Google again."})
	case errors.Is(err, service.ErrDuplicateSignup):
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Message: "User already signed up for this event."})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, model.ErrorResponse{Message: "Event not found."})
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Message: "Internal Server Error"})
	}
}
