package handlers

import (
	"errors"
	"net/http"

	"agroconnect/internal/auth"
	"agroconnect/internal/models"
	"agroconnect/internal/services"

	"github.com/gin-gonic/gin"
)

// identity builds the service-layer identity from the JWT claims the auth
// middleware stashed in the context.
func identity(c *gin.Context) (services.Identity, bool) {
	userID, ok := auth.GetUserID(c)
	if !ok {
		return services.Identity{}, false
	}
	role, ok := auth.GetRole(c)
	if !ok {
		return services.Identity{}, false
	}
	return services.Identity{UserID: userID, Role: models.Role(role)}, true
}

// respondError maps the service error taxonomy onto HTTP status codes
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrPermission):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}

	c.JSON(status, gin.H{"error": message})
}
