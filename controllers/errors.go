package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"servic-backend/models"
	"servic-backend/services"
	"servic-backend/utils"
)

// respondServiceError maps a service error onto the HTTP error response.
// Unexpected errors are logged and reported without detail.
func respondServiceError(c *gin.Context, log logrus.FieldLogger, err error) {
	switch {
	case errors.Is(err, services.ErrDuplicatePhone):
		utils.RespondWithError(c, http.StatusConflict, errorMessage(err))
	case errors.Is(err, services.ErrValidation):
		utils.RespondWithError(c, http.StatusBadRequest, errorMessage(err))
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, http.StatusForbidden, errorMessage(err))
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, errorMessage(err))
	default:
		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("request failed")
		utils.RespondWithError(c, http.StatusInternalServerError, "Internal server error")
	}
}

// errorMessage drops the sentinel prefix so "validation failed: name is
// required" reads as "name is required".
func errorMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 {
		return msg[i+2:]
	}
	return msg
}

func bindError(c *gin.Context, err error) {
	utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
}

// pathID parses a uuid path parameter, answering 404 when it is malformed.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// currentUser returns the principal set by the auth middleware.
func currentUser(c *gin.Context) (models.User, bool) {
	user, ok := utils.CurrentUser(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Authentication required")
	}
	return user, ok
}
