package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"servic-backend/services"
	"servic-backend/utils"
)

type NotificationController struct {
	notifications *services.NotificationService
	log           logrus.FieldLogger
}

func NewNotificationController(notifications *services.NotificationService, log logrus.FieldLogger) *NotificationController {
	return &NotificationController{notifications: notifications, log: log}
}

// GetNotifications lists SMS delivery attempts; ?order= narrows to one order.
func (nc *NotificationController) GetNotifications(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}

	var orderID *uuid.UUID
	if raw := c.Query("order"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid order")
			return
		}
		orderID = &id
	}

	logs, err := nc.notifications.List(c.Request.Context(), actor, orderID)
	if err != nil {
		respondServiceError(c, nc.log, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
