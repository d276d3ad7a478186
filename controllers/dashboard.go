package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"servic-backend/models"
)

type DashboardOverview struct {
	TotalOrders  int             `json:"total_orders"`
	StatusCounts []StatusCount   `json:"status_counts"`
	RecentOrders []orderResponse `json:"recent_orders"`
}

type StatusCount struct {
	Status models.OrderStatus `json:"status"`
	Label  string             `json:"label"`
	Count  int                `json:"count"`
}

var dashboardStatuses = []models.OrderStatus{models.StatusNew, models.StatusInProgress, models.StatusDone}

// GetDashboardOverview summarizes the orders visible to the current account.
func (oc *OrderController) GetDashboardOverview(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	summary, err := oc.orders.Summary(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, oc.log, err)
		return
	}

	overview := DashboardOverview{
		TotalOrders:  summary.Total,
		RecentOrders: newOrderResponses(summary.Recent),
	}
	for _, st := range dashboardStatuses {
		overview.StatusCounts = append(overview.StatusCounts, StatusCount{
			Status: st,
			Label:  st.Label(),
			Count:  summary.ByStatus[st],
		})
	}
	c.JSON(http.StatusOK, overview)
}
