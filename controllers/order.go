package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"servic-backend/services"
	"servic-backend/utils"
)

const dateLayout = "2006-01-02"

// CreateOrderInput defines the expected JSON structure for placing an order
type CreateOrderInput struct {
	Service  uuid.UUID  `json:"service" binding:"required"`
	Building *uuid.UUID `json:"building"`
	Date     string     `json:"date"` // YYYY-MM-DD, defaults to today
	Time     string     `json:"time"` // HH:MM[:SS], defaults to now
	Comment  string     `json:"comment"`
}

// UpdateOrderInput defines the expected JSON structure for editing an order
type UpdateOrderInput struct {
	Service  *uuid.UUID `json:"service"`
	Building *uuid.UUID `json:"building"`
	Status   *string    `json:"status"`
	Date     *string    `json:"date"`
	Time     *string    `json:"time"`
	Comment  *string    `json:"comment"`
}

type OrderController struct {
	orders *services.OrderService
	log    logrus.FieldLogger
}

func NewOrderController(orders *services.OrderService, log logrus.FieldLogger) *OrderController {
	return &OrderController{orders: orders, log: log}
}

func (oc *OrderController) CreateOrder(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	in := services.NewOrder{
		ServiceID:  input.Service,
		BuildingID: input.Building,
		Time:       input.Time,
		Comment:    input.Comment,
	}
	if input.Date != "" {
		date, ok := parseDate(c, input.Date)
		if !ok {
			return
		}
		in.Date = &date
	}

	order, err := oc.orders.Create(c.Request.Context(), actor, in)
	if err != nil {
		respondServiceError(c, oc.log, err)
		return
	}
	c.JSON(http.StatusCreated, newOrderResponse(order))
}

// GetOrders lists the orders visible to the current account.
func (oc *OrderController) GetOrders(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	orders, err := oc.orders.List(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, oc.log, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponses(orders))
}

func (oc *OrderController) GetOrder(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := oc.orders.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, oc.log, err)
		return
	}
	c.JSON(http.StatusOK, newOrderDetailResponse(detail))
}

func (oc *OrderController) UpdateOrder(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input UpdateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	in := services.OrderUpdate{
		ServiceID:  input.Service,
		BuildingID: input.Building,
		Status:     input.Status,
		Time:       input.Time,
		Comment:    input.Comment,
	}
	if input.Date != nil {
		date, ok := parseDate(c, *input.Date)
		if !ok {
			return
		}
		in.Date = &date
	}

	order, err := oc.orders.Edit(c.Request.Context(), actor, id, in)
	if err != nil {
		respondServiceError(c, oc.log, err)
		return
	}
	c.JSON(http.StatusOK, newOrderResponse(order))
}

// UpdateOrderStatus moves an order to the status named in the path.
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := oc.orders.RequestTransition(c.Request.Context(), actor, id, c.Param("status"))
	if err != nil {
		respondServiceError(c, oc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order status changed to " + order.Status.Label(),
		"order":   newOrderResponse(order),
	})
}

func (oc *OrderController) DeleteOrder(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := oc.orders.Delete(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, oc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

func (oc *OrderController) GetOrderHistories(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	entries, err := oc.orders.ListHistory(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, oc.log, err)
		return
	}
	c.JSON(http.StatusOK, newHistoryResponses(entries))
}

func (oc *OrderController) GetOrderHistory(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	entry, err := oc.orders.GetHistory(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, oc.log, err)
		return
	}
	c.JSON(http.StatusOK, newHistoryResponse(entry))
}

func parseDate(c *gin.Context, s string) (time.Time, bool) {
	date, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return date, true
}
