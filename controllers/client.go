package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"servic-backend/services"
)

// ClientInput defines the expected JSON structure for a client contact
type ClientInput struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"max=100"`
	Phone     string `json:"phone" binding:"required"`
	Email     string `json:"email" binding:"omitempty,email"`
}

type ClientController struct {
	clients *services.ClientService
	log     logrus.FieldLogger
}

func NewClientController(clients *services.ClientService, log logrus.FieldLogger) *ClientController {
	return &ClientController{clients: clients, log: log}
}

func (cc *ClientController) CreateClient(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	var input ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	client, err := cc.clients.Create(c.Request.Context(), actor, services.ClientInput(input))
	if err != nil {
		respondServiceError(c, cc.log, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (cc *ClientController) GetClients(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	clients, err := cc.clients.List(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, cc.log, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (cc *ClientController) GetClient(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	client, err := cc.clients.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, cc.log, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (cc *ClientController) UpdateClient(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input ClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	client, err := cc.clients.Update(c.Request.Context(), actor, id, services.ClientInput(input))
	if err != nil {
		respondServiceError(c, cc.log, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

func (cc *ClientController) DeleteClient(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := cc.clients.Delete(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, cc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
