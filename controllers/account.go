package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"servic-backend/models"
	"servic-backend/services"
)

type AssignRoleInput struct {
	Role            string     `json:"role" binding:"required"`
	ManagedBuilding *uuid.UUID `json:"managed_building"`
}

type AccountController struct {
	accounts *services.AccountService
	log      logrus.FieldLogger
}

func NewAccountController(accounts *services.AccountService, log logrus.FieldLogger) *AccountController {
	return &AccountController{accounts: accounts, log: log}
}

func (ac *AccountController) List(c *gin.Context) {
	ac.list(c, nil)
}

func (ac *AccountController) ListManagers(c *gin.Context) {
	role := models.RoleManager
	ac.list(c, &role)
}

func (ac *AccountController) ListUsers(c *gin.Context) {
	role := models.RoleUser
	ac.list(c, &role)
}

func (ac *AccountController) list(c *gin.Context, role *models.Role) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	users, err := ac.accounts.List(c.Request.Context(), actor, role)
	if err != nil {
		respondServiceError(c, ac.log, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponses(users))
}

func (ac *AccountController) Get(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := ac.accounts.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, ac.log, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}

func (ac *AccountController) AssignRole(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input AssignRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	user, err := ac.accounts.AssignRole(c.Request.Context(), actor, id, services.RoleAssignment{
		Role:       input.Role,
		BuildingID: input.ManagedBuilding,
	})
	if err != nil {
		respondServiceError(c, ac.log, err)
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}
