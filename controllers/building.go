package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"servic-backend/services"
)

type BuildingInput struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Image   string `json:"image"`
}

type CategoryInput struct {
	Name  string `json:"name" binding:"required,max=100"`
	Icon  string `json:"icon" binding:"max=50"`
	Image string `json:"image"`
}

// BuildingController serves buildings and service categories.
type BuildingController struct {
	buildings *services.BuildingService
	log       logrus.FieldLogger
}

func NewBuildingController(buildings *services.BuildingService, log logrus.FieldLogger) *BuildingController {
	return &BuildingController{buildings: buildings, log: log}
}

func (bc *BuildingController) ListBuildings(c *gin.Context) {
	list, err := bc.buildings.ListBuildings(c.Request.Context())
	if err != nil {
		respondServiceError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (bc *BuildingController) GetBuilding(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := bc.buildings.GetBuilding(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BuildingController) CreateBuilding(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	var input BuildingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	b, err := bc.buildings.CreateBuilding(c.Request.Context(), actor, services.BuildingInput(input))
	if err != nil {
		respondServiceError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (bc *BuildingController) UpdateBuilding(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input BuildingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	b, err := bc.buildings.UpdateBuilding(c.Request.Context(), actor, id, services.BuildingInput(input))
	if err != nil {
		respondServiceError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BuildingController) DeleteBuilding(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := bc.buildings.DeleteBuilding(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Building deleted successfully"})
}

func (bc *BuildingController) ListCategories(c *gin.Context) {
	list, err := bc.buildings.ListCategories(c.Request.Context())
	if err != nil {
		respondServiceError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (bc *BuildingController) GetCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cat, err := bc.buildings.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (bc *BuildingController) CreateCategory(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	cat, err := bc.buildings.CreateCategory(c.Request.Context(), actor, services.CategoryInput(input))
	if err != nil {
		respondServiceError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (bc *BuildingController) UpdateCategory(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	cat, err := bc.buildings.UpdateCategory(c.Request.Context(), actor, id, services.CategoryInput(input))
	if err != nil {
		respondServiceError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (bc *BuildingController) DeleteCategory(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := bc.buildings.DeleteCategory(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, bc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}
