package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"servic-backend/services"
	"servic-backend/services/interfaces"
	"servic-backend/utils"
)

type ServiceInput struct {
	Building    uuid.UUID  `json:"building" binding:"required"`
	Category    *uuid.UUID `json:"category"`
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description"`
	Price       float64    `json:"price" binding:"min=0"`
	Image       string     `json:"image"`
}

type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// ServiceController serves the service catalog and its reviews.
type ServiceController struct {
	catalog *services.CatalogService
	log     logrus.FieldLogger
}

func NewServiceController(catalog *services.CatalogService, log logrus.FieldLogger) *ServiceController {
	return &ServiceController{catalog: catalog, log: log}
}

// GetServices supports ?search= over name and description, and
// ?category= and ?building= filters.
func (sc *ServiceController) GetServices(c *gin.Context) {
	filter := interfaces.ServiceFilter{Search: c.Query("search")}
	for param, dst := range map[string]**uuid.UUID{
		"category": &filter.CategoryID,
		"building": &filter.BuildingID,
	} {
		raw := c.Query(param)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid "+param)
			return
		}
		*dst = &id
	}

	views, err := sc.catalog.ListServices(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, sc.log, err)
		return
	}
	c.JSON(http.StatusOK, newServiceViewResponses(views))
}

func (sc *ServiceController) GetService(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := sc.catalog.GetService(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, sc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"service": newServiceViewResponse(detail.ServiceView),
		"reviews": newReviewResponses(detail.Reviews),
	})
}

func (sc *ServiceController) CreateService(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	view, err := sc.catalog.CreateService(c.Request.Context(), actor, input.toService())
	if err != nil {
		respondServiceError(c, sc.log, err)
		return
	}
	c.JSON(http.StatusCreated, newServiceViewResponse(view))
}

func (sc *ServiceController) UpdateService(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	view, err := sc.catalog.UpdateService(c.Request.Context(), actor, id, input.toService())
	if err != nil {
		respondServiceError(c, sc.log, err)
		return
	}
	c.JSON(http.StatusOK, newServiceViewResponse(view))
}

func (sc *ServiceController) DeleteService(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := sc.catalog.DeleteService(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, sc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

func (sc *ServiceController) GetReviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	reviews, err := sc.catalog.ListReviews(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, sc.log, err)
		return
	}
	c.JSON(http.StatusOK, newReviewResponses(reviews))
}

func (sc *ServiceController) CreateReview(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var input ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	review, err := sc.catalog.AddReview(c.Request.Context(), actor, id, services.ReviewInput{
		Rating:  input.Rating,
		Comment: input.Comment,
	})
	if err != nil {
		respondServiceError(c, sc.log, err)
		return
	}
	c.JSON(http.StatusCreated, newReviewResponse(review))
}

// GetRatingReport lists the best rated services; ?limit= caps the list.
func (sc *ServiceController) GetRatingReport(c *gin.Context) {
	actor, ok := currentUser(c)
	if !ok {
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid limit")
		return
	}
	views, err := sc.catalog.RatingReport(c.Request.Context(), actor, limit)
	if err != nil {
		respondServiceError(c, sc.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": newServiceViewResponses(views)})
}

func (in ServiceInput) toService() services.ServiceInput {
	return services.ServiceInput{
		BuildingID:  in.Building,
		CategoryID:  in.Category,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
	}
}
