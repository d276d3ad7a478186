package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"servic-backend/models"
	"servic-backend/policy"
	"servic-backend/services/interfaces"
)

type ServiceInput struct {
	BuildingID  uuid.UUID
	CategoryID  *uuid.UUID
	Name        string
	Description string
	Price       float64
	Image       string
}

type ReviewInput struct {
	Rating  int
	Comment string
}

// ServiceView is a catalog entry with its rating computed at read time.
type ServiceView struct {
	Service       models.Service
	AverageRating float64
}

// ServiceDetail adds the review set the average was computed from.
type ServiceDetail struct {
	ServiceView
	Reviews []models.Review
}

type CatalogService struct {
	services   interfaces.IServiceRepository
	reviews    interfaces.IReviewRepository
	buildings  interfaces.IBuildingRepository
	categories interfaces.ICategoryRepository
	log        logrus.FieldLogger
}

func NewCatalogService(
	services interfaces.IServiceRepository,
	reviews interfaces.IReviewRepository,
	buildings interfaces.IBuildingRepository,
	categories interfaces.ICategoryRepository,
	log logrus.FieldLogger,
) *CatalogService {
	return &CatalogService{
		services:   services,
		reviews:    reviews,
		buildings:  buildings,
		categories: categories,
		log:        log,
	}
}

// ListServices returns the catalog with live average ratings; unrated
// services average 0.
func (s *CatalogService) ListServices(ctx context.Context, filter interfaces.ServiceFilter) ([]ServiceView, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	list, err := s.services.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(list))
	for i, svc := range list {
		ids[i] = svc.ID
	}
	averages, err := s.reviews.AverageFor(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]ServiceView, len(list))
	for i, svc := range list {
		views[i] = ServiceView{Service: svc, AverageRating: averages[svc.ID]}
	}
	return views, nil
}

func (s *CatalogService) GetService(ctx context.Context, id uuid.UUID) (ServiceDetail, error) {
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return ServiceDetail{}, lookupError(err, "service")
	}
	reviews, err := s.reviews.ListByService(ctx, id)
	if err != nil {
		return ServiceDetail{}, err
	}
	return ServiceDetail{
		ServiceView: ServiceView{Service: svc, AverageRating: models.AverageRating(reviews)},
		Reviews:     reviews,
	}, nil
}

func (s *CatalogService) CreateService(ctx context.Context, actor models.User, in ServiceInput) (ServiceView, error) {
	if !policy.IsAdmin(actor) {
		return ServiceView{}, forbidden("create services")
	}
	svc := models.Service{}
	if err := s.applyService(ctx, &svc, in); err != nil {
		return ServiceView{}, err
	}
	if err := s.services.Create(ctx, &svc); err != nil {
		return ServiceView{}, err
	}
	s.log.WithField("service_id", svc.ID).Info("service created")
	return ServiceView{Service: svc}, nil
}

func (s *CatalogService) UpdateService(ctx context.Context, actor models.User, id uuid.UUID, in ServiceInput) (ServiceView, error) {
	if !policy.IsAdmin(actor) {
		return ServiceView{}, forbidden("update services")
	}
	svc, err := s.services.GetByID(ctx, id)
	if err != nil {
		return ServiceView{}, lookupError(err, "service")
	}
	if err := s.applyService(ctx, &svc, in); err != nil {
		return ServiceView{}, err
	}
	if err := s.services.Update(ctx, &svc); err != nil {
		return ServiceView{}, err
	}
	averages, err := s.reviews.AverageFor(ctx, []uuid.UUID{svc.ID})
	if err != nil {
		return ServiceView{}, err
	}
	return ServiceView{Service: svc, AverageRating: averages[svc.ID]}, nil
}

func (s *CatalogService) DeleteService(ctx context.Context, actor models.User, id uuid.UUID) error {
	if !policy.IsAdmin(actor) {
		return forbidden("delete services")
	}
	return lookupError(s.services.Delete(ctx, id), "service")
}

func (s *CatalogService) applyService(ctx context.Context, svc *models.Service, in ServiceInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return validationError("name is required")
	}
	if !(in.Price >= 0) {
		return validationError("price must not be negative")
	}
	if in.Price > models.MaxPrice {
		return validationError("price must be at most %s", models.FormatPrice(models.MaxPrice))
	}
	if _, err := s.buildings.GetByID(ctx, in.BuildingID); err != nil {
		return referenceError(err, "building")
	}
	if in.CategoryID != nil {
		if _, err := s.categories.GetByID(ctx, *in.CategoryID); err != nil {
			return referenceError(err, "category")
		}
	}

	svc.BuildingID = in.BuildingID
	svc.CategoryID = in.CategoryID
	svc.Category = nil
	svc.Name = name
	svc.Description = strings.TrimSpace(in.Description)
	svc.Price = in.Price
	svc.Image = strings.TrimSpace(in.Image)
	return nil
}

// AddReview records actor's rating of a service. Reviews cannot be edited.
func (s *CatalogService) AddReview(ctx context.Context, actor models.User, serviceID uuid.UUID, in ReviewInput) (models.Review, error) {
	if in.Rating < models.MinRating || in.Rating > models.MaxRating {
		return models.Review{}, validationError("rating must be between %d and %d", models.MinRating, models.MaxRating)
	}
	comment := strings.TrimSpace(in.Comment)
	if comment == "" {
		return models.Review{}, validationError("comment is required")
	}
	if _, err := s.services.GetByID(ctx, serviceID); err != nil {
		return models.Review{}, lookupError(err, "service")
	}

	review := models.Review{
		ServiceID: serviceID,
		UserID:    actor.ID,
		Rating:    in.Rating,
		Comment:   comment,
	}
	if err := s.reviews.Create(ctx, &review); err != nil {
		return models.Review{}, err
	}
	review.User = actor
	return review, nil
}

// ListReviews returns a service's reviews, newest first.
func (s *CatalogService) ListReviews(ctx context.Context, serviceID uuid.UUID) ([]models.Review, error) {
	if _, err := s.services.GetByID(ctx, serviceID); err != nil {
		return nil, lookupError(err, "service")
	}
	return s.reviews.ListByService(ctx, serviceID)
}

// RatingReport lists services by live average rating, best first. Staff only.
func (s *CatalogService) RatingReport(ctx context.Context, actor models.User, limit int) ([]ServiceView, error) {
	if !policy.IsStaff(actor) {
		return nil, forbidden("view reports")
	}
	views, err := s.ListServices(ctx, interfaces.ServiceFilter{})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].AverageRating > views[j].AverageRating
	})
	if limit > 0 && len(views) > limit {
		views = views[:limit]
	}
	return views, nil
}
