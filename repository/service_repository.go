package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"servic-backend/models"
	"servic-backend/services/interfaces"
)

type ServiceRepository struct {
	db *gorm.DB
}

var _ interfaces.IServiceRepository = (*ServiceRepository)(nil)

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *models.Service) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *ServiceRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Service, error) {
	var s models.Service
	err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error
	return s, translate(err)
}

func (r *ServiceRepository) List(ctx context.Context, filter interfaces.ServiceFilter) ([]models.Service, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", like, like)
	}
	if filter.CategoryID != nil {
		q = q.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.BuildingID != nil {
		q = q.Where("building_id = ?", *filter.BuildingID)
	}

	var services []models.Service
	err := q.Find(&services).Error
	return services, translate(err)
}

func (r *ServiceRepository) Update(ctx context.Context, s *models.Service) error {
	return translate(r.db.WithContext(ctx).Save(s).Error)
}

func (r *ServiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Service{}, id)
}

type ReviewRepository struct {
	db *gorm.DB
}

var _ interfaces.IReviewRepository = (*ReviewRepository)(nil)

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	return translate(r.db.WithContext(ctx).Create(review).Error)
}

func (r *ReviewRepository) ListByService(ctx context.Context, serviceID uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("service_id = ?", serviceID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, translate(err)
}

func (r *ReviewRepository) AverageFor(ctx context.Context, serviceIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	averages := make(map[uuid.UUID]float64, len(serviceIDs))
	if len(serviceIDs) == 0 {
		return averages, nil
	}

	var rows []struct {
		ServiceID uuid.UUID
		Average   float64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("service_id, AVG(rating) AS average").
		Where("service_id IN ?", serviceIDs).
		Group("service_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}

	for _, row := range rows {
		averages[row.ServiceID] = row.Average
	}
	return averages, nil
}
