package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"servic-backend/models"
	"servic-backend/services/interfaces"
)

type BuildingRepository struct {
	db *gorm.DB
}

var _ interfaces.IBuildingRepository = (*BuildingRepository)(nil)

func NewBuildingRepository(db *gorm.DB) *BuildingRepository {
	return &BuildingRepository{db: db}
}

func (r *BuildingRepository) Create(ctx context.Context, b *models.Building) error {
	return translate(r.db.WithContext(ctx).Create(b).Error)
}

func (r *BuildingRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Building, error) {
	var b models.Building
	err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error
	return b, translate(err)
}

func (r *BuildingRepository) List(ctx context.Context) ([]models.Building, error) {
	var buildings []models.Building
	err := r.db.WithContext(ctx).Order("name").Find(&buildings).Error
	return buildings, translate(err)
}

func (r *BuildingRepository) Update(ctx context.Context, b *models.Building) error {
	return translate(r.db.WithContext(ctx).Save(b).Error)
}

func (r *BuildingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Building{}, id)
}

type CategoryRepository struct {
	db *gorm.DB
}

var _ interfaces.ICategoryRepository = (*CategoryRepository)(nil)

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *models.Category) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Category, error) {
	var c models.Category
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return c, translate(err)
}

func (r *CategoryRepository) List(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := r.db.WithContext(ctx).Order("name").Find(&categories).Error
	return categories, translate(err)
}

func (r *CategoryRepository) Update(ctx context.Context, c *models.Category) error {
	return translate(r.db.WithContext(ctx).Save(c).Error)
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Category{}, id)
}
