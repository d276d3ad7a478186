package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"servic-backend/models"
	"servic-backend/policy"
	"servic-backend/services/interfaces"
)

type BuildingInput struct {
	Name    string
	Address string
	Image   string
}

type CategoryInput struct {
	Name  string
	Icon  string
	Image string
}

// BuildingService manages buildings and categories. Anyone signed in may
// read them; only admins write.
type BuildingService struct {
	buildings  interfaces.IBuildingRepository
	categories interfaces.ICategoryRepository
	log        logrus.FieldLogger
}

func NewBuildingService(buildings interfaces.IBuildingRepository, categories interfaces.ICategoryRepository, log logrus.FieldLogger) *BuildingService {
	return &BuildingService{buildings: buildings, categories: categories, log: log}
}

func (s *BuildingService) ListBuildings(ctx context.Context) ([]models.Building, error) {
	return s.buildings.List(ctx)
}

func (s *BuildingService) GetBuilding(ctx context.Context, id uuid.UUID) (models.Building, error) {
	b, err := s.buildings.GetByID(ctx, id)
	return b, lookupError(err, "building")
}

func (s *BuildingService) CreateBuilding(ctx context.Context, actor models.User, in BuildingInput) (models.Building, error) {
	if !policy.IsAdmin(actor) {
		return models.Building{}, forbidden("create buildings")
	}
	b := models.Building{}
	if err := applyBuilding(&b, in); err != nil {
		return models.Building{}, err
	}
	if err := s.buildings.Create(ctx, &b); err != nil {
		return models.Building{}, err
	}
	s.log.WithField("building_id", b.ID).Info("building created")
	return b, nil
}

func (s *BuildingService) UpdateBuilding(ctx context.Context, actor models.User, id uuid.UUID, in BuildingInput) (models.Building, error) {
	if !policy.IsAdmin(actor) {
		return models.Building{}, forbidden("update buildings")
	}
	b, err := s.buildings.GetByID(ctx, id)
	if err != nil {
		return models.Building{}, lookupError(err, "building")
	}
	if err := applyBuilding(&b, in); err != nil {
		return models.Building{}, err
	}
	if err := s.buildings.Update(ctx, &b); err != nil {
		return models.Building{}, err
	}
	return b, nil
}

func (s *BuildingService) DeleteBuilding(ctx context.Context, actor models.User, id uuid.UUID) error {
	if !policy.IsAdmin(actor) {
		return forbidden("delete buildings")
	}
	return lookupError(s.buildings.Delete(ctx, id), "building")
}

func applyBuilding(b *models.Building, in BuildingInput) error {
	name, address := strings.TrimSpace(in.Name), strings.TrimSpace(in.Address)
	if name == "" {
		return validationError("name is required")
	}
	if address == "" {
		return validationError("address is required")
	}
	b.Name, b.Address, b.Image = name, address, strings.TrimSpace(in.Image)
	return nil
}

func (s *BuildingService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

func (s *BuildingService) GetCategory(ctx context.Context, id uuid.UUID) (models.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	return c, lookupError(err, "category")
}

func (s *BuildingService) CreateCategory(ctx context.Context, actor models.User, in CategoryInput) (models.Category, error) {
	if !policy.IsAdmin(actor) {
		return models.Category{}, forbidden("create categories")
	}
	c := models.Category{}
	if err := applyCategory(&c, in); err != nil {
		return models.Category{}, err
	}
	if err := s.categories.Create(ctx, &c); err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (s *BuildingService) UpdateCategory(ctx context.Context, actor models.User, id uuid.UUID, in CategoryInput) (models.Category, error) {
	if !policy.IsAdmin(actor) {
		return models.Category{}, forbidden("update categories")
	}
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return models.Category{}, lookupError(err, "category")
	}
	if err := applyCategory(&c, in); err != nil {
		return models.Category{}, err
	}
	if err := s.categories.Update(ctx, &c); err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (s *BuildingService) DeleteCategory(ctx context.Context, actor models.User, id uuid.UUID) error {
	if !policy.IsAdmin(actor) {
		return forbidden("delete categories")
	}
	return lookupError(s.categories.Delete(ctx, id), "category")
}

func applyCategory(c *models.Category, in CategoryInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return validationError("name is required")
	}
	if tooLong(name, models.CategoryNameMaxLen) {
		return validationError("name must be at most %d characters", models.CategoryNameMaxLen)
	}
	icon := strings.TrimSpace(in.Icon)
	if tooLong(icon, models.CategoryIconMaxLen) {
		return validationError("icon must be at most %d characters", models.CategoryIconMaxLen)
	}
	c.Name, c.Image = name, strings.TrimSpace(in.Image)
	if icon != "" {
		c.Icon = icon
	}
	return nil
}
