package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"servic-backend/models"
	"servic-backend/services/interfaces"
)

type UserRepository struct {
	db *gorm.DB
}

var _ interfaces.IUserRepository = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Create(u).Error)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return u, translate(err)
}

func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).
		Where("phone = ? OR (email <> '' AND email = ?)", identifier, identifier).
		First(&u).Error
	return u, translate(err)
}

func (r *UserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Where("phone = ?", phone).Count(&count).Error
	return count > 0, translate(err)
}

func (r *UserRepository) List(ctx context.Context, role *models.Role) ([]models.User, error) {
	var users []models.User
	q := r.db.WithContext(ctx).Order("created_at")
	if role != nil {
		q = q.Where("role = ?", *role)
	}
	err := q.Find(&users).Error
	return users, translate(err)
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Save(u).Error)
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return translate(r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("last_login", at).Error)
}
