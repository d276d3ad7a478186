package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"servic-backend/models"
	"servic-backend/services/interfaces"
)

type ClientRepository struct {
	db *gorm.DB
}

var _ interfaces.IClientRepository = (*ClientRepository)(nil)

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) Create(ctx context.Context, c *models.Client) error {
	return translate(r.db.WithContext(ctx).Create(c).Error)
}

func (r *ClientRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Client, error) {
	var c models.Client
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return c, translate(err)
}

func (r *ClientRepository) List(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := r.db.WithContext(ctx).Order("last_name, first_name").Find(&clients).Error
	return clients, translate(err)
}

func (r *ClientRepository) Update(ctx context.Context, c *models.Client) error {
	return translate(r.db.WithContext(ctx).Save(c).Error)
}

func (r *ClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Client{}, id)
}

type NotificationLogRepository struct {
	db *gorm.DB
}

var _ interfaces.INotificationLogRepository = (*NotificationLogRepository)(nil)

func NewNotificationLogRepository(db *gorm.DB) *NotificationLogRepository {
	return &NotificationLogRepository{db: db}
}

func (r *NotificationLogRepository) Create(ctx context.Context, l *models.NotificationLog) error {
	return translate(r.db.WithContext(ctx).Create(l).Error)
}

func (r *NotificationLogRepository) List(ctx context.Context, orderID *uuid.UUID, limit int) ([]models.NotificationLog, error) {
	q := r.db.WithContext(ctx).Order("sent_at DESC")
	if orderID != nil {
		q = q.Where("order_id = ?", *orderID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var logs []models.NotificationLog
	err := q.Find(&logs).Error
	return logs, translate(err)
}
