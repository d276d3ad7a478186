package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"servic-backend/models"
	"servic-backend/services/interfaces"
)

// orderMutableColumns are the only columns Modify writes back.
var orderMutableColumns = []string{"service_id", "building_id", "status", "date", "time", "comment", "updated_at"}

type OrderRepository struct {
	db *gorm.DB
}

var _ interfaces.IOrderRepository = (*OrderRepository)(nil)

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(o).Error)
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (models.Order, error) {
	var o models.Order
	err := r.withRelations(r.db.WithContext(ctx)).First(&o, "orders.id = ?", id).Error
	return o, translate(err)
}

func (r *OrderRepository) List(ctx context.Context, scope models.OrderScope) ([]models.Order, error) {
	var orders []models.Order
	err := r.withRelations(applyOrderScope(r.db.WithContext(ctx), scope)).
		Order("orders.created_at DESC").
		Find(&orders).Error
	return orders, translate(err)
}

func (r *OrderRepository) Modify(ctx context.Context, id uuid.UUID, fn interfaces.OrderMutation) (models.Order, *models.OrderHistory, error) {
	var (
		order models.Order
		entry *models.OrderHistory
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&order, "id = ?", id).Error; err != nil {
			return translate(err)
		}

		var err error
		if entry, err = fn(&order); err != nil {
			return err
		}

		if err := tx.Model(&order).
			Select(orderMutableColumns).
			Updates(&order).Error; err != nil {
			return translate(err)
		}

		if entry != nil {
			entry.OrderID = order.ID
			if err := tx.Create(entry).Error; err != nil {
				return translate(err)
			}
		}
		return nil
	})
	if err != nil {
		return models.Order{}, nil, err
	}
	return order, entry, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(r.db.WithContext(ctx), &models.Order{}, id)
}

func (r *OrderRepository) withRelations(q *gorm.DB) *gorm.DB {
	return q.Preload("User").Preload("Service").Preload("Building")
}

// applyOrderScope mirrors models.OrderScope.Matches as a WHERE clause.
func applyOrderScope(q *gorm.DB, scope models.OrderScope) *gorm.DB {
	switch {
	case scope.All:
		return q
	case scope.BuildingID != nil:
		return q.Where("orders.building_id = ?", *scope.BuildingID)
	case scope.UserID != nil:
		return q.Where("orders.user_id = ?", *scope.UserID)
	default:
		return q.Where("1 = 0")
	}
}

type OrderHistoryRepository struct {
	db *gorm.DB
}

var _ interfaces.IOrderHistoryRepository = (*OrderHistoryRepository)(nil)

func NewOrderHistoryRepository(db *gorm.DB) *OrderHistoryRepository {
	return &OrderHistoryRepository{db: db}
}

func (r *OrderHistoryRepository) GetByID(ctx context.Context, id uuid.UUID) (models.OrderHistory, error) {
	var h models.OrderHistory
	err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error
	return h, translate(err)
}

func (r *OrderHistoryRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderHistory, error) {
	var entries []models.OrderHistory
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("change_date DESC").
		Find(&entries).Error
	return entries, translate(err)
}

// List returns history rows of orders inside scope. Rows of deleted orders
// are only listed for an unrestricted scope.
func (r *OrderHistoryRepository) List(ctx context.Context, scope models.OrderScope) ([]models.OrderHistory, error) {
	q := r.db.WithContext(ctx).Model(&models.OrderHistory{})
	if !scope.All {
		q = applyOrderScope(
			q.Joins("JOIN orders ON orders.id = order_histories.order_id AND orders.deleted_at IS NULL"),
			scope,
		)
	}

	var entries []models.OrderHistory
	err := q.Order("order_histories.change_date DESC").Find(&entries).Error
	return entries, translate(err)
}
