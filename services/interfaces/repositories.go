package interfaces

import (
	"context"
	"errors"
	"time"

	"servic-backend/models"

	"github.com/google/uuid"
)

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mock_interfaces

var (
	// ErrRecordNotFound is returned by repositories when a lookup by key misses.
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when a unique constraint rejects a write.
	ErrDuplicateKey = errors.New("duplicate key")
)

// OrderMutation is applied to a locked order inside the modification
// transaction. A returned history entry is inserted in the same transaction;
// a returned error rolls everything back.
type OrderMutation func(order *models.Order) (*models.OrderHistory, error)

// ServiceFilter narrows the catalog listing.
type ServiceFilter struct {
	Search     string
	CategoryID *uuid.UUID
	BuildingID *uuid.UUID
}

type IUserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
	// GetByIdentifier looks an account up by phone or email.
	GetByIdentifier(ctx context.Context, identifier string) (models.User, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	List(ctx context.Context, role *models.Role) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

type IBuildingRepository interface {
	Create(ctx context.Context, b *models.Building) error
	GetByID(ctx context.Context, id uuid.UUID) (models.Building, error)
	List(ctx context.Context) ([]models.Building, error)
	Update(ctx context.Context, b *models.Building) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ICategoryRepository interface {
	Create(ctx context.Context, c *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (models.Category, error)
	List(ctx context.Context) ([]models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type IServiceRepository interface {
	Create(ctx context.Context, s *models.Service) error
	GetByID(ctx context.Context, id uuid.UUID) (models.Service, error)
	List(ctx context.Context, filter ServiceFilter) ([]models.Service, error)
	Update(ctx context.Context, s *models.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type IReviewRepository interface {
	Create(ctx context.Context, r *models.Review) error
	ListByService(ctx context.Context, serviceID uuid.UUID) ([]models.Review, error)
	// AverageFor returns the live average rating per service; services
	// without reviews are absent from the map.
	AverageFor(ctx context.Context, serviceIDs []uuid.UUID) (map[uuid.UUID]float64, error)
}

type IOrderRepository interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (models.Order, error)
	List(ctx context.Context, scope models.OrderScope) ([]models.Order, error)
	// Modify locks the order, applies fn, and persists the order together
	// with the history entry fn returns, all in one transaction.
	Modify(ctx context.Context, id uuid.UUID, fn OrderMutation) (models.Order, *models.OrderHistory, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type IOrderHistoryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (models.OrderHistory, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]models.OrderHistory, error)
	List(ctx context.Context, scope models.OrderScope) ([]models.OrderHistory, error)
}

type IClientRepository interface {
	Create(ctx context.Context, c *models.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (models.Client, error)
	List(ctx context.Context) ([]models.Client, error)
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type INotificationLogRepository interface {
	Create(ctx context.Context, l *models.NotificationLog) error
	// List returns the newest entries first, optionally for one order only.
	List(ctx context.Context, orderID *uuid.UUID, limit int) ([]models.NotificationLog, error)
}
