package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"servic-backend/metrics"
	"servic-backend/models"
	"servic-backend/policy"
	"servic-backend/services/interfaces"
	"servic-backend/utils"
)

// OrderNotifier is told about committed status changes.
type OrderNotifier interface {
	OrderStatusChanged(ctx context.Context, order models.Order, entry models.OrderHistory)
}

// NewOrder is the input for placing an order. Zero values take defaults:
// the service's building, today, and the current time of day.
type NewOrder struct {
	ServiceID  uuid.UUID
	BuildingID *uuid.UUID
	Date       *time.Time
	Time       string
	Comment    string
}

// OrderUpdate carries the fields of a general edit; nil means unchanged.
type OrderUpdate struct {
	ServiceID  *uuid.UUID
	BuildingID *uuid.UUID
	Status     *string
	Date       *time.Time
	Time       *string
	Comment    *string
}

// OrderDetail is an order together with its transition log, newest first.
type OrderDetail struct {
	Order   models.Order
	History []models.OrderHistory
}

type OrderService struct {
	orders    interfaces.IOrderRepository
	history   interfaces.IOrderHistoryRepository
	services  interfaces.IServiceRepository
	buildings interfaces.IBuildingRepository
	notifier  OrderNotifier
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewOrderService(
	orders interfaces.IOrderRepository,
	history interfaces.IOrderHistoryRepository,
	services interfaces.IServiceRepository,
	buildings interfaces.IBuildingRepository,
	notifier OrderNotifier,
	log logrus.FieldLogger,
) *OrderService {
	return &OrderService{
		orders:    orders,
		history:   history,
		services:  services,
		buildings: buildings,
		notifier:  notifier,
		log:       log,
		now:       time.Now,
	}
}

// Create places an order on behalf of actor. New orders start in NEW and
// have no history.
func (s *OrderService) Create(ctx context.Context, actor models.User, in NewOrder) (models.Order, error) {
	service, err := s.services.GetByID(ctx, in.ServiceID)
	if err != nil {
		return models.Order{}, referenceError(err, "service")
	}

	buildingID := service.BuildingID
	if in.BuildingID != nil {
		if _, err := s.buildings.GetByID(ctx, *in.BuildingID); err != nil {
			return models.Order{}, referenceError(err, "building")
		}
		buildingID = *in.BuildingID
	}

	now := s.now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	clock := utils.Clock(now)
	if strings.TrimSpace(in.Time) != "" {
		if clock, err = utils.ParseClock(in.Time); err != nil {
			return models.Order{}, validationError("%v", err)
		}
	}

	order := models.Order{
		UserID:     actor.ID,
		ServiceID:  service.ID,
		BuildingID: &buildingID,
		Date:       utils.BeginningOfDay(date),
		Time:       clock,
		Status:     models.StatusNew,
		Comment:    strings.TrimSpace(in.Comment),
	}
	if err := s.orders.Create(ctx, &order); err != nil {
		return models.Order{}, err
	}

	s.log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"actor_id": actor.ID,
	}).Info("order created")

	return s.reload(ctx, order)
}

// List returns the orders actor may view, newest first.
func (s *OrderService) List(ctx context.Context, actor models.User) ([]models.Order, error) {
	scope := policy.OrderScopeFor(actor)
	if scope.Empty() {
		return []models.Order{}, nil
	}
	return s.orders.List(ctx, scope)
}

func (s *OrderService) Get(ctx context.Context, actor models.User, id uuid.UUID) (OrderDetail, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return OrderDetail{}, lookupError(err, "order")
	}
	if !policy.CanView(actor, order) {
		return OrderDetail{}, forbidden("view this order")
	}
	history, err := s.history.ListByOrder(ctx, id)
	if err != nil {
		return OrderDetail{}, err
	}
	return OrderDetail{Order: order, History: history}, nil
}

// RequestTransition moves an order to status on behalf of actor. The status
// write and its history row commit together or not at all. Re-applying the
// current status is accepted and still logged.
func (s *OrderService) RequestTransition(ctx context.Context, actor models.User, id uuid.UUID, status string) (models.Order, error) {
	target, err := models.ParseOrderStatus(status)
	if err != nil {
		metrics.ObserveTransition("status", metrics.TransitionInvalid)
		return models.Order{}, validationError("%v", err)
	}

	order, entry, err := s.orders.Modify(ctx, id, func(o *models.Order) (*models.OrderHistory, error) {
		if !policy.CanTransition(actor, *o) {
			return nil, forbidden("change the status of this order")
		}
		old := o.Status
		o.Status = target
		return s.historyEntry(actor, old, target), nil
	})
	if err != nil {
		s.observeFailure("status", actor, id, err)
		return models.Order{}, lookupError(err, "order")
	}

	return s.afterTransition(ctx, "status", actor, order, entry)
}

// Edit applies a general field update. A status change needs the same
// permission as RequestTransition and is logged; other fields only need the
// order to be visible to actor.
func (s *OrderService) Edit(ctx context.Context, actor models.User, id uuid.UUID, in OrderUpdate) (models.Order, error) {
	var (
		target *models.OrderStatus
		clock  *string
	)
	if in.Status != nil {
		st, err := models.ParseOrderStatus(*in.Status)
		if err != nil {
			metrics.ObserveTransition("edit", metrics.TransitionInvalid)
			return models.Order{}, validationError("%v", err)
		}
		target = &st
	}
	if in.Time != nil {
		c, err := utils.ParseClock(*in.Time)
		if err != nil {
			return models.Order{}, validationError("%v", err)
		}
		clock = &c
	}
	if in.ServiceID != nil {
		if _, err := s.services.GetByID(ctx, *in.ServiceID); err != nil {
			return models.Order{}, referenceError(err, "service")
		}
	}
	if in.BuildingID != nil {
		if _, err := s.buildings.GetByID(ctx, *in.BuildingID); err != nil {
			return models.Order{}, referenceError(err, "building")
		}
	}

	order, entry, err := s.orders.Modify(ctx, id, func(o *models.Order) (*models.OrderHistory, error) {
		if !policy.CanView(actor, *o) {
			return nil, forbidden("edit this order")
		}
		old := o.Status
		if target != nil && *target != old && !policy.CanTransition(actor, *o) {
			return nil, forbidden("change the status of this order")
		}

		if in.ServiceID != nil {
			o.ServiceID = *in.ServiceID
		}
		if in.BuildingID != nil {
			b := *in.BuildingID
			o.BuildingID = &b
		}
		if in.Date != nil {
			o.Date = utils.BeginningOfDay(*in.Date)
		}
		if clock != nil {
			o.Time = *clock
		}
		if in.Comment != nil {
			o.Comment = strings.TrimSpace(*in.Comment)
		}
		if target == nil || *target == old {
			return nil, nil
		}
		o.Status = *target
		return s.historyEntry(actor, old, *target), nil
	})
	if err != nil {
		if target != nil {
			s.observeFailure("edit", actor, id, err)
		}
		return models.Order{}, lookupError(err, "order")
	}

	if entry == nil {
		return s.reload(ctx, order)
	}
	return s.afterTransition(ctx, "edit", actor, order, entry)
}

// Delete soft-deletes an order; its history is kept.
func (s *OrderService) Delete(ctx context.Context, actor models.User, id uuid.UUID) error {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return lookupError(err, "order")
	}
	if !policy.CanDelete(actor, order) {
		return forbidden("delete this order")
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return lookupError(err, "order")
	}
	s.log.WithFields(logrus.Fields{"order_id": id, "actor_id": actor.ID}).Info("order deleted")
	return nil
}

// ListHistory returns the transition log of every order actor may view.
func (s *OrderService) ListHistory(ctx context.Context, actor models.User) ([]models.OrderHistory, error) {
	scope := policy.OrderScopeFor(actor)
	if scope.Empty() {
		return []models.OrderHistory{}, nil
	}
	return s.history.List(ctx, scope)
}

func (s *OrderService) GetHistory(ctx context.Context, actor models.User, id uuid.UUID) (models.OrderHistory, error) {
	entry, err := s.history.GetByID(ctx, id)
	if err != nil {
		return models.OrderHistory{}, lookupError(err, "history entry")
	}
	if policy.IsAdmin(actor) {
		return entry, nil
	}
	order, err := s.orders.GetByID(ctx, entry.OrderID)
	if errors.Is(err, interfaces.ErrRecordNotFound) {
		return models.OrderHistory{}, forbidden("view this history entry")
	}
	if err != nil {
		return models.OrderHistory{}, err
	}
	if !policy.CanView(actor, order) {
		return models.OrderHistory{}, forbidden("view this history entry")
	}
	return entry, nil
}

func (s *OrderService) historyEntry(actor models.User, from, to models.OrderStatus) *models.OrderHistory {
	by := actor.ID
	return &models.OrderHistory{
		OldStatus:   from,
		NewStatus:   to,
		ChangedByID: &by,
		ChangeDate:  s.now(),
	}
}

func (s *OrderService) afterTransition(ctx context.Context, path string, actor models.User, order models.Order, entry *models.OrderHistory) (models.Order, error) {
	metrics.ObserveTransition(path, metrics.TransitionAccepted)
	s.log.WithFields(logrus.Fields{
		"order_id":   order.ID,
		"actor_id":   actor.ID,
		"old_status": entry.OldStatus,
		"new_status": entry.NewStatus,
		"path":       path,
	}).Info("order status changed")

	fresh, err := s.reload(ctx, order)
	if err != nil {
		return models.Order{}, err
	}
	if s.notifier != nil {
		s.notifier.OrderStatusChanged(ctx, fresh, *entry)
	}
	return fresh, nil
}

func (s *OrderService) observeFailure(path string, actor models.User, id uuid.UUID, err error) {
	fields := logrus.Fields{"order_id": id, "actor_id": actor.ID, "path": path}
	switch {
	case errors.Is(err, ErrForbidden):
		metrics.ObserveTransition(path, metrics.TransitionDenied)
		s.log.WithFields(fields).Warn("order status change denied")
	case errors.Is(err, interfaces.ErrRecordNotFound):
		metrics.ObserveTransition(path, metrics.TransitionNotFound)
	default:
		metrics.ObserveTransition(path, metrics.TransitionFailed)
		s.log.WithFields(fields).WithError(err).Error("order status change failed")
	}
}

// reload fetches the order with its associations for the response.
func (s *OrderService) reload(ctx context.Context, order models.Order) (models.Order, error) {
	fresh, err := s.orders.GetByID(ctx, order.ID)
	if err != nil {
		return models.Order{}, lookupError(err, "order")
	}
	return fresh, nil
}

const recentOrdersLimit = 5

// OrderSummary is the dashboard view of the orders an actor may see.
type OrderSummary struct {
	Total    int
	ByStatus map[models.OrderStatus]int
	Recent   []models.Order
}

func (s *OrderService) Summary(ctx context.Context, actor models.User) (OrderSummary, error) {
	orders, err := s.List(ctx, actor)
	if err != nil {
		return OrderSummary{}, err
	}

	summary := OrderSummary{
		Total: len(orders),
		ByStatus: map[models.OrderStatus]int{
			models.StatusNew:        0,
			models.StatusInProgress: 0,
			models.StatusDone:       0,
		},
	}
	for _, o := range orders {
		summary.ByStatus[o.Status]++
	}
	if len(orders) > recentOrdersLimit {
		orders = orders[:recentOrdersLimit]
	}
	summary.Recent = orders
	return summary, nil
}
