package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus is the closed set of order lifecycle states.
type OrderStatus string

const (
	StatusNew        OrderStatus = "NEW"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusDone       OrderStatus = "DONE"

	// statusPending is a legacy alias of NEW found in older history rows.
	statusPending OrderStatus = "PENDING"
)

var statusLabels = map[OrderStatus]string{
	StatusNew:        "Pending",
	statusPending:    "Pending",
	StatusInProgress: "In progress",
	StatusDone:       "Done",
}

// ParseOrderStatus accepts NEW, IN_PROGRESS or DONE in any case.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch st := OrderStatus(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusNew, StatusInProgress, StatusDone:
		return st, nil
	default:
		return "", fmt.Errorf("unknown order status %q", s)
	}
}

// Label is the human-readable form; unknown values are returned as-is.
func (s OrderStatus) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

type Order struct {
	ID         uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	UserID     uuid.UUID   `gorm:"type:uuid;index;not null" json:"user_id"`
	ServiceID  uuid.UUID   `gorm:"type:uuid;index;not null" json:"service_id"`
	BuildingID *uuid.UUID  `gorm:"type:uuid;index" json:"building_id"`
	Date       time.Time   `gorm:"type:date;not null" json:"date"`
	Time       string      `gorm:"type:time;not null" json:"time"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;default:'NEW'" json:"status"`
	Comment    string      `gorm:"type:text" json:"comment"`

	User     User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Service  Service   `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"-"`
	Building *Building `gorm:"foreignKey:BuildingID;constraint:OnDelete:SET NULL" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = StatusNew
	}
	return
}

func (o Order) String() string {
	return fmt.Sprintf("Order #%s", o.ID)
}

// OrderHistory records one status transition. Rows are only ever inserted.
type OrderHistory struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	OrderID     uuid.UUID   `gorm:"type:uuid;index;not null" json:"order_id"`
	OldStatus   OrderStatus `gorm:"type:varchar(50);not null" json:"old_status"`
	NewStatus   OrderStatus `gorm:"type:varchar(50);not null" json:"new_status"`
	ChangedByID *uuid.UUID  `gorm:"type:uuid;index" json:"changed_by_id"`
	ChangeDate  time.Time   `gorm:"not null" json:"change_date"`

	ChangedBy *User `gorm:"foreignKey:ChangedByID;constraint:OnDelete:SET NULL" json:"-"`
}

func (h *OrderHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if h.ChangeDate.IsZero() {
		h.ChangeDate = time.Now()
	}
	return
}

func (OrderHistory) TableName() string {
	return "order_histories"
}

// OrderScope restricts an order query to what one principal may see.
// The zero value matches nothing.
type OrderScope struct {
	All        bool
	BuildingID *uuid.UUID
	UserID     *uuid.UUID
}

// Matches reports whether o falls inside the scope.
func (s OrderScope) Matches(o Order) bool {
	switch {
	case s.All:
		return true
	case s.BuildingID != nil:
		return o.BuildingID != nil && *o.BuildingID == *s.BuildingID
	case s.UserID != nil:
		return o.UserID == *s.UserID
	default:
		return false
	}
}

// Empty reports whether the scope can match no order at all.
func (s OrderScope) Empty() bool {
	return !s.All && s.BuildingID == nil && s.UserID == nil
}
