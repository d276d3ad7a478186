package controllers

import (
	"time"

	"github.com/google/uuid"

	"servic-backend/models"
	"servic-backend/services"
)

type userResponse struct {
	ID                uuid.UUID   `json:"id"`
	Phone             string      `json:"phone"`
	FirstName         string      `json:"first_name"`
	LastName          string      `json:"last_name"`
	Email             string      `json:"email"`
	Role              models.Role `json:"role"`
	ManagedBuildingID *uuid.UUID  `json:"managed_building,omitempty"`
	LastLogin         *time.Time  `json:"last_login,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
}

func newUserResponse(u models.User) userResponse {
	return userResponse{
		ID:                u.ID,
		Phone:             u.Phone,
		FirstName:         u.FirstName,
		LastName:          u.LastName,
		Email:             u.Email,
		Role:              u.Role,
		ManagedBuildingID: u.ManagedBuildingID,
		LastLogin:         u.LastLogin,
		CreatedAt:         u.CreatedAt,
	}
}

func newUserResponses(users []models.User) []userResponse {
	out := make([]userResponse, len(users))
	for i, u := range users {
		out[i] = newUserResponse(u)
	}
	return out
}

type serviceResponse struct {
	ID            uuid.UUID  `json:"id"`
	BuildingID    uuid.UUID  `json:"building"`
	CategoryID    *uuid.UUID `json:"category"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	PriceDisplay  string     `json:"price_display"`
	Image         string     `json:"image"`
	AverageRating *float64   `json:"average_rating,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func newServiceResponse(s models.Service) serviceResponse {
	return serviceResponse{
		ID:           s.ID,
		BuildingID:   s.BuildingID,
		CategoryID:   s.CategoryID,
		Name:         s.Name,
		Description:  s.Description,
		Price:        s.Price,
		PriceDisplay: s.PriceDisplay(),
		Image:        s.Image,
		CreatedAt:    s.CreatedAt,
	}
}

func newServiceViewResponse(v services.ServiceView) serviceResponse {
	r := newServiceResponse(v.Service)
	avg := v.AverageRating
	r.AverageRating = &avg
	return r
}

func newServiceViewResponses(views []services.ServiceView) []serviceResponse {
	out := make([]serviceResponse, len(views))
	for i, v := range views {
		out[i] = newServiceViewResponse(v)
	}
	return out
}

type reviewResponse struct {
	ID        uuid.UUID `json:"id"`
	ServiceID uuid.UUID `json:"service"`
	UserID    uuid.UUID `json:"user"`
	UserName  string    `json:"user_name,omitempty"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

func newReviewResponse(r models.Review) reviewResponse {
	return reviewResponse{
		ID:        r.ID,
		ServiceID: r.ServiceID,
		UserID:    r.UserID,
		UserName:  r.User.FullName(),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func newReviewResponses(reviews []models.Review) []reviewResponse {
	out := make([]reviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = newReviewResponse(r)
	}
	return out
}

type orderResponse struct {
	ID          uuid.UUID          `json:"id"`
	User        userResponse       `json:"user"`
	Service     serviceResponse    `json:"service"`
	Building    *models.Building   `json:"building"`
	Date        string             `json:"date"`
	Time        string             `json:"time"`
	Status      models.OrderStatus `json:"status"`
	StatusLabel string             `json:"status_display"`
	Comment     string             `json:"comment"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`

	History []historyResponse `json:"history,omitempty"`
}

func newOrderResponse(o models.Order) orderResponse {
	return orderResponse{
		ID:          o.ID,
		User:        newUserResponse(o.User),
		Service:     newServiceResponse(o.Service),
		Building:    o.Building,
		Date:        o.Date.Format("2006-01-02"),
		Time:        o.Time,
		Status:      o.Status,
		StatusLabel: o.Status.Label(),
		Comment:     o.Comment,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func newOrderResponses(orders []models.Order) []orderResponse {
	out := make([]orderResponse, len(orders))
	for i, o := range orders {
		out[i] = newOrderResponse(o)
	}
	return out
}

func newOrderDetailResponse(d services.OrderDetail) orderResponse {
	r := newOrderResponse(d.Order)
	r.History = newHistoryResponses(d.History)
	return r
}

// historyResponse shows statuses by their labels, e.g. "In progress".
type historyResponse struct {
	ID          uuid.UUID  `json:"id"`
	OrderID     uuid.UUID  `json:"order"`
	OldStatus   string     `json:"old_status"`
	NewStatus   string     `json:"new_status"`
	ChangedByID *uuid.UUID `json:"changed_by"`
	ChangeDate  time.Time  `json:"change_date"`
}

func newHistoryResponse(h models.OrderHistory) historyResponse {
	return historyResponse{
		ID:          h.ID,
		OrderID:     h.OrderID,
		OldStatus:   h.OldStatus.Label(),
		NewStatus:   h.NewStatus.Label(),
		ChangedByID: h.ChangedByID,
		ChangeDate:  h.ChangeDate,
	}
}

func newHistoryResponses(entries []models.OrderHistory) []historyResponse {
	out := make([]historyResponse, len(entries))
	for i, h := range entries {
		out[i] = newHistoryResponse(h)
	}
	return out
}
