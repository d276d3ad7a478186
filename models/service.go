package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxPrice is the largest value the decimal(10,2) price column holds.
const MaxPrice = 99999999.99

type Service struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	BuildingID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"building_id"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Price       float64    `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string     `json:"image"`
	CreatedAt   time.Time  `json:"created_at"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	Reviews  []Review  `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// PriceDisplay renders the price for humans, e.g. "$12.50".
func (s Service) PriceDisplay() string {
	return FormatPrice(s.Price)
}

func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null" json:"service_id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

const (
	MinRating = 1
	MaxRating = 5
)

// AverageRating is the mean rating of reviews, or 0 when there are none.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}
