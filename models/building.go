package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Building struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Address   string    `gorm:"type:text;not null" json:"address"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`

	Services []Service `gorm:"foreignKey:BuildingID;constraint:OnDelete:CASCADE" json:"-"`
}

func (b *Building) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// Column limits of Category.
const (
	CategoryNameMaxLen = 100
	CategoryIconMaxLen = 50
)

type Category struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name  string    `gorm:"type:varchar(100);not null" json:"name"`
	Icon  string    `gorm:"type:varchar(50);default:'fa-tools'" json:"icon"` // FontAwesome class
	Image string    `json:"image"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Icon == "" {
		c.Icon = "fa-tools"
	}
	return
}
