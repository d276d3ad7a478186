package models

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClientNameMaxLen is the column limit of both client name fields.
const ClientNameMaxLen = 100

// Client is a standalone contact record, not linked to accounts or orders.
type Client struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	FirstName string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(100)" json:"last_name"`
	Phone     string    `gorm:"type:varchar(20);not null" json:"phone"`
	Email     string    `json:"email"`
}

func (c *Client) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

func (c Client) String() string {
	return fmt.Sprintf("%s %s - %s", c.FirstName, c.LastName, c.Phone)
}
