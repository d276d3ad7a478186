package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleUser    Role = "USER"
)

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleAdmin, RoleManager, RoleUser:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// User is an account. Managers carry the building they are responsible for.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Phone     string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Password  string    `gorm:"not null" json:"-"`

	Role              Role       `gorm:"type:varchar(10);not null;default:'USER'" json:"role"`
	ManagedBuildingID *uuid.UUID `gorm:"type:uuid;index" json:"managed_building_id,omitempty"`
	ManagedBuilding   *Building  `gorm:"foreignKey:ManagedBuildingID;constraint:OnDelete:SET NULL" json:"-"`

	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	return
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) String() string {
	name := u.FullName()
	if name == "" {
		name = u.Phone
	}
	return fmt.Sprintf("%s (%s)", name, u.Role)
}

// Manages reports whether u is a manager responsible for building.
func (u User) Manages(building *uuid.UUID) bool {
	return u.Role == RoleManager &&
		u.ManagedBuildingID != nil &&
		building != nil &&
		*u.ManagedBuildingID == *building
}
