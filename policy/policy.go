// Package policy holds the role-based rules deciding which orders a
// principal may see, transition, edit or delete.
package policy

import (
	"servic-backend/models"
)

// CanTransition applies the status-change rule: a manager of the order's
// building first, then any admin.
func CanTransition(actor models.User, order models.Order) bool {
	if actor.Role == models.RoleManager && actor.Manages(order.BuildingID) {
		return true
	}
	return actor.Role == models.RoleAdmin
}

// OrderScopeFor derives the set of orders actor may view.
func OrderScopeFor(actor models.User) models.OrderScope {
	switch actor.Role {
	case models.RoleAdmin:
		return models.OrderScope{All: true}
	case models.RoleManager:
		if actor.ManagedBuildingID == nil {
			return models.OrderScope{}
		}
		b := *actor.ManagedBuildingID
		return models.OrderScope{BuildingID: &b}
	case models.RoleUser:
		id := actor.ID
		return models.OrderScope{UserID: &id}
	default:
		return models.OrderScope{}
	}
}

func CanView(actor models.User, order models.Order) bool {
	return OrderScopeFor(actor).Matches(order)
}

// CanDelete allows admins and the account that placed the order.
func CanDelete(actor models.User, order models.Order) bool {
	return actor.Role == models.RoleAdmin || order.UserID == actor.ID
}

// IsStaff reports whether actor may work with account and contact listings.
func IsStaff(actor models.User) bool {
	return actor.Role == models.RoleAdmin || actor.Role == models.RoleManager
}

func IsAdmin(actor models.User) bool {
	return actor.Role == models.RoleAdmin
}
