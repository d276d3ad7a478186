package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	for _, in := range []string{"NEW", "in_progress", " Done "} {
		_, err := ParseOrderStatus(in)
		assert.NoError(t, err, in)
	}

	st, err := ParseOrderStatus("in_progress")
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, st)

	for _, in := range []string{"", "PENDING", "CANCELLED", "new!"} {
		_, err := ParseOrderStatus(in)
		assert.Error(t, err, in)
	}
}

func TestOrderStatusLabel(t *testing.T) {
	assert.Equal(t, "Pending", StatusNew.Label())
	assert.Equal(t, "Pending", OrderStatus("PENDING").Label())
	assert.Equal(t, "In progress", StatusInProgress.Label())
	assert.Equal(t, "Done", StatusDone.Label())
	assert.Equal(t, "ARCHIVED", OrderStatus("ARCHIVED").Label())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("manager")
	require.NoError(t, err)
	assert.Equal(t, RoleManager, r)

	_, err = ParseRole("owner")
	assert.Error(t, err)
}

func TestAverageRating(t *testing.T) {
	reviews := []Review{{Rating: 5}, {Rating: 3}, {Rating: 4}}
	assert.Equal(t, 4.0, AverageRating(reviews))
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 4.5, AverageRating([]Review{{Rating: 4}, {Rating: 5}}))
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "$12.50", FormatPrice(12.5))
	assert.Equal(t, "$0.00", FormatPrice(0))
	assert.Equal(t, "$100.00", Service{Price: 100}.PriceDisplay())
}

func TestUserManages(t *testing.T) {
	b1, b2 := uuid.New(), uuid.New()

	manager := User{Role: RoleManager, ManagedBuildingID: &b1}
	assert.True(t, manager.Manages(&b1))
	assert.False(t, manager.Manages(&b2))
	assert.False(t, manager.Manages(nil))

	unassigned := User{Role: RoleManager}
	assert.False(t, unassigned.Manages(&b1))

	admin := User{Role: RoleAdmin, ManagedBuildingID: &b1}
	assert.False(t, admin.Manages(&b1), "only managers manage buildings")
}

func TestOrderScopeMatches(t *testing.T) {
	b1, b2 := uuid.New(), uuid.New()
	u1, u2 := uuid.New(), uuid.New()
	order := Order{UserID: u1, BuildingID: &b1}
	orphan := Order{UserID: u2}

	assert.True(t, OrderScope{All: true}.Matches(order))
	assert.True(t, OrderScope{BuildingID: &b1}.Matches(order))
	assert.False(t, OrderScope{BuildingID: &b2}.Matches(order))
	assert.False(t, OrderScope{BuildingID: &b1}.Matches(orphan))
	assert.True(t, OrderScope{UserID: &u1}.Matches(order))
	assert.False(t, OrderScope{UserID: &u1}.Matches(orphan))
	assert.False(t, OrderScope{}.Matches(order))
	assert.True(t, OrderScope{}.Empty())
}
