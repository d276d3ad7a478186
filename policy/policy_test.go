package policy

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"servic-backend/models"
)

type fixture struct {
	b1, b2                 uuid.UUID
	admin, m1, m2, orphanM models.User
	u1, u2                 models.User
	orders                 []models.Order
}

func newFixture() fixture {
	f := fixture{b1: uuid.New(), b2: uuid.New()}
	b1, b2 := f.b1, f.b2
	f.admin = models.User{ID: uuid.New(), Role: models.RoleAdmin}
	f.m1 = models.User{ID: uuid.New(), Role: models.RoleManager, ManagedBuildingID: &b1}
	f.m2 = models.User{ID: uuid.New(), Role: models.RoleManager, ManagedBuildingID: &b2}
	f.orphanM = models.User{ID: uuid.New(), Role: models.RoleManager}
	f.u1 = models.User{ID: uuid.New(), Role: models.RoleUser}
	f.u2 = models.User{ID: uuid.New(), Role: models.RoleUser}
	for _, owner := range []models.User{f.u1, f.u2} {
		for _, b := range []*uuid.UUID{&b1, &b2, nil} {
			f.orders = append(f.orders, models.Order{ID: uuid.New(), UserID: owner.ID, BuildingID: b})
		}
	}
	return f
}

func TestCanTransition(t *testing.T) {
	f := newFixture()
	b1, b2 := f.b1, f.b2
	inB1 := models.Order{ID: uuid.New(), UserID: f.u1.ID, BuildingID: &b1}
	inB2 := models.Order{ID: uuid.New(), UserID: f.u1.ID, BuildingID: &b2}
	noBuilding := models.Order{ID: uuid.New(), UserID: f.u1.ID}

	assert.True(t, CanTransition(f.m1, inB1))
	assert.False(t, CanTransition(f.m1, inB2), "manager of B1 must not touch B2 orders")
	assert.False(t, CanTransition(f.m1, noBuilding))
	assert.False(t, CanTransition(f.orphanM, inB1))

	for _, o := range []models.Order{inB1, inB2, noBuilding} {
		assert.True(t, CanTransition(f.admin, o))
		assert.False(t, CanTransition(f.u1, o), "users never transition, even their own orders")
	}
}

// An order is visible iff the actor is admin, the manager of its building,
// or the user who placed it.
func TestVisibilityScoping(t *testing.T) {
	f := newFixture()
	actors := []models.User{f.admin, f.m1, f.m2, f.orphanM, f.u1, f.u2}

	for _, a := range actors {
		for _, o := range f.orders {
			want := a.Role == models.RoleAdmin ||
				(a.Role == models.RoleManager && a.ManagedBuildingID != nil && o.BuildingID != nil && *o.BuildingID == *a.ManagedBuildingID) ||
				(a.Role == models.RoleUser && o.UserID == a.ID)

			name := fmt.Sprintf("%s/%s", a, o.ID)
			assert.Equal(t, want, CanView(a, o), name)
			assert.Equal(t, want, OrderScopeFor(a).Matches(o), name)
		}
	}
}

func TestOrderScopeFor(t *testing.T) {
	f := newFixture()

	assert.True(t, OrderScopeFor(f.admin).All)

	s := OrderScopeFor(f.m1)
	if assert.NotNil(t, s.BuildingID) {
		assert.Equal(t, f.b1, *s.BuildingID)
	}
	assert.Nil(t, s.UserID)

	assert.True(t, OrderScopeFor(f.orphanM).Empty())
	assert.True(t, OrderScopeFor(models.User{Role: "GUEST"}).Empty())

	s = OrderScopeFor(f.u1)
	if assert.NotNil(t, s.UserID) {
		assert.Equal(t, f.u1.ID, *s.UserID)
	}
}

func TestCanDelete(t *testing.T) {
	f := newFixture()
	b1 := f.b1
	o := models.Order{ID: uuid.New(), UserID: f.u1.ID, BuildingID: &b1}

	assert.True(t, CanDelete(f.admin, o))
	assert.True(t, CanDelete(f.u1, o))
	assert.False(t, CanDelete(f.u2, o))
	assert.False(t, CanDelete(f.m1, o))
}

func TestRoleHelpers(t *testing.T) {
	f := newFixture()
	assert.True(t, IsStaff(f.admin))
	assert.True(t, IsStaff(f.m1))
	assert.False(t, IsStaff(f.u1))
	assert.True(t, IsAdmin(f.admin))
	assert.False(t, IsAdmin(f.m1))
}
