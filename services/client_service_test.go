package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"servic-backend/models"
	"servic-backend/services/interfaces"
	mock_interfaces "servic-backend/services/interfaces/mocks"
)

func TestClientService(t *testing.T) {
	ctrl := gomock.NewController(t)
	clients := mock_interfaces.NewMockIClientRepository(ctrl)
	logger, _ := logtest.NewNullLogger()
	svc := NewClientService(clients, logger)
	ctx := context.Background()
	manager := models.User{ID: uuid.New(), Role: models.RoleManager}

	_, err := svc.List(ctx, customer())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(ctx, manager, ClientInput{FirstName: "Bek", Phone: "not a phone"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(ctx, manager, ClientInput{Phone: "+14155552671"})
	assert.ErrorIs(t, err, ErrValidation)

	clients.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	c, err := svc.Create(ctx, manager, ClientInput{FirstName: "Bek", LastName: "Sadyrov", Phone: "+1 415 555 2671"})
	require.NoError(t, err)
	assert.Equal(t, "+14155552671", c.Phone)

	clients.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(interfaces.ErrRecordNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, admin(), uuid.New()), ErrNotFound)
}

func TestBuildingService_AdminWrites(t *testing.T) {
	ctrl := gomock.NewController(t)
	buildings := mock_interfaces.NewMockIBuildingRepository(ctrl)
	categories := mock_interfaces.NewMockICategoryRepository(ctrl)
	logger, _ := logtest.NewNullLogger()
	svc := NewBuildingService(buildings, categories, logger)
	ctx := context.Background()

	_, err := svc.CreateBuilding(ctx, models.User{Role: models.RoleManager}, BuildingInput{Name: "A", Address: "B"})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.CreateBuilding(ctx, admin(), BuildingInput{Name: "Tower"})
	assert.ErrorIs(t, err, ErrValidation)

	buildings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	b, err := svc.CreateBuilding(ctx, admin(), BuildingInput{Name: " Tower ", Address: "1 Main St"})
	require.NoError(t, err)
	assert.Equal(t, "Tower", b.Name)

	categories.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	c, err := svc.CreateCategory(ctx, admin(), CategoryInput{Name: "Repairs"})
	require.NoError(t, err)
	assert.Equal(t, "Repairs", c.Name)

	buildings.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(models.Building{}, interfaces.ErrRecordNotFound)
	_, err = svc.GetBuilding(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClientService_NameLengthLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	clients := mock_interfaces.NewMockIClientRepository(ctrl)
	logger, _ := logtest.NewNullLogger()
	svc := NewClientService(clients, logger)
	manager := models.User{ID: uuid.New(), Role: models.RoleManager}
	clients.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	long := strings.Repeat("a", models.ClientNameMaxLen+1)
	_, err := svc.Create(context.Background(), manager, ClientInput{FirstName: long, Phone: "+14155552671"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), manager, ClientInput{FirstName: "Bek", LastName: long, Phone: "+14155552671"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestBuildingService_CategoryColumnLimits(t *testing.T) {
	ctrl := gomock.NewController(t)
	categories := mock_interfaces.NewMockICategoryRepository(ctrl)
	logger, _ := logtest.NewNullLogger()
	svc := NewBuildingService(nil, categories, logger)

	categories.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	// limits count characters, not bytes
	c, err := svc.CreateCategory(context.Background(), admin(), CategoryInput{Name: strings.Repeat("ж", models.CategoryNameMaxLen)})
	require.NoError(t, err)
	assert.Equal(t, "fa-tools", c.Icon)

	_, err = svc.CreateCategory(context.Background(), admin(), CategoryInput{Name: strings.Repeat("ж", models.CategoryNameMaxLen+1)})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateCategory(context.Background(), admin(), CategoryInput{Name: "Repairs", Icon: strings.Repeat("x", models.CategoryIconMaxLen+1)})
	assert.ErrorIs(t, err, ErrValidation)
}
