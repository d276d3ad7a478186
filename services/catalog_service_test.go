package services

import (
	"context"
	"math"
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

type catalogFixture struct {
	services   *mock_interfaces.MockIServiceRepository
	reviews    *mock_interfaces.MockIReviewRepository
	buildings  *mock_interfaces.MockIBuildingRepository
	categories *mock_interfaces.MockICategoryRepository
	svc        *CatalogService
}

func newCatalogFixture(t *testing.T) *catalogFixture {
	ctrl := gomock.NewController(t)
	logger, _ := logtest.NewNullLogger()
	f := &catalogFixture{
		services:   mock_interfaces.NewMockIServiceRepository(ctrl),
		reviews:    mock_interfaces.NewMockIReviewRepository(ctrl),
		buildings:  mock_interfaces.NewMockIBuildingRepository(ctrl),
		categories: mock_interfaces.NewMockICategoryRepository(ctrl),
	}
	f.svc = NewCatalogService(f.services, f.reviews, f.buildings, f.categories, logger)
	return f
}

func TestGetService_AverageRating(t *testing.T) {
	f := newCatalogFixture(t)
	rated := models.Service{ID: uuid.New(), Name: "Plumbing", Price: 12.5}
	unrated := models.Service{ID: uuid.New(), Name: "Painting"}

	f.services.EXPECT().GetByID(gomock.Any(), rated.ID).Return(rated, nil)
	f.reviews.EXPECT().ListByService(gomock.Any(), rated.ID).
		Return([]models.Review{{Rating: 5}, {Rating: 3}, {Rating: 4}}, nil)
	f.services.EXPECT().GetByID(gomock.Any(), unrated.ID).Return(unrated, nil)
	f.reviews.EXPECT().ListByService(gomock.Any(), unrated.ID).Return(nil, nil)

	detail, err := f.svc.GetService(context.Background(), rated.ID)
	require.NoError(t, err)
	assert.Equal(t, 4.0, detail.AverageRating)
	assert.Len(t, detail.Reviews, 3)

	detail, err = f.svc.GetService(context.Background(), unrated.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, detail.AverageRating)
}

func TestGetService_Missing(t *testing.T) {
	f := newCatalogFixture(t)
	f.services.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(models.Service{}, interfaces.ErrRecordNotFound)

	_, err := f.svc.GetService(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListServices_AttachesLiveAverages(t *testing.T) {
	f := newCatalogFixture(t)
	category := uuid.New()
	a, b := models.Service{ID: uuid.New()}, models.Service{ID: uuid.New()}

	f.services.EXPECT().List(gomock.Any(), interfaces.ServiceFilter{Search: "pipe", CategoryID: &category}).
		Return([]models.Service{a, b}, nil)
	f.reviews.EXPECT().AverageFor(gomock.Any(), []uuid.UUID{a.ID, b.ID}).
		Return(map[uuid.UUID]float64{a.ID: 4.0}, nil)

	views, err := f.svc.ListServices(context.Background(), interfaces.ServiceFilter{Search: "  pipe ", CategoryID: &category})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, 4.0, views[0].AverageRating)
	assert.Equal(t, 0.0, views[1].AverageRating)
}

func TestCreateService(t *testing.T) {
	f := newCatalogFixture(t)
	building := uuid.New()
	in := ServiceInput{BuildingID: building, Name: " Plumbing ", Price: 40}

	_, err := f.svc.CreateService(context.Background(), customer(), in)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = f.svc.CreateService(context.Background(), admin(), ServiceInput{BuildingID: building, Name: "x", Price: -1})
	assert.ErrorIs(t, err, ErrValidation)

	missing := uuid.New()
	f.buildings.EXPECT().GetByID(gomock.Any(), missing).Return(models.Building{}, interfaces.ErrRecordNotFound)
	_, err = f.svc.CreateService(context.Background(), admin(), ServiceInput{BuildingID: missing, Name: "x"})
	assert.ErrorIs(t, err, ErrValidation)

	f.buildings.EXPECT().GetByID(gomock.Any(), building).Return(models.Building{ID: building}, nil)
	f.services.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	view, err := f.svc.CreateService(context.Background(), admin(), in)
	require.NoError(t, err)
	assert.Equal(t, "Plumbing", view.Service.Name)
	assert.Equal(t, "$40.00", view.Service.PriceDisplay())
}

func TestAddReview(t *testing.T) {
	f := newCatalogFixture(t)
	author := customer()
	serviceID := uuid.New()

	for _, in := range []ReviewInput{{Rating: 0, Comment: "meh"}, {Rating: 6, Comment: "wow"}, {Rating: 4, Comment: "  "}} {
		_, err := f.svc.AddReview(context.Background(), author, serviceID, in)
		assert.ErrorIs(t, err, ErrValidation)
	}

	f.services.EXPECT().GetByID(gomock.Any(), serviceID).Return(models.Service{ID: serviceID}, nil)
	f.reviews.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *models.Review) error {
		assert.Equal(t, author.ID, r.UserID)
		assert.Equal(t, serviceID, r.ServiceID)
		return nil
	})

	review, err := f.svc.AddReview(context.Background(), author, serviceID, ReviewInput{Rating: 5, Comment: " great "})
	require.NoError(t, err)
	assert.Equal(t, "great", review.Comment)
}

func TestAddReview_UnknownService(t *testing.T) {
	f := newCatalogFixture(t)
	f.services.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(models.Service{}, interfaces.ErrRecordNotFound)
	f.reviews.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := f.svc.AddReview(context.Background(), customer(), uuid.New(), ReviewInput{Rating: 5, Comment: "ok"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRatingReport(t *testing.T) {
	f := newCatalogFixture(t)
	low, high, mid := models.Service{ID: uuid.New()}, models.Service{ID: uuid.New()}, models.Service{ID: uuid.New()}

	_, err := f.svc.RatingReport(context.Background(), customer(), 10)
	assert.ErrorIs(t, err, ErrForbidden)

	f.services.EXPECT().List(gomock.Any(), interfaces.ServiceFilter{}).Return([]models.Service{low, high, mid}, nil)
	f.reviews.EXPECT().AverageFor(gomock.Any(), gomock.Any()).
		Return(map[uuid.UUID]float64{low.ID: 1.5, high.ID: 4.8, mid.ID: 3}, nil)

	views, err := f.svc.RatingReport(context.Background(), admin(), 2)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, high.ID, views[0].Service.ID)
	assert.Equal(t, mid.ID, views[1].Service.ID)
}

func TestCreateService_PriceFitsColumn(t *testing.T) {
	f := newCatalogFixture(t)
	building := uuid.New()

	_, err := f.svc.CreateService(context.Background(), admin(), ServiceInput{BuildingID: building, Name: "Roof", Price: 1e8})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "$99999999.99")

	_, err = f.svc.CreateService(context.Background(), admin(), ServiceInput{BuildingID: building, Name: "Roof", Price: math.NaN()})
	assert.ErrorIs(t, err, ErrValidation)

	f.buildings.EXPECT().GetByID(gomock.Any(), building).Return(models.Building{ID: building}, nil)
	f.services.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	_, err = f.svc.CreateService(context.Background(), admin(), ServiceInput{BuildingID: building, Name: "Roof", Price: models.MaxPrice})
	assert.NoError(t, err)
}
