package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"servic-backend/models"
	"servic-backend/services"
	"servic-backend/services/interfaces"
	mock_interfaces "servic-backend/services/interfaces/mocks"
	"servic-backend/utils"
)

type testRouter struct {
	engine *gin.Engine
	users  *mock_interfaces.MockIUserRepository
	orders *mock_interfaces.MockIOrderRepository
	issuer *utils.TokenIssuer
}

func newTestRouter(t *testing.T, opts ...func(*Dependencies)) *testRouter {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	logger, _ := logtest.NewNullLogger()

	users := mock_interfaces.NewMockIUserRepository(ctrl)
	orders := mock_interfaces.NewMockIOrderRepository(ctrl)
	history := mock_interfaces.NewMockIOrderHistoryRepository(ctrl)
	buildings := mock_interfaces.NewMockIBuildingRepository(ctrl)
	categories := mock_interfaces.NewMockICategoryRepository(ctrl)
	catalog := mock_interfaces.NewMockIServiceRepository(ctrl)
	reviews := mock_interfaces.NewMockIReviewRepository(ctrl)
	clients := mock_interfaces.NewMockIClientRepository(ctrl)
	logs := mock_interfaces.NewMockINotificationLogRepository(ctrl)

	issuer := utils.NewTokenIssuer("test-secret", time.Hour)
	deps := Dependencies{
		Log:            logger,
		Issuer:         issuer,
		AllowedOrigins: []string{"http://localhost:3000"},
		Accounts:       services.NewAccountService(users, buildings, logger),
		Buildings:      services.NewBuildingService(buildings, categories, logger),
		Catalog:        services.NewCatalogService(catalog, reviews, buildings, categories, logger),
		Orders:         services.NewOrderService(orders, history, catalog, buildings, nil, logger),
		Clients:        services.NewClientService(clients, logger),
		Notifications:  services.NewNotificationService(nil, logs, logger),
	}
	for _, opt := range opts {
		opt(&deps)
	}
	engine := SetupRouter(deps)
	return &testRouter{engine: engine, users: users, orders: orders, issuer: issuer}
}

func (tr *testRouter) get(t *testing.T, path string, user *models.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if user != nil {
		token, err := tr.issuer.Generate(user.ID)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	tr.engine.ServeHTTP(w, req)
	return w
}

func TestAPIRequiresToken(t *testing.T) {
	tr := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, tr.get(t, "/api/orders", nil).Code)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	tr.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPIResolvesPrincipalFromToken(t *testing.T) {
	tr := newTestRouter(t)
	user := models.User{ID: uuid.New(), Role: models.RoleUser}
	tr.users.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil)
	tr.orders.EXPECT().List(gomock.Any(), models.OrderScope{UserID: &user.ID}).Return([]models.Order{}, nil)

	w := tr.get(t, "/api/orders", &user)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestAPIRejectsDeletedAccount(t *testing.T) {
	tr := newTestRouter(t)
	user := models.User{ID: uuid.New()}
	tr.users.EXPECT().GetByID(gomock.Any(), user.ID).Return(models.User{}, interfaces.ErrRecordNotFound)

	assert.Equal(t, http.StatusUnauthorized, tr.get(t, "/api/orders", &user).Code)
}

func TestStaffOnlyRoutes(t *testing.T) {
	tr := newTestRouter(t)
	user := models.User{ID: uuid.New(), Role: models.RoleUser}
	tr.users.EXPECT().GetByID(gomock.Any(), user.ID).Return(user, nil).Times(3)

	assert.Equal(t, http.StatusForbidden, tr.get(t, "/api/clients", &user).Code)
	assert.Equal(t, http.StatusForbidden, tr.get(t, "/api/reports/ratings", &user).Code)
	assert.Equal(t, http.StatusForbidden, tr.get(t, "/api/notifications", &user).Code)
}

func TestPublicRoutes(t *testing.T) {
	tr := newTestRouter(t)

	assert.Equal(t, http.StatusOK, tr.get(t, "/api", nil).Code)
	assert.Equal(t, http.StatusNotFound, tr.get(t, "/nowhere", nil).Code)

	w := tr.get(t, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "servic_http_requests_total")
}

func loginFrom(engine http.Handler, remote, forwarded string) int {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = remote
	if forwarded != "" {
		req.Header.Set("X-Forwarded-For", forwarded)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w.Code
}

func TestAuthRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	limiter := utils.NewRateLimiter(0.001, 2)
	tr := newTestRouter(t, func(d *Dependencies) { d.AuthLimiter = limiter })

	rejected := 0
	for i := 0; i < 50; i++ {
		if loginFrom(tr.engine, "203.0.113.7:40000", fmt.Sprintf("10.0.%d.%d", i/250, i%250)) == http.StatusTooManyRequests {
			rejected++
		}
	}
	assert.Equal(t, 48, rejected)
	assert.Equal(t, 1, limiter.Len())
}

func TestAuthRateLimit_TrustedProxyForwardsClientIP(t *testing.T) {
	limiter := utils.NewRateLimiter(0.001, 1)
	tr := newTestRouter(t, func(d *Dependencies) {
		d.AuthLimiter = limiter
		d.TrustedProxies = []string{"192.0.2.10"}
	})

	assert.NotEqual(t, http.StatusTooManyRequests, loginFrom(tr.engine, "192.0.2.10:5000", "198.51.100.1"))
	assert.NotEqual(t, http.StatusTooManyRequests, loginFrom(tr.engine, "192.0.2.10:5000", "198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(tr.engine, "192.0.2.10:5000", "198.51.100.1"))
	assert.Equal(t, 2, limiter.Len())
}
