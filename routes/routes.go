package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"servic-backend/config"
	"servic-backend/controllers"
	"servic-backend/metrics"
	"servic-backend/models"
	"servic-backend/services"
	"servic-backend/utils"
)

// Dependencies is everything the router needs to serve requests.
type Dependencies struct {
	DB             *gorm.DB
	Log            logrus.FieldLogger
	Issuer         *utils.TokenIssuer
	AllowedOrigins []string
	TrustedProxies []string
	AuthLimiter    *utils.RateLimiter

	Accounts      *services.AccountService
	Buildings     *services.BuildingService
	Catalog       *services.CatalogService
	Orders        *services.OrderService
	Clients       *services.ClientService
	Notifications *services.NotificationService
}

func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	if err := r.SetTrustedProxies(deps.TrustedProxies); err != nil {
		deps.Log.WithError(err).Warn("invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(config.RequestLogger(deps.Log))
	r.Use(metrics.Middleware())

	authController := controllers.NewAuthController(deps.Accounts, deps.Issuer, deps.Log)
	accountController := controllers.NewAccountController(deps.Accounts, deps.Log)
	buildingController := controllers.NewBuildingController(deps.Buildings, deps.Log)
	serviceController := controllers.NewServiceController(deps.Catalog, deps.Log)
	orderController := controllers.NewOrderController(deps.Orders, deps.Log)
	clientController := controllers.NewClientController(deps.Clients, deps.Log)
	notificationController := controllers.NewNotificationController(deps.Notifications, deps.Log)

	requireAuth := utils.AuthMiddleware(deps.Issuer, func(c *gin.Context, id uuid.UUID) (models.User, error) {
		return deps.Accounts.Principal(c.Request.Context(), id)
	})

	r.GET("/healthz", controllers.Health(deps.DB))
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
	r.GET("/api", controllers.Index)
	r.NoRoute(func(c *gin.Context) {
		utils.RespondWithError(c, http.StatusNotFound, "Not found")
	})

	auth := r.Group("/auth")
	{
		limited := auth.Group("")
		if deps.AuthLimiter != nil {
			limited.Use(deps.AuthLimiter.Middleware())
		}
		limited.POST("/register", authController.Register)
		limited.POST("/login", authController.Login)

		auth.POST("/logout", authController.Logout)

		auth.Use(requireAuth)
		auth.GET("/me", authController.Me)

		profile := auth.Group("/profile")
		{
			profile.GET("", authController.GetProfile)
			profile.PUT("", authController.UpdateProfile)
		}
	}

	api := r.Group("/api")
	api.Use(requireAuth)
	{
		accounts := api.Group("/accounts")
		{
			accounts.GET("", accountController.List)
			accounts.GET("/managers", accountController.ListManagers)
			accounts.GET("/users", accountController.ListUsers)
			accounts.GET("/:id", accountController.Get)
			accounts.PUT("/:id/role", accountController.AssignRole)
		}

		buildings := api.Group("/buildings")
		{
			buildings.POST("", buildingController.CreateBuilding)
			buildings.GET("", buildingController.ListBuildings)
			buildings.GET("/:id", buildingController.GetBuilding)
			buildings.PUT("/:id", buildingController.UpdateBuilding)
			buildings.DELETE("/:id", buildingController.DeleteBuilding)
		}

		categories := api.Group("/categories")
		{
			categories.POST("", buildingController.CreateCategory)
			categories.GET("", buildingController.ListCategories)
			categories.GET("/:id", buildingController.GetCategory)
			categories.PUT("/:id", buildingController.UpdateCategory)
			categories.DELETE("/:id", buildingController.DeleteCategory)
		}

		svc := api.Group("/services")
		{
			svc.POST("", serviceController.CreateService)
			svc.GET("", serviceController.GetServices)
			svc.GET("/:id", serviceController.GetService)
			svc.PUT("/:id", serviceController.UpdateService)
			svc.DELETE("/:id", serviceController.DeleteService)
			svc.GET("/:id/reviews", serviceController.GetReviews)
			svc.POST("/:id/reviews", serviceController.CreateReview)
		}

		orders := api.Group("/orders")
		{
			orders.POST("", orderController.CreateOrder)
			orders.GET("", orderController.GetOrders)
			orders.GET("/:id", orderController.GetOrder)
			orders.PATCH("/:id", orderController.UpdateOrder)
			orders.POST("/:id/status/:status", orderController.UpdateOrderStatus)
			orders.DELETE("/:id", orderController.DeleteOrder)
		}

		histories := api.Group("/orderhistories")
		{
			histories.GET("", orderController.GetOrderHistories)
			histories.GET("/:id", orderController.GetOrderHistory)
		}

		clients := api.Group("/clients")
		{
			clients.POST("", clientController.CreateClient)
			clients.GET("", clientController.GetClients)
			clients.GET("/:id", clientController.GetClient)
			clients.PUT("/:id", clientController.UpdateClient)
			clients.DELETE("/:id", clientController.DeleteClient)
		}

		api.GET("/dashboard", orderController.GetDashboardOverview)
		api.GET("/reports/ratings", serviceController.GetRatingReport)
		api.GET("/notifications", notificationController.GetNotifications)
	}

	return r
}
