package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/krishiconnect/krishi-backend/config"
	"github.com/krishiconnect/krishi-backend/internal/auditlog"
	"github.com/krishiconnect/krishi-backend/internal/auth"
	"github.com/krishiconnect/krishi-backend/internal/crop"
	"github.com/krishiconnect/krishi-backend/internal/events"
	"github.com/krishiconnect/krishi-backend/internal/farmer"
	"github.com/krishiconnect/krishi-backend/internal/landlord"
	"github.com/krishiconnect/krishi-backend/internal/media"
	"github.com/krishiconnect/krishi-backend/internal/notification"
	"github.com/krishiconnect/krishi-backend/internal/reports"
	"github.com/krishiconnect/krishi-backend/internal/space"
	"github.com/krishiconnect/krishi-backend/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	_ "github.com/krishiconnect/krishi-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps are the infrastructure handles the services are built on.
// Redis and Publisher are optional.
type Deps struct {
	DB        *gorm.DB
	Redis     *redis.Client
	Storage   media.Storage
	Publisher events.Publisher
}

type Services struct {
	Audit         auditlog.Service
	Auth          auth.Service
	Farmers       farmer.Service
	Landlords     landlord.Service
	Spaces        space.Service
	Crops         crop.Service
	Media         media.Service
	Notifications notification.Service
	Reports       reports.ReportService
}

// NewServices builds repositories and services.
func NewServices(cfg *config.Config, deps Deps) *Services {
	db := deps.DB

	auditSvc := auditlog.NewService(auditlog.NewRepository(db))

	var revoked auth.RevocationStore
	if deps.Redis != nil {
		revoked = auth.NewRedisRevocationStore(deps.Redis)
	}
	tokens := auth.NewTokenService(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)
	authRepo := auth.NewRepository(db)
	authSvc := auth.NewService(authRepo, tokens, revoked, auditSvc)

	farmerRepo := farmer.NewRepository(db)
	landlordRepo := landlord.NewRepository(db)
	spaceRepo := space.NewRepository(db)
	mediaSvc := media.NewService(deps.Storage, cfg.PublicBaseURL)

	return &Services{
		Audit:         auditSvc,
		Auth:          authSvc,
		Farmers:       farmer.NewService(farmerRepo, authRepo, auditSvc),
		Landlords:     landlord.NewService(landlordRepo, authRepo, auditSvc),
		Spaces:        space.NewService(spaceRepo, farmerRepo, landlordRepo, authRepo, auditSvc, deps.Publisher),
		Crops:         crop.NewService(crop.NewRepository(db), spaceRepo, mediaSvc, auditSvc, deps.Publisher),
		Media:         mediaSvc,
		Notifications: notification.NewService(notification.NewRepository(db), deps.Redis),
		Reports:       reports.NewReportService(reports.NewRepository(db), reports.NewReportExporter(), auditSvc, deps.Redis),
	}
}

func Setup(r *gin.Engine, cfg *config.Config, svc *Services) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "Cache-Control"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authHandler := auth.NewHandler(svc.Auth)
	auditHandler := auditlog.NewHandler(svc.Audit)
	farmerHandler := farmer.NewHandler(svc.Farmers)
	landlordHandler := landlord.NewHandler(svc.Landlords)
	spaceHandler := space.NewHandler(svc.Spaces)
	cropHandler := crop.NewHandler(svc.Crops)
	mediaHandler := media.NewHandler(svc.Media)
	notificationHandler := notification.NewHandler(svc.Notifications)
	reportsHandler := reports.NewHandler(svc.Reports)

	// Uploaded files are public
	r.GET("/media/:name", mediaHandler.Serve)

	api := r.Group("/")
	api.Use(middleware.RateLimiter(cfg.RateLimitPerMinute))
	api.Use(middleware.AuditMiddleware())

	// ========== Auth ==========
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/refresh-token", authHandler.Refresh)

	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(svc.Auth.Tokens(), svc.Auth))

	protected.POST("/logout", authHandler.Logout)
	protected.GET("/me", authHandler.Me)
	protected.GET("/dashboard", middleware.RequirePermission(middleware.PermDashboardView), reportsHandler.GetDashboard)
	protected.POST("/upload/images", middleware.RequirePermission(middleware.PermMediaUpload), mediaHandler.UploadImages)

	// ========== Farmers ==========
	protected.POST("/farmer/register", middleware.RequirePermission(middleware.PermFarmerRegister), farmerHandler.Register)
	protected.PUT("/farmer/update/:user_id", middleware.RequirePermission(middleware.PermFarmerUpdate), farmerHandler.Update)
	protected.GET("/farmers", middleware.RequirePermission(middleware.PermFarmersList), farmerHandler.List)
	protected.GET("/farmers/:user_id", middleware.RequirePermission(middleware.PermFarmersList), farmerHandler.Get)

	// ========== Landlords ==========
	protected.POST("/landlord/register", middleware.RequirePermission(middleware.PermLandlordRegister), landlordHandler.Register)
	protected.PUT("/landlord/update/:user_id", middleware.RequirePermission(middleware.PermLandlordUpdate), landlordHandler.Update)
	protected.GET("/landlords", middleware.RequirePermission(middleware.PermLandlordsList), landlordHandler.List)
	protected.GET("/landlords/:user_id", middleware.RequirePermission(middleware.PermLandlordsList), landlordHandler.Get)

	// ========== Spaces ==========
	spaceView := middleware.RequirePermission(middleware.PermSpaceView)
	protected.GET("/spaces", spaceView, spaceHandler.List)
	protected.GET("/api/collaborations", spaceView, spaceHandler.List)
	protected.GET("/spaces/:id", spaceView, spaceHandler.Get)
	protected.PUT("/spaces/:id", middleware.RequirePermission(middleware.PermSpaceUpdate), spaceHandler.Update)
	protected.GET("/user/:user_id/spaces", spaceView, spaceHandler.CountForUser)

	// ========== Crops & proofs ==========
	cropView := middleware.RequirePermission(middleware.PermCropView)
	cropWrite := middleware.RequirePermission(middleware.PermCropWrite)
	protected.POST("/spaces/:id/crops", cropWrite, cropHandler.Create)
	protected.GET("/spaces/:id/crops", cropView, cropHandler.ListBySpace)
	protected.GET("/crops/:id", cropView, cropHandler.Get)
	protected.PUT("/crops/:id", cropWrite, cropHandler.Update)
	protected.DELETE("/crops/:id", cropWrite, cropHandler.Delete)
	protected.POST("/crops/:id/steps/:step_index/proofs", middleware.RequirePermission(middleware.PermProofUpload), cropHandler.UploadProofs)
	protected.GET("/crops/:id/proofs", cropView, cropHandler.ListProofs)

	// ========== Notifications ==========
	notificationRoutes := protected.Group("/notifications")
	notificationRoutes.Use(middleware.RequirePermission(middleware.PermNotifications))
	{
		notificationRoutes.GET("", notificationHandler.GetMyInApp)
		notificationRoutes.PUT("/:id/read", notificationHandler.MarkInAppRead)
		notificationRoutes.GET("/stream", notificationHandler.StreamInApp)
	}

	// ========== Admin ==========
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(middleware.RequirePermission(middleware.PermAdminManage))
	{
		adminRoutes.POST("/register-admin", authHandler.RegisterAdmin)
		adminRoutes.POST("/connect", spaceHandler.Connect)
		adminRoutes.GET("/spaces", spaceHandler.ListByAdmin)
		adminRoutes.DELETE("/remove-space/:space_id", spaceHandler.Remove)
		adminRoutes.DELETE("/delete-farmer/:farmer_id", farmerHandler.Delete)
		adminRoutes.DELETE("/delete-landlord/:landlord_id", landlordHandler.Delete)

		adminRoutes.GET("/audit-logs", auditHandler.GetAuditLogs)
		adminRoutes.GET("/audit-logs/:id", auditHandler.GetAuditLogByID)

		adminRoutes.GET("/reports/export", reportsHandler.Export)
	}
}
