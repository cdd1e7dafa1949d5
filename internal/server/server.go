package server

import (
	"log"
	"strings"
	"time"

	"github.com/gikomplain/backend/internal/config"
	"github.com/gikomplain/backend/internal/handler"
	"github.com/gikomplain/backend/internal/middleware"
	"github.com/gikomplain/backend/internal/model"
	"github.com/gikomplain/backend/internal/repository"
	"github.com/gikomplain/backend/internal/service"
	pkgvalidator "github.com/gikomplain/backend/pkg/validator"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	if err := pkgvalidator.Register(); err != nil {
		log.Fatalf("failed to register custom validations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	complaintRepo := repository.NewComplaintRepository(db)

	mailer := service.NewLogMailer()
	authService := service.NewAuthService(userRepo, deptRepo, mailer, cfg.JWTSecret, cfg.JWTTTL, cfg.AppBaseURL)
	authHandler := handler.NewAuthHandler(authService, cfg.Production())

	departmentService := service.NewDepartmentService(deptRepo)
	departmentHandler := handler.NewDepartmentHandler(departmentService)

	statsCache := service.NewRedisCache(redisClient)

	complaintService := service.NewComplaintService(complaintRepo, userRepo, statsCache)
	complaintHandler := handler.NewComplaintHandler(complaintService)

	dashboardService := service.NewDashboardService(complaintRepo, deptRepo, userRepo, statsCache)
	adminHandler := handler.NewAdminHandler(dashboardService, complaintService)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	router := gin.Default()
	setupCORS(router, cfg.AllowedOrigins)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/verify-email", authHandler.VerifyEmail)

		api.GET("/departments", departmentHandler.List)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.Me)

		protected.POST("/complaints",
			authMiddleware.RequireCapability(model.Role.CanSubmit),
			complaintHandler.Submit)
		protected.GET("/complaints/my", complaintHandler.MyComplaints)
		protected.GET("/complaints/department",
			authMiddleware.RequireCapability(model.Role.CanTriage),
			complaintHandler.DepartmentQueue)
		protected.PATCH("/complaints/:id/status",
			authMiddleware.RequireCapability(model.Role.CanTriage),
			complaintHandler.UpdateStatus)

		admin := protected.Group("/admin")
		admin.Use(authMiddleware.RequireCapability(model.Role.IsAdmin))
		{
			admin.GET("/dashboard", adminHandler.Dashboard)
			admin.POST("/complaints/:id/assign", adminHandler.AssignComplaint)
		}
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
