package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/emplatform/employee-management-api/internal/config"
	"github.com/emplatform/employee-management-api/internal/database"
	"github.com/emplatform/employee-management-api/internal/handlers"
	"github.com/emplatform/employee-management-api/internal/logger"
	"github.com/emplatform/employee-management-api/internal/mailer"
	"github.com/emplatform/employee-management-api/internal/middleware"
	"github.com/emplatform/employee-management-api/internal/repository"
	"github.com/emplatform/employee-management-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger.Init(cfg.Logging)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	db := database.GetDB()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	deptRepo := repository.NewDepartmentRepository(db)
	posRepo := repository.NewPositionRepository(db)
	empRepo := repository.NewEmployeeRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Services
	mail := mailer.NewSMTPMailer(cfg.SMTP)
	tokens := services.NewTokenService(cfg.JWT)
	authService := services.NewAuthService(userRepo, tokens)
	regService := services.NewRegistrationService(userRepo, companyRepo, inviteRepo, mail, cfg.BaseURL)
	orgService := services.NewOrgChartService(deptRepo, posRepo, empRepo, userRepo, companyRepo)
	taskService := services.NewTaskService(taskRepo, userRepo)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	regHandler := handlers.NewRegistrationHandler(regService)
	deptHandler := handlers.NewDepartmentHandler(orgService)
	posHandler := handlers.NewPositionHandler(orgService)
	empHandler := handlers.NewEmployeeHandler(orgService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Employee Management API is running",
		})
	})

	// Registration routes
	auth := r.Group("/auth/api/v1")
	{
		auth.GET("/check_account", regHandler.CheckAccount)
		auth.POST("/sign-up", regHandler.SignUp)
		auth.POST("/sign-up-complete", regHandler.SignUpComplete)
		auth.POST("/create_user", middleware.RequireAuth(tokens), middleware.RequireAdmin(), regHandler.CreateUser)
		auth.PATCH("/confirm-registration", regHandler.ConfirmRegistration)
		auth.PUT("/update_user", middleware.RequireAuth(tokens), regHandler.UpdateUser)
		auth.POST("/login", authHandler.Login)
		auth.POST("/login/refresh", authHandler.Refresh)
		auth.GET("/me", middleware.RequireAuth(tokens), authHandler.GetCurrentUser)
	}

	// Org-chart routes (admin only)
	orgs := r.Group("/organizations/api/v1")
	orgs.Use(middleware.RequireAuth(tokens), middleware.RequireAdmin())
	{
		registerCRUD(orgs.Group("/department"), deptHandler.List, deptHandler.Create, deptHandler.Get, deptHandler.Update, deptHandler.Patch, deptHandler.Delete)
		registerCRUD(orgs.Group("/position"), posHandler.List, posHandler.Create, posHandler.Get, posHandler.Update, posHandler.Patch, posHandler.Delete)
		registerCRUD(orgs.Group("/employee"), empHandler.List, empHandler.Create, empHandler.Get, empHandler.Update, empHandler.Patch, empHandler.Delete)
	}

	// Task routes (authenticated)
	tasks := r.Group("/tasks/api/v1")
	tasks.Use(middleware.RequireAuth(tokens))
	registerCRUD(tasks, taskHandler.List, taskHandler.Create, taskHandler.Get, taskHandler.Update, taskHandler.Patch, taskHandler.Delete)

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("server starting")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

// registerCRUD wires the uniform list/create/retrieve/update/partial-
// update/delete route set onto a group.
func registerCRUD(g *gin.RouterGroup, list, create, get, update, patch, del gin.HandlerFunc) {
	g.GET("", list)
	g.POST("", create)
	g.GET("/:id", get)
	g.PUT("/:id", update)
	g.PATCH("/:id", patch)
	g.DELETE("/:id", del)
}
