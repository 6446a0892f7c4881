package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "carnage-ai/internal/app"
	"carnage-ai/internal/bootstrap"
	"carnage-ai/internal/platform/rabbitmq"
	"carnage-ai/internal/repository"
	"carnage-ai/internal/transport/http/handler"
	"carnage-ai/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	modelRepo := repository.NewModelRepository(app.MySQL)
	trainingRepo := repository.NewTrainingSessionRepository(app.MySQL)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Sessions,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.SessionTTLMinute)*time.Minute,
	)
	modelService := appsvc.NewModelService(modelRepo)
	trainingPublisher := rabbitmq.NewTrainingRequestPublisher(app.MQConn, app.Config.RabbitMQ.TrainingRequestQueue)
	trainingService := appsvc.NewTrainingService(trainingRepo, modelRepo, trainingPublisher)

	authHandler := handler.NewAuthHandler(authService)
	modelHandler := handler.NewModelHandler(modelService)
	trainingHandler := handler.NewTrainingHandler(trainingService)

	requireAuth := middleware.Auth(app.Config.Auth.JWTSecret, app.Sessions)

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/signup", authHandler.SignUp)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", requireAuth, authHandler.Me)
	authGroup.POST("/logout", requireAuth, authHandler.Logout)

	modelGroup := api.Group("/models")
	modelGroup.Use(requireAuth)
	modelGroup.POST("", modelHandler.Create)
	modelGroup.GET("", modelHandler.List)
	modelGroup.GET("/:id", modelHandler.Get)
	modelGroup.PATCH("/:id", modelHandler.Update)
	modelGroup.DELETE("/:id", modelHandler.Delete)

	trainingGroup := api.Group("/training")
	trainingGroup.Use(requireAuth)
	trainingGroup.POST("", trainingHandler.Create)
	trainingGroup.GET("", trainingHandler.List)

	return router
}
