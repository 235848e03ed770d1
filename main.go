package main

import (
	"log"

	"healthcare-plus/internal/config"
	"healthcare-plus/internal/handlers"
	"healthcare-plus/internal/logger"
	"healthcare-plus/internal/services"
	"healthcare-plus/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	logger.Init(cfg.LogLevel)

	intake, err := services.NewFileIntake(cfg.UploadDir)
	if err != nil {
		logger.Fatal("Failed to prepare upload directory: ", err)
	}

	openaiService := services.NewOpenAIService(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.BaseURL,
		cfg.OpenAI.ModelVision,
		cfg.OpenAI.ModelText,
		cfg.Chat.Temperature,
	)
	conversations := services.NewConversationStore(cfg.Chat.SystemPrompt, cfg.Chat.HistoryLimit)
	appointments := storage.NewAppointmentStore()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(handlers.CORSMiddleware())

	diagnosisHandler := handlers.NewDiagnosisHandler(intake, openaiService)
	healthPlanHandler := handlers.NewHealthPlanHandler(openaiService)
	chatHandler := handlers.NewChatHandler(conversations, openaiService, openaiService)
	appointmentHandler := handlers.NewAppointmentHandler(appointments)

	api := router.Group("/api")
	{
		api.POST("/xray-diagnosis", diagnosisHandler.XrayDiagnosis)
		api.POST("/analyze-image", diagnosisHandler.AnalyzeImage)

		api.POST("/HealthPlans", healthPlanHandler.GeneratePlan)
		api.GET("/HealthPlans", healthPlanHandler.GeneratePlanQuery)

		api.POST("/mental-health-chat", chatHandler.MentalHealthChat)
		api.GET("/test", chatHandler.Test)

		api.GET("/appointments", appointmentHandler.List)
		api.POST("/appointments", appointmentHandler.Create)
		api.GET("/appointments/:id", appointmentHandler.Get)
		api.PUT("/appointments/:id", appointmentHandler.Update)
		api.DELETE("/appointments/:id", appointmentHandler.Delete)
	}

	logger.Info("Service listening on port " + cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
