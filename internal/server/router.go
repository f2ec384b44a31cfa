package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/socialcarehq/social-care-backend/internal/handlers"
)

type RouterConfig struct {
	PatientHandler *handlers.PatientHandler
	EventsHandler  *handlers.EventsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("social-care-backend"))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		api.POST("/patients", cfg.PatientHandler.Register)
		api.GET("/patients/:id", cfg.PatientHandler.GetByID)
		api.GET("/patients/by-person/:personId", cfg.PatientHandler.GetByPersonID)

		api.POST("/patients/:id/family-members", cfg.PatientHandler.AddFamilyMember)
		api.DELETE("/patients/:id/family-members/:personId", cfg.PatientHandler.RemoveFamilyMember)
		api.POST("/patients/:id/family-members/:personId/primary-caregiver", cfg.PatientHandler.AssignPrimaryCaregiver)

		api.POST("/patients/:id/referrals", cfg.PatientHandler.CreateReferral)
		api.POST("/patients/:id/appointments", cfg.PatientHandler.RegisterAppointment)
		api.POST("/patients/:id/violation-reports", cfg.PatientHandler.ReportRightsViolation)

		api.PUT("/patients/:id/assessments/housing-condition", cfg.PatientHandler.UpdateHousingCondition)
		api.PUT("/patients/:id/assessments/socioeconomic-situation", cfg.PatientHandler.UpdateSocioEconomicSituation)
		api.PUT("/patients/:id/assessments/community-support-network", cfg.PatientHandler.UpdateCommunitySupportNetwork)
		api.PUT("/patients/:id/assessments/social-health-summary", cfg.PatientHandler.UpdateSocialHealthSummary)

		api.GET("/events/stream", cfg.EventsHandler.Stream)
	}

	return router
}
