package api

import (
	"net/http"

	"github.com/fitclub/membership-server/internal/domain"
	"github.com/fitclub/membership-server/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	clientService service.ClientService,
	trainerService service.TrainerService,
	subscriptionService service.SubscriptionService,
	statsService service.StatisticsService,
) {

	authHandler := NewAuthHandler(authService)
	clientHandler := NewClientHandler(clientService)
	trainerHandler := NewTrainerHandler(trainerService)
	subscriptionHandler := NewSubscriptionHandler(subscriptionService)
	statsHandler := NewStatisticsHandler(statsService)

	authMiddleware := AuthMiddleware(jwtSecret)
	adminOnly := RoleMiddleware(domain.RoleAdmin)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.CurrentIdentity)

		// --- Client Routes ---
		clientGroup := protected.Group("/clients")
		{
			clientGroup.GET("", clientHandler.ListClients)
			clientGroup.GET("/count", clientHandler.CountClients)
			clientGroup.GET("/me", clientHandler.GetCurrentClient)
			clientGroup.GET("/:id", clientHandler.GetClient)
			clientGroup.POST("", clientHandler.CreateClient)
			clientGroup.PUT("/:id", clientHandler.UpdateClient)
			clientGroup.DELETE("/:id", adminOnly, clientHandler.DeleteClient)
		}

		// --- Trainer Routes ---
		trainerGroup := protected.Group("/trainers")
		{
			trainerGroup.GET("", trainerHandler.ListTrainers)
			trainerGroup.GET("/:id", trainerHandler.GetTrainer)
			trainerGroup.POST("", trainerHandler.CreateTrainer)
			trainerGroup.PUT("/:id", trainerHandler.UpdateTrainer)
			trainerGroup.DELETE("/:id", adminOnly, trainerHandler.DeleteTrainer)
		}

		// --- Subscription Routes ---
		subscriptionGroup := protected.Group("/subscriptions")
		{
			subscriptionGroup.GET("", subscriptionHandler.ListSubscriptions)
			subscriptionGroup.GET("/:id", subscriptionHandler.GetSubscription)
			subscriptionGroup.POST("", subscriptionHandler.CreateSubscription)
			subscriptionGroup.PUT("/:id", subscriptionHandler.UpdateSubscription)
			subscriptionGroup.DELETE("/:id", adminOnly, subscriptionHandler.DeleteSubscription)
		}

		// --- Statistics ---
		protected.GET("/statistics", statsHandler.GetStatistics)
	}
}
