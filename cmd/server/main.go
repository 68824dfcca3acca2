package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitclub/membership-server/internal/api"
	"github.com/fitclub/membership-server/internal/config"
	"github.com/fitclub/membership-server/internal/repository/mongo"
	"github.com/fitclub/membership-server/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	log.Println("Starting Membership Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
	}
	defer func() {
		log.Println("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	log.Println("Database connection established.")

	// --- Ensure Indexes ---
	// The unique username indexes back the reconciler's uniqueness checks,
	// so they are created before the server starts taking requests.
	log.Println("Ensuring database indexes...")
	indexCtx, indexCancel := context.WithTimeout(context.Background(), 1*time.Minute)
	mongo.EnsureCredentialIndexes(indexCtx, appDB.Collection("credentials"))
	mongo.EnsureClientIndexes(indexCtx, appDB.Collection("clients"))
	mongo.EnsureTrainerIndexes(indexCtx, appDB.Collection("trainers"))
	indexCancel()
	log.Println("Index creation process completed.")

	// --- Initialize Repositories ---
	log.Println("Initializing repositories...")
	credentialRepo := mongo.NewMongoCredentialRepository(appDB)
	clientRepo := mongo.NewMongoClientRepository(appDB)
	trainerRepo := mongo.NewMongoTrainerRepository(appDB)
	subscriptionRepo := mongo.NewMongoSubscriptionRepository(appDB)

	// --- Initialize Services ---
	log.Println("Initializing services...")
	hasher := service.NewBcryptHasher(bcrypt.DefaultCost)
	authService := service.NewAuthService(credentialRepo, hasher, cfg.JWT.Secret, cfg.JWT.Expiration)
	clientService := service.NewClientService(clientRepo, trainerRepo, credentialRepo, hasher)
	trainerService := service.NewTrainerService(trainerRepo, clientRepo, credentialRepo, hasher)
	subscriptionService := service.NewSubscriptionService(subscriptionRepo)
	statsService := service.NewStatisticsService(clientRepo, subscriptionRepo)

	// --- Seed Demo Data ---
	if cfg.Seed.Enabled {
		seeder := service.NewSeeder(credentialRepo, clientRepo, subscriptionRepo, hasher)
		seedCtx, seedCancel := context.WithTimeout(context.Background(), 1*time.Minute)
		if err := seeder.Seed(seedCtx); err != nil {
			log.Printf("ERROR: Seeding failed: %v", err)
		}
		seedCancel()
	}

	// --- Initialize Gin Engine ---
	// gin.SetMode(gin.ReleaseMode) // Uncomment for production
	router := gin.Default() // Includes Logger and Recovery middleware

	// --- Setup Routes ---
	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, authService, clientService, trainerService, subscriptionService, statsService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
