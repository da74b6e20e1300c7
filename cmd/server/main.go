package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/codonyx/codonyx-api/internal/config"
	"github.com/codonyx/codonyx-api/internal/database"
	"github.com/codonyx/codonyx-api/internal/handlers"
	"github.com/codonyx/codonyx-api/internal/jobs"
	"github.com/codonyx/codonyx-api/internal/repository"
	cronjobs "github.com/codonyx/codonyx-api/internal/scheduler"
	"github.com/codonyx/codonyx-api/internal/services"
	"github.com/codonyx/codonyx-api/pkg/email"
	"github.com/codonyx/codonyx-api/pkg/logger"
	"github.com/codonyx/codonyx-api/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Load configuration from .env file
	cfg := config.LoadConfig()

	logger.InitLogger()
	logger.Log.Info("Logger initialized")

	// Connect to MongoDB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Database connection error: %v", err)
	}

	// --- Repositories ---
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	connectionRepo := repository.NewConnectionRepository(db)
	dealRepo := repository.NewDealRepository(db)
	bidRepo := repository.NewBidRepository(db)
	opportunityRepo := repository.NewOpportunityRepository(db)
	inviteRepo := repository.NewInviteRepository(db)
	publicationRepo := repository.NewPublicationRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	// --- Services ---
	notifier := email.NewNotifier(email.SMTPSender{}, cfg.AppBaseURL)
	notificationService := services.NewNotificationService(notificationRepo)
	activityService := services.NewActivityService(activityRepo)
	inviteService := services.NewInviteService(inviteRepo)
	authService := services.NewAuthService(userRepo, profileRepo, inviteService, notifier)
	profileService := services.NewProfileService(profileRepo, notifier, notificationService)
	connectionService := services.NewConnectionService(connectionRepo, profileRepo, notifier, notificationService, activityService)
	dealService := services.NewDealService(dealRepo, bidRepo, activityService)
	opportunityService := services.NewOpportunityService(opportunityRepo, dealRepo)
	publicationService := services.NewPublicationService(publicationRepo)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, cfg)
	profileHandler := handlers.NewProfileHandler(profileService, activityService)
	connectionHandler := handlers.NewConnectionHandler(connectionService, profileService)
	dealHandler := handlers.NewDealHandler(dealService, profileService)
	opportunityHandler := handlers.NewOpportunityHandler(opportunityService, profileService)
	inviteHandler := handlers.NewInviteHandler(inviteService, profileService)
	publicationHandler := handlers.NewPublicationHandler(publicationService, profileService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Initialize Gorilla Mux router
	router := mux.NewRouter()

	// Public auth routes
	router.HandleFunc("/auth/register", authHandler.RegisterHandler).Methods("POST")
	router.HandleFunc("/auth/login", authHandler.LoginHandler).Methods("POST")
	router.HandleFunc("/auth/verify", authHandler.VerifyEmailHandler).Methods("GET")
	router.HandleFunc("/auth/request-password-reset", authHandler.RequestPasswordResetHandler).Methods("POST")
	router.HandleFunc("/auth/reset-password", authHandler.ResetPasswordHandler).Methods("POST")

	// Profile routes
	profileRoutes := router.PathPrefix("/profiles").Subrouter()
	profileRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	profileRoutes.Use(middleware.UpdateLastActiveMiddleware(authService))
	profileRoutes.HandleFunc("/me", profileHandler.GetMyProfileHandler).Methods("GET")
	profileRoutes.HandleFunc("/me", profileHandler.UpdateMyProfileHandler).Methods("PATCH")
	profileRoutes.HandleFunc("/me/activity", profileHandler.GetMyActivityHandler).Methods("GET")
	profileRoutes.HandleFunc("/directory", profileHandler.DirectoryHandler).Methods("GET")
	profileRoutes.HandleFunc("/{id}", profileHandler.GetProfileHandler).Methods("GET")
	profileRoutes.HandleFunc("/{id}/publications", publicationHandler.ListPublicationsHandler).Methods("GET")

	// Connection routes
	connectionRoutes := router.PathPrefix("/connections").Subrouter()
	connectionRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	connectionRoutes.Use(middleware.UpdateLastActiveMiddleware(authService))
	connectionRoutes.HandleFunc("", connectionHandler.ListConnectionsHandler).Methods("GET")
	connectionRoutes.HandleFunc("/{id}/request", connectionHandler.SendRequestHandler).Methods("POST")
	connectionRoutes.HandleFunc("/status/{id}", connectionHandler.ConnectionStatusHandler).Methods("GET")
	connectionRoutes.HandleFunc("/{id}/respond", connectionHandler.RespondHandler).Methods("POST")
	connectionRoutes.HandleFunc("/{id}/withdraw", connectionHandler.WithdrawHandler).Methods("POST")
	connectionRoutes.HandleFunc("/{id}", connectionHandler.RemoveConnectionHandler).Methods("DELETE")

	// Deal marketplace routes
	dealRoutes := router.PathPrefix("/deals").Subrouter()
	dealRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	dealRoutes.Use(middleware.UpdateLastActiveMiddleware(authService))
	dealRoutes.HandleFunc("", dealHandler.ListDealsHandler).Methods("GET")
	dealRoutes.HandleFunc("/{id}/bids", dealHandler.PlaceBidHandler).Methods("POST")
	dealRoutes.HandleFunc("/bids/mine", dealHandler.MyBidsHandler).Methods("GET")
	dealRoutes.HandleFunc("/bids/{id}/withdraw", dealHandler.WithdrawBidHandler).Methods("POST")

	// Opportunity submission routes
	opportunityRoutes := router.PathPrefix("/opportunities").Subrouter()
	opportunityRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	opportunityRoutes.Use(middleware.UpdateLastActiveMiddleware(authService))
	opportunityRoutes.HandleFunc("", opportunityHandler.SubmitHandler).Methods("POST")
	opportunityRoutes.HandleFunc("/mine", opportunityHandler.MySubmissionsHandler).Methods("GET")

	// Publication routes
	publicationRoutes := router.PathPrefix("/publications").Subrouter()
	publicationRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	publicationRoutes.HandleFunc("", publicationHandler.CreatePublicationHandler).Methods("POST")
	publicationRoutes.HandleFunc("/{id}", publicationHandler.UpdatePublicationHandler).Methods("PATCH")
	publicationRoutes.HandleFunc("/{id}", publicationHandler.DeletePublicationHandler).Methods("DELETE")

	// Notification routes
	notificationRoutes := router.PathPrefix("/notifications").Subrouter()
	notificationRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	notificationRoutes.HandleFunc("", notificationHandler.GetNotificationsHandler).Methods("GET")
	notificationRoutes.HandleFunc("/{id}/read", notificationHandler.MarkNotificationReadHandler).Methods("POST")
	notificationRoutes.HandleFunc("/{id}", notificationHandler.DeleteNotificationHandler).Methods("DELETE")

	// Admin back-office routes
	adminRoutes := router.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	adminRoutes.Use(middleware.RequireRole("admin"))
	adminRoutes.HandleFunc("/users", authHandler.AdminListUsersHandler).Methods("GET")
	adminRoutes.HandleFunc("/users/{id}", authHandler.AdminGetUserHandler).Methods("GET")
	adminRoutes.HandleFunc("/registrations", profileHandler.ListRegistrationsHandler).Methods("GET")
	adminRoutes.HandleFunc("/registrations/{id}/review", profileHandler.ReviewRegistrationHandler).Methods("POST")
	adminRoutes.HandleFunc("/deals", dealHandler.ListAllDealsHandler).Methods("GET")
	adminRoutes.HandleFunc("/deals", dealHandler.CreateDealHandler).Methods("POST")
	adminRoutes.HandleFunc("/deals/{id}/status", dealHandler.SetDealStatusHandler).Methods("POST")
	adminRoutes.HandleFunc("/bids", dealHandler.ListAllBidsHandler).Methods("GET")
	adminRoutes.HandleFunc("/bids/{id}/review", dealHandler.ReviewBidHandler).Methods("POST")
	adminRoutes.HandleFunc("/opportunities", opportunityHandler.ListSubmissionsHandler).Methods("GET")
	adminRoutes.HandleFunc("/opportunities/{id}/review", opportunityHandler.ReviewSubmissionHandler).Methods("POST")
	adminRoutes.HandleFunc("/invites", inviteHandler.MintInviteHandler).Methods("POST")
	adminRoutes.HandleFunc("/invites", inviteHandler.ListInvitesHandler).Methods("GET")
	adminRoutes.HandleFunc("/invites/{id}", inviteHandler.ToggleInviteHandler).Methods("PATCH")

	// Apply middleware for logging
	router.Use(middleware.LoggingMiddleware)

	// Periodic maintenance: invite sweep and notification cleanup
	maintenance := jobs.NewMaintenance(inviteService, notificationService)
	cronjobs.StartMaintenanceCronJobs(maintenance)

	// Start the HTTP server
	port := cfg.Port
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(router)

	fmt.Printf("Server running on port %s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
