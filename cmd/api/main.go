package main

import (
	"context"
	"log"
	"os"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"complainhub/internal/adapter/api"
	"complainhub/internal/adapter/api/handler"
	apimiddleware "complainhub/internal/adapter/api/middleware"
	"complainhub/internal/adapter/api/router"
	"complainhub/internal/adapter/repository"
	"complainhub/internal/domain/service"
	"complainhub/internal/infrastructure/firebase"
	"complainhub/internal/infrastructure/storage"
	"complainhub/internal/infrastructure/websocket"
	"complainhub/internal/usecase"
	"complainhub/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opt option.ClientOption
	if cfg.ServiceAccountJSON != "" {
		log.Printf("Using Firebase service account from environment variable")
		opt = option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON))
	} else {
		if _, err := os.Stat(cfg.ServiceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", cfg.ServiceAccountPath)
		}
		log.Printf("Using Firebase service account from file: %s", cfg.ServiceAccountPath)
		opt = option.WithCredentialsFile(cfg.ServiceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	var imageStore usecase.ImageStore
	if cfg.StorageBucket != "" {
		credentialsPath := ""
		if cfg.ServiceAccountJSON == "" {
			credentialsPath = cfg.ServiceAccountPath
		}
		storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, credentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Cloud Storage: %v", err)
		}
		defer storageClient.Close()
		imageStore = storageClient
	} else {
		log.Printf("STORAGE_BUCKET not set, complaint images stay inline")
	}

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	complaintRepo := repository.NewFirestoreComplaintRepository(firestoreClient)

	sampleRepo := repository.NewSampleComplaintRepository()
	defer sampleRepo.Close()

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseApiKey)
	priorityService := service.NewPriorityService(cfg.PriorityApiUrl)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authUseCase := usecase.NewAuthUseCase(userRepo, firebaseAuthClient)
	userUseCase := usecase.NewUserUseCase(userRepo, firebaseAuthClient)
	complaintUseCase := usecase.NewComplaintUseCase(
		complaintRepo,
		userRepo,
		sampleRepo,
		priorityService,
		imageStore,
		wsManager,
		time.Duration(cfg.WatchFallbackSeconds)*time.Second,
		cfg.InlineImageLimitBytes,
	)

	handler.Setup(authUseCase, userUseCase, complaintUseCase)
	handler.SetupHealthHandler(firebaseAuthClient)

	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authClient)
	adminMiddleware := apimiddleware.NewAdminMiddleware(userRepo)

	wsHandler := handler.NewWebSocketHandler(wsManager, complaintUseCase, authUseCase)

	router.Setup(e, authMiddleware, adminMiddleware)
	router.SetupWebSocketRouter(e, wsHandler, authMiddleware)

	log.Printf("Starting server on port %s...", cfg.ServerPort)
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
