package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gamification-system/handlers"
	"gamification-system/models"
	"gamification-system/services"
	"gamification-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // 20MB, image uploads only
	})

	// Load allowed origins from environment variable
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID",
		ExposeHeaders:    "Content-Length, Content-Type, Authorization, X-Request-ID",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	// TranslateError maps driver duplicate-key errors to gorm.ErrDuplicatedKey,
	// which the start/register paths rely on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Rank{},
		&models.Mission{},
		&models.UserMission{},
		&models.Artifact{},
		&models.UserArtifact{},
		&models.Competence{},
		&models.UserCompetence{},
		&models.StoreItem{},
		&models.Theme{},
		&models.Log{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := models.SeedDefaults(db); err != nil {
		log.Fatal("failed to seed defaults:", err)
	}

	if err := utils.InitR2(); err != nil {
		log.Printf("⚠️  R2 not configured, storing uploads locally: %v", err)
		if err := utils.EnsureUploadDir(); err != nil {
			log.Fatal("failed to ensure upload dir:", err)
		}
	}

	authService := services.NewAuthService(db, jwtSecret)
	progressionService := services.NewProgressionService(db)
	missionService := services.NewMissionService(db)
	statsService := services.NewStatsService(db)
	themeService := services.NewThemeService(db)
	storeService := services.NewStoreService(db)
	contentService := services.NewContentService(db)

	contentService.StartPublishScheduler()

	handlers.SetupAuthRoutes(app, db, authService, statsService)
	handlers.SetupMissionRoutes(app, db, jwtSecret, missionService, progressionService)
	handlers.SetupStatsRoutes(app, db, jwtSecret, statsService)
	handlers.SetupUserRoutes(app, db, jwtSecret, statsService)
	handlers.SetupCatalogRoutes(app, db, jwtSecret, storeService, themeService)
	handlers.SetupAdminRoutes(app, db, jwtSecret, themeService, contentService)

	app.Static("/uploads", "./uploads")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "5300"
	}

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("✅ Server running on http://localhost:%s", port)
	log.Println("✅ Mission publish scheduler running (every 1m)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
