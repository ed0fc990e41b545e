package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"wellness-rewards-system/handlers"
	"wellness-rewards-system/middleware"
	"wellness-rewards-system/models"
	"wellness-rewards-system/services"
	"wellness-rewards-system/utils"
	"wellness-rewards-system/workers"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{})

	// All traffic must come through the gateway; no exceptions.
	app.Use(middleware.GatewayAuthMiddleware())

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(allowedOriginsList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-User-Roles",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.ChallengeProgress{},
		&models.LedgerEntry{},
		&models.ActivityEvent{},
		&models.LeaderboardSnapshot{},
		&models.Reward{},
		&models.UserAchievement{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	clock, err := services.NewClock(os.Getenv("TIME_ZONE"))
	if err != nil {
		log.Fatal("failed to load canonical timezone:", err)
	}

	enabled, err := utils.InitStatementStore()
	if err != nil {
		log.Fatal("failed to initialize statement store:", err)
	}
	if !enabled {
		log.Println("STATEMENT_BUCKET not set; monthly statement archiving disabled")
	}

	rules := services.NewRuleRegistry()
	ledgerService := services.NewLedgerService(db, clock)
	challengeService := services.NewChallengeService(db, clock, rules, ledgerService)
	leaderboardService := services.NewLeaderboardService(db, clock)
	rolloverService := services.NewRolloverService(db, clock, rules)
	historyService := services.NewHistoryService(db, clock)
	statsService := services.NewStatsService(db)

	sched, err := services.StartMaintenanceScheduler(rolloverService, clock)
	if err != nil {
		log.Fatal("failed to start maintenance scheduler:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go workers.PollLeaderboard(ctx, leaderboardService, 15*time.Minute)

	handlers.SetupChallengeRoutes(app, challengeService, rules)
	handlers.SetupPointsRoutes(app, ledgerService, historyService)
	handlers.SetupLeaderboardRoutes(app, leaderboardService)
	handlers.SetupStatsRoutes(app, statsService)

	go func() {
		if err := app.Listen(":5300"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("Server running on http://localhost:5300")
	log.Println("Maintenance scheduler running (nightly decay, monthly rollover)")
	log.Println("Leaderboard refresh worker running (every 15m)")

	<-ctx.Done()
	log.Println("Shutting down server...")
	_ = sched.Shutdown()
	_ = app.Shutdown()
}
