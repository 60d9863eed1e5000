package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/frrrka/menstrualni-bot/internal/api"
	"github.com/frrrka/menstrualni-bot/internal/bot"
	"github.com/frrrka/menstrualni-bot/internal/cli"
	"github.com/frrrka/menstrualni-bot/internal/content"
	"github.com/frrrka/menstrualni-bot/internal/db"
	"github.com/frrrka/menstrualni-bot/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("main: .env not loaded: %v", err)
	}

	secretKey := getEnv("SECRET_KEY", "change_me_in_production")

	if len(os.Args) > 1 && os.Args[1] == "admin-token" {
		if err := cli.RunAdminTokenCommand(secretKey, 24*time.Hour); err != nil {
			log.Fatalf("admin-token failed: %v", err)
		}
		return
	}

	location := mustLoadLocation(getEnv("TZ", "Europe/Belgrade"))
	time.Local = location

	botToken := getEnv("TELEGRAM_BOT_TOKEN", "")
	if botToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is required")
	}

	dbPath := getEnv("DB_PATH", filepath.Join("data", "ciklus.db"))
	port := getEnv("PORT", "8080")
	reminderHour := getEnvInt("REMINDER_HOUR", 22)
	reminderMinute := getEnvInt("REMINDER_MINUTE", 0)

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	catalog, err := content.Load()
	if err != nil {
		log.Fatalf("content catalog init failed: %v", err)
	}

	repositories := db.NewRepositories(database)
	profiles := services.NewProfileService(repositories.Profiles)
	weather := services.NewWeatherService(getEnv("WEATHER_API_KEY", ""), getEnv("WEATHER_CITY", "Belgrade,RS"))
	horoscope := services.NewHoroscopeService(getEnv("HOROSCOPE_API_URL", ""))

	telegramClient := bot.NewClient(botToken, getEnv("TELEGRAM_API_URL", ""))

	var chatBot *bot.Bot
	scheduler := services.NewScheduler(location, reminderHour, reminderMinute, func(chatID int64) error {
		return chatBot.HandleDailyFire(chatID)
	})
	assistant := services.NewAssistantService(profiles, scheduler, weather, horoscope, location)
	chatBot = bot.New(telegramClient, assistant, catalog)

	// Triggers come back before the first update is read, so a restart
	// cannot double-register against a live toggle.
	if err := assistant.RecoverSchedules(); err != nil {
		log.Fatalf("schedule recovery failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Ciklus",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	api.RegisterRoutes(app, api.NewHandler(database, repositories.Profiles, scheduler, secretKey))

	lifecycleCtx, cancelLifecycle := context.WithCancel(context.Background())
	defer cancelLifecycle()
	go chatBot.Run(lifecycleCtx)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		cancelLifecycle()
		scheduler.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Ciklus listening on http://0.0.0.0:%s (db: %s, tz: %s, reminder: %02d:%02d)",
		port, dbPath, location.String(), reminderHour, reminderMinute)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return parsed
}
