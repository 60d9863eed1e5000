package api

import (
	"github.com/frrrka/menstrualni-bot/internal/db"
	"github.com/frrrka/menstrualni-bot/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Handler struct {
	database  *gorm.DB
	profiles  *db.ProfileRepository
	scheduler *services.Scheduler
	secretKey string
}

func NewHandler(database *gorm.DB, profiles *db.ProfileRepository, scheduler *services.Scheduler, secretKey string) *Handler {
	return &Handler{
		database:  database,
		profiles:  profiles,
		scheduler: scheduler,
		secretKey: secretKey,
	}
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	sqlDB, err := handler.database.DB()
	if err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
	}
	if err := sqlDB.PingContext(c.Context()); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded"})
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) AdminOverview(c *fiber.Ctx) error {
	total, err := handler.profiles.CountAll()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "count profiles failed")
	}
	enabled, err := handler.profiles.CountDailyEnabled()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "count enabled profiles failed")
	}

	return c.JSON(fiber.Map{
		"profiles":      total,
		"daily_enabled": enabled,
		"scheduled":     handler.scheduler.ScheduledCount(),
	})
}
