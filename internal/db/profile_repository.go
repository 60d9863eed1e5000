package db

import (
	"github.com/frrrka/menstrualni-bot/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) FindByChatID(chatID int64) (models.CycleProfile, error) {
	var profile models.CycleProfile
	if err := repo.database.First(&profile, "chat_id = ?", chatID).Error; err != nil {
		return models.CycleProfile{}, err
	}
	return profile, nil
}

func (repo *ProfileRepository) Create(profile *models.CycleProfile) error {
	return repo.database.Create(profile).Error
}

func (repo *ProfileRepository) Save(profile *models.CycleProfile) error {
	return repo.database.Save(profile).Error
}

func (repo *ProfileRepository) ListAll() ([]models.CycleProfile, error) {
	profiles := make([]models.CycleProfile, 0)
	if err := repo.database.Order("chat_id ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (repo *ProfileRepository) CountAll() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.CycleProfile{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *ProfileRepository) CountDailyEnabled() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.CycleProfile{}).
		Where("daily_enabled = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
