package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/frrrka/menstrualni-bot/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository interface {
	FindByChatID(chatID int64) (models.CycleProfile, error)
	Create(profile *models.CycleProfile) error
	Save(profile *models.CycleProfile) error
	ListAll() ([]models.CycleProfile, error)
}

// ProfileService is the single gate to per-chat records. All
// read-modify-write cycles for one chat run under that chat's lock, so a
// scheduled fire racing a live button press cannot lose an update.
type ProfileService struct {
	profiles ProfileRepository

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewProfileService(profiles ProfileRepository) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		locks:    make(map[int64]*sync.Mutex),
	}
}

func (service *ProfileService) chatLock(chatID int64) *sync.Mutex {
	service.mu.Lock()
	defer service.mu.Unlock()

	lock, exists := service.locks[chatID]
	if !exists {
		lock = &sync.Mutex{}
		service.locks[chatID] = lock
	}
	return lock
}

// Get loads the profile for a chat, creating one with defaults on first
// contact.
func (service *ProfileService) Get(chatID int64) (models.CycleProfile, error) {
	lock := service.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	return service.getLocked(chatID)
}

func (service *ProfileService) getLocked(chatID int64) (models.CycleProfile, error) {
	profile, err := service.profiles.FindByChatID(chatID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CycleProfile{}, fmt.Errorf("load profile %d: %w", chatID, err)
	}

	created := models.NewCycleProfile(chatID)
	if err := service.profiles.Create(&created); err != nil {
		return models.CycleProfile{}, fmt.Errorf("create profile %d: %w", chatID, err)
	}
	return created, nil
}

// Update runs mutate against the current record under the chat's lock and
// persists the result as one atomic replace. An error from mutate rejects
// the update without touching stored state.
func (service *ProfileService) Update(chatID int64, mutate func(profile *models.CycleProfile) error) (models.CycleProfile, error) {
	return service.UpdateThen(chatID, mutate, nil)
}

// UpdateThen is Update with a commit hook that runs under the same chat
// lock after a successful save. Side effects that must track the stored
// state (the scheduler trigger follows daily_enabled) go here, so two
// racing updates cannot apply their side effects out of write order.
func (service *ProfileService) UpdateThen(chatID int64, mutate func(profile *models.CycleProfile) error, commit func(profile models.CycleProfile)) (models.CycleProfile, error) {
	lock := service.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	profile, err := service.getLocked(chatID)
	if err != nil {
		return models.CycleProfile{}, err
	}

	if err := mutate(&profile); err != nil {
		return models.CycleProfile{}, err
	}

	if err := service.profiles.Save(&profile); err != nil {
		return models.CycleProfile{}, fmt.Errorf("save profile %d: %w", chatID, err)
	}

	if commit != nil {
		commit(profile)
	}
	return profile, nil
}

// ForEach visits every stored profile. Used at startup to rebuild the
// schedule; not intended for request paths.
func (service *ProfileService) ForEach(visit func(profile models.CycleProfile) error) error {
	profiles, err := service.profiles.ListAll()
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}
	for _, profile := range profiles {
		if err := visit(profile); err != nil {
			return err
		}
	}
	return nil
}
