package services

import (
	"context"
	"time"

	"github.com/frrrka/menstrualni-bot/internal/models"
)

type WeatherProvider interface {
	FetchCategory(ctx context.Context) (models.WeatherKind, bool)
}

type HoroscopeProvider interface {
	Fetch(ctx context.Context, sign models.StarSign) (string, bool)
}

// RenderContext is everything the presentation layer needs to turn one
// interaction into a message. Absent optional context stays absent; the
// renderer decides how much of it to use.
type RenderContext struct {
	Profile    models.CycleProfile
	Day        CycleDay
	DayKnown   bool
	Milestones Milestones
	MilesKnown bool
	Mood       models.Mood
	Streak     int

	Weather        models.WeatherKind
	WeatherKnown   bool
	Horoscope      string
	HoroscopeKnown bool
}

// AssistantService glues the store, the phase math, the streak rules, the
// scheduler and the external providers behind the operations the chat
// layer calls.
type AssistantService struct {
	profiles  *ProfileService
	scheduler *Scheduler
	weather   WeatherProvider
	horoscope HoroscopeProvider
	location  *time.Location
	now       func() time.Time
}

func NewAssistantService(
	profiles *ProfileService,
	scheduler *Scheduler,
	weather WeatherProvider,
	horoscope HoroscopeProvider,
	location *time.Location,
) *AssistantService {
	if location == nil {
		location = time.UTC
	}
	return &AssistantService{
		profiles:  profiles,
		scheduler: scheduler,
		weather:   weather,
		horoscope: horoscope,
		location:  location,
		now:       time.Now,
	}
}

// FirstContact makes sure a profile exists and remembers that the chat has
// seen the intro, so a later restart knows it may restore triggers.
func (service *AssistantService) FirstContact(chatID int64) (models.CycleProfile, error) {
	return service.profiles.Update(chatID, func(profile *models.CycleProfile) error {
		profile.SeenOnboarding = true
		return nil
	})
}

// ConfigureCycle commits a completed wizard run in one write. Invalid
// input rejects the whole submission and leaves the record untouched.
func (service *AssistantService) ConfigureCycle(chatID int64, config CycleConfig) (models.CycleProfile, error) {
	if err := ValidateCycleConfig(config, service.now(), service.location); err != nil {
		return models.CycleProfile{}, err
	}

	start := DateAtLocation(config.LastStart, service.location)
	return service.profiles.Update(chatID, func(profile *models.CycleProfile) error {
		profile.CycleLength = config.CycleLength
		profile.PeriodLength = config.PeriodLength
		profile.LastStart = &start
		return nil
	})
}

// ConfigureSign stores the star sign; an empty sign clears it (the wizard's
// skip button).
func (service *AssistantService) ConfigureSign(chatID int64, sign models.StarSign) (models.CycleProfile, error) {
	if sign != "" {
		if _, known := models.ParseStarSign(string(sign)); !known {
			return models.CycleProfile{}, ErrStarSignUnknown
		}
	}
	return service.profiles.Update(chatID, func(profile *models.CycleProfile) error {
		profile.StarSign = string(sign)
		return nil
	})
}

// ToggleDaily flips the reminder flag and reconciles the scheduler inside
// the chat's store lock, so the live trigger always matches the last
// persisted flag even under racing toggles. Returns the new enabled state.
func (service *AssistantService) ToggleDaily(chatID int64) (bool, error) {
	profile, err := service.profiles.UpdateThen(chatID,
		func(profile *models.CycleProfile) error {
			profile.DailyEnabled = !profile.DailyEnabled
			return nil
		},
		func(profile models.CycleProfile) {
			if profile.DailyEnabled {
				service.scheduler.Schedule(chatID)
			} else {
				service.scheduler.Cancel(chatID)
			}
		})
	if err != nil {
		return false, err
	}
	return profile.DailyEnabled, nil
}

// Overview returns the stored settings and estimates for the status screen.
// No external lookups.
func (service *AssistantService) Overview(chatID int64) (RenderContext, error) {
	profile, err := service.profiles.Get(chatID)
	if err != nil {
		return RenderContext{}, err
	}
	return service.buildContext(profile), nil
}

// Today builds the current-day view with weather context attached.
func (service *AssistantService) Today(ctx context.Context, chatID int64) (RenderContext, error) {
	profile, err := service.profiles.Get(chatID)
	if err != nil {
		return RenderContext{}, err
	}

	render := service.buildContext(profile)
	if render.DayKnown {
		service.attachExternalContext(ctx, &render)
	}
	return render, nil
}

// MoodReport applies one mood answer: updates the streak under the chat's
// lock, then assembles the full context for the response message.
func (service *AssistantService) MoodReport(ctx context.Context, chatID int64, mood models.Mood) (RenderContext, error) {
	today := DateAtLocation(service.now(), service.location)
	profile, err := service.profiles.Update(chatID, func(profile *models.CycleProfile) error {
		*profile = UpdateStreak(*profile, mood.IsBest(), today)
		return nil
	})
	if err != nil {
		return RenderContext{}, err
	}

	render := service.buildContext(profile)
	render.Mood = mood
	if render.DayKnown {
		service.attachExternalContext(ctx, &render)
	}
	return render, nil
}

// DailyFire is the scheduled 22:00 path. No external lookups: the reminder
// stays short and must go out even when the providers are down. It never
// fails on an unconfigured profile; the renderer turns the absent day into
// a corrective prompt.
func (service *AssistantService) DailyFire(chatID int64) (RenderContext, error) {
	profile, err := service.profiles.Get(chatID)
	if err != nil {
		return RenderContext{}, err
	}
	return service.buildContext(profile), nil
}

// RecoverSchedules restores triggers from the store at startup, before any
// polling begins.
func (service *AssistantService) RecoverSchedules() error {
	return service.scheduler.RecoverAll(service.profiles)
}

func (service *AssistantService) buildContext(profile models.CycleProfile) RenderContext {
	render := RenderContext{
		Profile: profile,
		Streak:  profile.MoodStreak,
	}

	today := DateAtLocation(service.now(), service.location)
	if day, known := ComputePhase(profile, today); known {
		render.Day = day
		render.DayKnown = true
	}
	if milestones, known := ComputeMilestones(profile); known {
		render.Milestones = milestones
		render.MilesKnown = true
	}
	return render
}

func (service *AssistantService) attachExternalContext(ctx context.Context, render *RenderContext) {
	if service.weather != nil {
		if kind, ok := service.weather.FetchCategory(ctx); ok {
			render.Weather = kind
			render.WeatherKnown = true
		}
	}

	if service.horoscope == nil {
		return
	}
	sign, hasSign := render.Profile.Sign()
	if !hasSign {
		return
	}
	if text, ok := service.horoscope.Fetch(ctx, sign); ok {
		render.Horoscope = text
		render.HoroscopeKnown = true
	}
}
