package services

import (
	"log"
	"sync"
	"time"

	"github.com/frrrka/menstrualni-bot/internal/models"
)

// FireHandler runs once per calendar day for a scheduled chat. Errors are
// logged; they never remove the schedule.
type FireHandler func(chatID int64) error

// Scheduler owns the invariant "one recurring daily trigger per enabled
// chat". Each scheduled chat gets a goroutine that sleeps until the next
// wall-clock occurrence of the configured time in the configured zone and
// re-arms itself after every fire. Fires that would land while the process
// was down are skipped, never replayed.
type Scheduler struct {
	location *time.Location
	hour     int
	minute   int
	handler  FireHandler
	now      func() time.Time

	mu      sync.Mutex
	entries map[int64]chan struct{}
}

func NewScheduler(location *time.Location, hour int, minute int, handler FireHandler) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	return &Scheduler{
		location: location,
		hour:     hour,
		minute:   minute,
		handler:  handler,
		now:      time.Now,
		entries:  make(map[int64]chan struct{}),
	}
}

// Schedule installs the daily trigger for a chat. Re-registration is
// idempotent: any existing trigger for the chat is canceled first, so two
// calls in a row leave exactly one active trigger.
func (scheduler *Scheduler) Schedule(chatID int64) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if cancel, exists := scheduler.entries[chatID]; exists {
		close(cancel)
	}

	cancel := make(chan struct{})
	scheduler.entries[chatID] = cancel
	go scheduler.runLoop(chatID, cancel)
}

// Cancel guarantees no future fires for the chat. An in-flight handler
// invocation is allowed to finish.
func (scheduler *Scheduler) Cancel(chatID int64) {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	if cancel, exists := scheduler.entries[chatID]; exists {
		close(cancel)
		delete(scheduler.entries, chatID)
	}
}

func (scheduler *Scheduler) IsScheduled(chatID int64) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	_, exists := scheduler.entries[chatID]
	return exists
}

func (scheduler *Scheduler) ScheduledCount() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	return len(scheduler.entries)
}

// Stop cancels every trigger. Used at shutdown.
func (scheduler *Scheduler) Stop() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	for chatID, cancel := range scheduler.entries {
		close(cancel)
		delete(scheduler.entries, chatID)
	}
}

type ProfileIterator interface {
	ForEach(visit func(profile models.CycleProfile) error) error
}

// RecoverAll rebuilds the schedule from stored profiles at startup. Every
// profile with the daily reminder enabled gets exactly one trigger; nobody
// else gets any.
func (scheduler *Scheduler) RecoverAll(profiles ProfileIterator) error {
	recovered := 0
	err := profiles.ForEach(func(profile models.CycleProfile) error {
		if !profile.DailyEnabled {
			return nil
		}
		scheduler.Schedule(profile.ChatID)
		recovered++
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("scheduler: recovered %d daily trigger(s)", recovered)
	return nil
}

func (scheduler *Scheduler) runLoop(chatID int64, cancel chan struct{}) {
	for {
		now := scheduler.now()
		next := scheduler.nextFireTime(now)

		timer := time.NewTimer(next.Sub(now))
		select {
		case <-cancel:
			timer.Stop()
			return
		case <-timer.C:
			// Handler work runs off the timing loop so a slow send
			// for this chat cannot delay re-arming.
			go scheduler.fire(chatID)
		}
	}
}

func (scheduler *Scheduler) fire(chatID int64) {
	if err := scheduler.handler(chatID); err != nil {
		log.Printf("scheduler: fire for chat %d failed: %v", chatID, err)
	}
}

// nextFireTime returns the next occurrence of the configured wall-clock
// time strictly after now. Building the candidate with time.Date in the
// scheduler's zone keeps the fire at the same local time across DST shifts.
func (scheduler *Scheduler) nextFireTime(now time.Time) time.Time {
	localNow := now.In(scheduler.location)
	candidate := time.Date(
		localNow.Year(), localNow.Month(), localNow.Day(),
		scheduler.hour, scheduler.minute, 0, 0,
		scheduler.location,
	)
	if !candidate.After(localNow) {
		candidate = time.Date(
			localNow.Year(), localNow.Month(), localNow.Day()+1,
			scheduler.hour, scheduler.minute, 0, 0,
			scheduler.location,
		)
	}
	return candidate
}
