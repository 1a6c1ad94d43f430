package notify

import (
	"context"
	"fmt"
	"time"

	"priorify/internal/domain"
	"priorify/internal/logging"
	"priorify/internal/store"
)

// TaskSource provides read access to the task collection.
type TaskSource interface {
	List() []domain.Task
}

// SettingsSource provides read access to the current settings.
type SettingsSource interface {
	Get(ctx context.Context) (domain.Settings, error)
}

// Scheduler derives due-today alerts from the task collection, gated by
// the notifications-enabled setting and a persisted last-notified-date
// marker. The marker guarantees at most one alert per calendar day no
// matter how many mutations occur that day. The scheduler owns only the
// marker.
type Scheduler struct {
	tasks    TaskSource
	settings SettingsSource
	store    *store.Store
	notifier Notifier
	now      func() time.Time
}

// NewScheduler creates a scheduler with the given collaborators.
func NewScheduler(tasks TaskSource, settings SettingsSource, st *store.Store, notifier Notifier) *Scheduler {
	return &Scheduler{
		tasks:    tasks,
		settings: settings,
		store:    st,
		notifier: notifier,
		now:      time.Now,
	}
}

// WithClock replaces the scheduler's clock. Used by tests to pin the day.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// Evaluate re-derives the due-today alert state. It is idempotent within
// a calendar day: once the marker records today, every further call is a
// no-op. Permission denial or delivery failure still records the marker,
// so delivery is not retried within the same day.
func (s *Scheduler) Evaluate(ctx context.Context) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.NotificationsEnabled {
		return nil
	}

	today := s.now().Format(domain.DueDateLayout)

	var lastNotified string
	loaded, err := s.store.Load(ctx, store.KeyLastDueNotification, &lastNotified)
	if err != nil {
		return err
	}
	if loaded && lastNotified == today {
		return nil
	}

	dueToday := 0
	for _, task := range s.tasks.List() {
		if task.IsDueOn(today) {
			dueToday++
		}
	}
	if dueToday == 0 {
		return nil
	}

	s.deliver(fmt.Sprintf("You have %d task(s) due today", dueToday))

	return s.store.Save(ctx, store.KeyLastDueNotification, today)
}

// Notify delivers a one-off message through the alert surface, gated by
// the notifications-enabled setting. Used for mutation feedback.
func (s *Scheduler) Notify(ctx context.Context, message string) error {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return err
	}
	if !settings.NotificationsEnabled {
		return nil
	}

	s.deliver(message)
	return nil
}

// deliver pushes a message through the notifier. A missing permission or
// a delivery failure is a quiet no-op; alerting is best effort.
func (s *Scheduler) deliver(message string) {
	granted, err := s.notifier.RequestPermission()
	if err != nil {
		logging.Debugf("notify: permission request failed: %v\n", err)
		return
	}
	if !granted {
		logging.Debugln("notify: permission not granted, dropping alert")
		return
	}
	if err := s.notifier.Deliver(message); err != nil {
		logging.Debugf("notify: delivery failed: %v\n", err)
	}
}
