package notify

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"priorify/internal/domain"
	"priorify/internal/store"
)

// fakeTasks is a static task source
type fakeTasks struct {
	tasks []domain.Task
}

func (f *fakeTasks) List() []domain.Task {
	return f.tasks
}

// fakeSettings is a static settings source
type fakeSettings struct {
	settings domain.Settings
}

func (f *fakeSettings) Get(ctx context.Context) (domain.Settings, error) {
	return f.settings, nil
}

// recordingNotifier records delivered messages and reports a configurable
// permission state
type recordingNotifier struct {
	granted   bool
	delivered []string
}

func (n *recordingNotifier) RequestPermission() (bool, error) {
	return n.granted, nil
}

func (n *recordingNotifier) Deliver(message string) error {
	n.delivered = append(n.delivered, message)
	return nil
}

func fixedClock(day string) func() time.Time {
	parsed, _ := time.Parse(domain.DueDateLayout, day)
	return func() time.Time { return parsed }
}

func setupScheduler(t *testing.T, tasks []domain.Task, settings domain.Settings, day string) (*Scheduler, *recordingNotifier, *store.Store) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "priorify.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	notifier := &recordingNotifier{granted: true}
	scheduler := NewScheduler(&fakeTasks{tasks: tasks}, &fakeSettings{settings: settings}, st, notifier).
		WithClock(fixedClock(day))

	return scheduler, notifier, st
}

func loadMarker(t *testing.T, st *store.Store) (string, bool) {
	t.Helper()

	var marker string
	found, err := st.Load(context.Background(), store.KeyLastDueNotification, &marker)
	require.NoError(t, err)
	return marker, found
}

func TestScheduler_EmitsExactlyOneAlertPerDay(t *testing.T) {
	const today = "2024-06-01"
	tasks := []domain.Task{
		{ID: "a1", Title: "Buy milk", DueDate: today, Completed: false},
		{ID: "a2", Title: "Walk dog", DueDate: today, Completed: false},
	}
	scheduler, notifier, st := setupScheduler(t, tasks, domain.DefaultSettings(), today)
	ctx := context.Background()

	// First evaluation emits one alert and records the marker
	require.NoError(t, scheduler.Evaluate(ctx))
	require.Len(t, notifier.delivered, 1)
	assert.Equal(t, "You have 2 task(s) due today", notifier.delivered[0])

	marker, found := loadMarker(t, st)
	assert.True(t, found)
	assert.Equal(t, today, marker)

	// Re-evaluating the same day emits nothing, no matter how often
	require.NoError(t, scheduler.Evaluate(ctx))
	require.NoError(t, scheduler.Evaluate(ctx))
	assert.Len(t, notifier.delivered, 1)
}

func TestScheduler_Evaluate(t *testing.T) {
	const today = "2024-06-01"

	tests := []struct {
		name       string
		tasks      []domain.Task
		settings   domain.Settings
		wantAlert  bool
		wantMarker bool
	}{
		{
			name: "should alert for an uncompleted task due today",
			tasks: []domain.Task{
				{ID: "a1", Title: "Buy milk", DueDate: today},
			},
			settings:   domain.DefaultSettings(),
			wantAlert:  true,
			wantMarker: true,
		},
		{
			name: "should not alert when notifications are disabled",
			tasks: []domain.Task{
				{ID: "a1", Title: "Buy milk", DueDate: today},
			},
			settings:   domain.Settings{Theme: domain.ThemeLight, NotificationsEnabled: false},
			wantAlert:  false,
			wantMarker: false,
		},
		{
			name: "should not alert when the due task is completed",
			tasks: []domain.Task{
				{ID: "a1", Title: "Buy milk", DueDate: today, Completed: true},
			},
			settings:   domain.DefaultSettings(),
			wantAlert:  false,
			wantMarker: false,
		},
		{
			name: "should not alert when nothing is due today",
			tasks: []domain.Task{
				{ID: "a1", Title: "Buy milk", DueDate: "2024-06-02"},
				{ID: "a2", Title: "Walk dog"},
			},
			settings:   domain.DefaultSettings(),
			wantAlert:  false,
			wantMarker: false,
		},
		{
			name:       "should not alert on an empty collection",
			tasks:      nil,
			settings:   domain.DefaultSettings(),
			wantAlert:  false,
			wantMarker: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			scheduler, notifier, st := setupScheduler(t, tt.tasks, tt.settings, today)

			// Act
			err := scheduler.Evaluate(context.Background())

			// Assert
			require.NoError(t, err)
			if tt.wantAlert {
				assert.Len(t, notifier.delivered, 1)
			} else {
				assert.Empty(t, notifier.delivered)
			}
			_, found := loadMarker(t, st)
			assert.Equal(t, tt.wantMarker, found)
		})
	}
}

func TestScheduler_PermissionDeniedStillRecordsMarker(t *testing.T) {
	const today = "2024-06-01"
	tasks := []domain.Task{{ID: "a1", Title: "Buy milk", DueDate: today}}
	scheduler, notifier, st := setupScheduler(t, tasks, domain.DefaultSettings(), today)
	notifier.granted = false
	ctx := context.Background()

	// No crash, no delivery, but bookkeeping proceeds: no retry today
	require.NoError(t, scheduler.Evaluate(ctx))
	assert.Empty(t, notifier.delivered)

	marker, found := loadMarker(t, st)
	assert.True(t, found)
	assert.Equal(t, today, marker)
}

func TestScheduler_AlertsAgainOnTheNextDay(t *testing.T) {
	tasks := []domain.Task{{ID: "a1", Title: "Buy milk", DueDate: "2024-06-02"}}
	scheduler, notifier, st := setupScheduler(t, tasks, domain.DefaultSettings(), "2024-06-01")
	ctx := context.Background()

	// Due tomorrow: nothing today
	require.NoError(t, scheduler.Evaluate(ctx))
	assert.Empty(t, notifier.delivered)

	// The next day it is due
	scheduler.WithClock(fixedClock("2024-06-02"))
	require.NoError(t, scheduler.Evaluate(ctx))
	require.Len(t, notifier.delivered, 1)

	marker, _ := loadMarker(t, st)
	assert.Equal(t, "2024-06-02", marker)
}

func TestScheduler_NotifyIsGatedBySettings(t *testing.T) {
	scheduler, notifier, _ := setupScheduler(t, nil, domain.DefaultSettings(), "2024-06-01")
	ctx := context.Background()

	require.NoError(t, scheduler.Notify(ctx, "Task added successfully"))
	require.Len(t, notifier.delivered, 1)
	assert.Equal(t, "Task added successfully", notifier.delivered[0])

	disabled, silenced, _ := setupScheduler(t, nil, domain.Settings{NotificationsEnabled: false}, "2024-06-01")
	require.NoError(t, disabled.Notify(ctx, "Task added successfully"))
	assert.Empty(t, silenced.delivered)
}
