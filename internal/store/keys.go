package store

// Keys owned by this system in the underlying store. Values are JSON.
const (
	// KeyTasks holds the ordered array of task objects.
	KeyTasks = "tasks"
	// KeyTheme holds "light" or "dark".
	KeyTheme = "theme"
	// KeyNotificationsEnabled holds a boolean.
	KeyNotificationsEnabled = "notificationsEnabled"
	// KeyLastDueNotification holds the date of the last due-today alert.
	KeyLastDueNotification = "lastDueNotification"
)

// OwnedKeys lists every key this system writes, in the order they are
// cleared by a full reset.
func OwnedKeys() []string {
	return []string{KeyTasks, KeyTheme, KeyNotificationsEnabled, KeyLastDueNotification}
}
