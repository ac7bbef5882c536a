package session

import "sync"

// Level of a notification, mirroring toast styles
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notification is a transient message for the user
type Notification struct {
	Level   Level  `json:"level"`
	Message string `json:"message"`
}

// Notifier receives notifications emitted by the controller
type Notifier interface {
	Notify(n Notification)
}

// Navigator receives navigation requests emitted by the controller
type Navigator interface {
	Navigate(path string)
}

// Outbox queues notifications and the last navigation request of a session
// until the next response drains them.
//
// The navigation slot belongs to the session, not to a request. When two
// requests of one session overlap, whichever renders first takes a pending
// navigation, and a later Navigate replaces an earlier one. Both
// navigations the controller emits (home after logout, login after a 401)
// follow a change of the user, and the route guard applies that change to
// every later request, so a lost navigation only delays the redirect to the
// next protected page.
type Outbox struct {
	mu            sync.Mutex
	notifications []Notification
	navigation    string
}

func (o *Outbox) Notify(n Notification) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.notifications = append(o.notifications, n)
}

// Navigate records path; a later request replaces an earlier one
func (o *Outbox) Navigate(path string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.navigation = path
}

// Notifications returns and clears the queued notifications. Never nil.
func (o *Outbox) Notifications() []Notification {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := o.notifications
	o.notifications = nil
	if out == nil {
		out = []Notification{}
	}
	return out
}

// TakeNavigation returns and clears the pending navigation. A request for
// current is dropped, since the browser is already there.
func (o *Outbox) TakeNavigation(current string) (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	path := o.navigation
	o.navigation = ""
	if path == "" || path == current {
		return "", false
	}
	return path, true
}

type discard struct{}

func (discard) Notify(Notification) {}
func (discard) Navigate(string)     {}
