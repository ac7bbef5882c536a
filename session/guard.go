package session

import "nutrirec-web/models"

// Action tells a page what to do with a navigation
type Action int

const (
	ActionRender Action = iota
	// ActionWait means the session is still loading; no decision yet
	ActionWait
	ActionRedirect
)

func (a Action) String() string {
	switch a {
	case ActionWait:
		return "wait"
	case ActionRedirect:
		return "redirect"
	default:
		return "render"
	}
}

// Decision is the outcome of Guard
type Decision struct {
	Action   Action
	Location string
	Notice   *Notification
}

// Guard decides whether path may be shown. It has no side effects; use
// Enforce to also emit the notice.
func (c *Controller) Guard(path string) Decision {
	c.mu.RLock()
	loading := c.loading
	user := c.user
	c.mu.RUnlock()

	if loading {
		return Decision{Action: ActionWait}
	}

	switch c.table.Classify(path) {
	case ClassProtected:
		if user == nil {
			return Decision{Action: ActionRedirect, Location: LoginURL(path)}
		}
	case ClassAdmin:
		if user == nil || user.Role != models.RoleAdmin {
			return Decision{
				Action:   ActionRedirect,
				Location: HomePath,
				Notice:   &Notification{Level: LevelError, Message: msgAdminOnly},
			}
		}
	}

	if user != nil && IsAuthPage(path) {
		return Decision{Action: ActionRedirect, Location: HomePath}
	}
	return Decision{Action: ActionRender}
}

// Enforce runs Guard and sends its notice to the notifier
func (c *Controller) Enforce(path string) Decision {
	d := c.Guard(path)
	if d.Notice != nil {
		c.notifier.Notify(*d.Notice)
	}
	return d
}
