// Package session owns "who is logged in" for one browser session and
// decides where a navigation may go.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"nutrirec-web/apiclient"
	"nutrirec-web/models"

	"go.uber.org/zap"
)

const (
	msgWelcome         = "Selamat datang, %s!"
	msgRegistered      = "Registrasi berhasil! Selamat datang, %s!"
	msgCompleteProfile = "Lengkapi profil Anda untuk rekomendasi yang lebih akurat"
	msgRegisterProfile = "Lengkapi profil Anda di halaman profil untuk rekomendasi yang lebih akurat"
	msgLoggedOut       = "Anda telah logout"
	msgAdminOnly       = "Akses ditolak. Anda tidak memiliki izin admin."
	msgPasswordMatch   = "Password tidak cocok"
	msgRequiredFields  = "Nama, email, dan password wajib diisi"

	defaultDisplayName = "User"
)

var (
	ErrPasswordMismatch = errors.New(msgPasswordMatch)
	ErrMissingFields    = errors.New(msgRequiredFields)
)

// Option customizes a Controller
type Option func(*Controller)

// WithTable replaces DefaultTable
func WithTable(t Table) Option {
	return func(c *Controller) { c.table = t }
}

// WithNotifier sets where notifications go
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithNavigator sets where navigation requests go
func WithNavigator(n Navigator) Option {
	return func(c *Controller) { c.navigator = n }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller holds the current user of a session. State only changes
// through its methods; readers get copies.
type Controller struct {
	api       *apiclient.Client
	table     Table
	notifier  Notifier
	navigator Navigator
	logger    *zap.Logger

	initOnce sync.Once
	mu       sync.RWMutex
	user     *models.User
	loading  bool
}

// New returns a controller in the loading state. api must already be bound
// to the session's token store.
func New(api *apiclient.Client, opts ...Option) *Controller {
	c := &Controller{
		api:       api,
		table:     DefaultTable(),
		notifier:  discard{},
		navigator: discard{},
		logger:    zap.NewNop(),
		loading:   true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Initialize restores the user from a stored token. It runs once per
// controller; concurrent callers wait for the first run to finish.
func (c *Controller) Initialize(ctx context.Context) {
	c.initOnce.Do(func() {
		// a browser aborting the first request must not log the user out
		c.initialize(context.WithoutCancel(ctx))
	})
}

func (c *Controller) initialize(ctx context.Context) {
	defer func() {
		c.mu.Lock()
		c.loading = false
		c.mu.Unlock()
	}()

	if !c.api.Auth.HasToken(ctx) {
		return
	}
	user, err := c.api.Auth.Profile(ctx)
	if err != nil {
		c.logger.Info("Stored token rejected, clearing it", zap.Error(err))
		if clearErr := c.api.Auth.Logout(ctx); clearErr != nil {
			c.logger.Error("Clearing token failed", zap.Error(clearErr))
		}
		c.setUser(nil)
		return
	}
	c.setUser(user)
}

// Login signs in with creds. Failures are reported as a notification.
func (c *Controller) Login(ctx context.Context, creds models.LoginRequest) bool {
	resp, err := c.api.Auth.Login(ctx, creds)
	if err != nil {
		c.logger.Info("Login failed", zap.String("email", creds.Email), zap.Error(err))
		c.notify(LevelError, apiclient.ErrorMessage(err))
		return false
	}

	user := resp.User
	c.setUser(&user)
	c.notify(LevelSuccess, fmt.Sprintf(msgWelcome, user.Name))
	if !user.ProfileComplete() {
		c.notify(LevelInfo, msgCompleteProfile)
	}
	return true
}

// ValidateRegisterForm checks what the register page requires before submitting
func ValidateRegisterForm(form models.RegisterForm) error {
	if strings.TrimSpace(form.Name) == "" || strings.TrimSpace(form.Email) == "" || form.Password == "" {
		return ErrMissingFields
	}
	if form.Password != form.ConfirmPassword {
		return ErrPasswordMismatch
	}
	return nil
}

// Register creates an account and signs in. The password confirmation is
// checked here and never sent to the API.
func (c *Controller) Register(ctx context.Context, form models.RegisterForm) bool {
	if err := ValidateRegisterForm(form); err != nil {
		c.notify(LevelError, err.Error())
		return false
	}

	resp, err := c.api.Auth.Register(ctx, form.Request())
	if err != nil {
		c.logger.Info("Registration failed", zap.String("email", form.Email), zap.Error(err))
		c.notify(LevelError, apiclient.ErrorMessage(err))
		return false
	}

	user := resp.User
	c.setUser(&user)
	c.notify(LevelSuccess, fmt.Sprintf(msgRegistered, user.Name))
	if user.Age == 0 || user.Height == 0 || user.Weight == 0 {
		c.notify(LevelInfo, msgRegisterProfile)
	}
	return true
}

// Logout forgets the user and the token, then heads home
func (c *Controller) Logout(ctx context.Context) {
	c.setUser(nil)
	if err := c.api.Auth.Logout(ctx); err != nil {
		c.logger.Error("Clearing token failed", zap.Error(err))
	}
	c.notify(LevelSuccess, msgLoggedOut)
	c.navigator.Navigate(HomePath)
}

// RefreshUser re-fetches the profile. A failure means the session is no
// longer valid and ends in Logout.
func (c *Controller) RefreshUser(ctx context.Context) {
	user, err := c.api.Auth.Profile(ctx)
	if err != nil {
		c.logger.Info("Refreshing user failed, logging out", zap.Error(err))
		c.Logout(ctx)
		return
	}
	c.setUser(user)
}

// HandleUnauthorized is the 401 hook of the session's API client: the token
// is already gone, so drop the user and go to the login page.
func (c *Controller) HandleUnauthorized(context.Context) {
	c.setUser(nil)
	c.navigator.Navigate(LoginPath)
}

func (c *Controller) setUser(u *models.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = u
}

func (c *Controller) notify(level Level, msg string) {
	c.notifier.Notify(Notification{Level: level, Message: msg})
}

// User returns a copy of the current user, or nil
func (c *Controller) User() *models.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

// Loading is true until Initialize has finished
func (c *Controller) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *Controller) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user != nil
}

func (c *Controller) IsAdmin() bool {
	return c.HasRole(models.RoleAdmin)
}

// HasCompletedProfile reports whether name, age, sex, height and weight are set
func (c *Controller) HasCompletedProfile() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user.ProfileComplete()
}

// CanAccess reports whether the user holds role. Admins can access
// everything; an empty role only needs a login.
func (c *Controller) CanAccess(role string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return false
	}
	if role == "" {
		return true
	}
	return c.user.Role == role || c.user.Role == models.RoleAdmin
}

// CanEdit reports whether the user may change a resource owned by ownerID
func (c *Controller) CanEdit(ownerID int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil {
		return false
	}
	if c.user.Role == models.RoleAdmin {
		return true
	}
	return ownerID != 0 && c.user.ID == ownerID
}

// CanDelete follows the same rule as CanEdit
func (c *Controller) CanDelete(ownerID int) bool {
	return c.CanEdit(ownerID)
}

func (c *Controller) HasRole(role string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user != nil && c.user.Role == role
}

func (c *Controller) HasAnyRole(roles ...string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil || c.user.Role == "" {
		return false
	}
	for _, role := range roles {
		if c.user.Role == role {
			return true
		}
	}
	return false
}

// DisplayName is the user's name, or "User"
func (c *Controller) DisplayName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.user == nil || c.user.Name == "" {
		return defaultDisplayName
	}
	return c.user.Name
}

// API returns the session's API client
func (c *Controller) API() *apiclient.Client { return c.api }
