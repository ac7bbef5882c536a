package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"nutrirec-web/apiclient"
	"nutrirec-web/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokens struct {
	mu    sync.Mutex
	token string
}

func (m *memTokens) Token(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *memTokens) SetToken(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *memTokens) ClearToken(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

func (m *memTokens) get() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var ann = map[string]any{"user_id": 7, "nama": "Ann", "email": "a@x.com", "role": "user"}

var annComplete = map[string]any{
	"user_id": 7, "nama": "Ann", "email": "a@x.com", "role": "user",
	"umur": 30, "jenis_kelamin": "P", "tinggi_badan": 165, "berat_badan": 58,
}

// harness wires a controller to a stub API the same way the registry does
type harness struct {
	ctl    *Controller
	tokens *memTokens
	outbox *Outbox
}

func newHarness(t *testing.T, token string, h http.HandlerFunc) *harness {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	hs := &harness{tokens: &memTokens{token: token}, outbox: &Outbox{}}
	api := apiclient.New(apiclient.Config{BaseURL: srv.URL}).Bind(hs.tokens, func(ctx context.Context) {
		hs.ctl.HandleUnauthorized(ctx)
	})
	hs.ctl = New(api, WithNotifier(hs.outbox), WithNavigator(hs.outbox))
	return hs
}

func assertConsistent(t *testing.T, c *Controller) {
	t.Helper()
	assert.Equal(t, c.User() != nil, c.IsAuthenticated())
}

func TestInitialize_NoToken(t *testing.T) {
	var calls atomic.Int32
	hs := newHarness(t, "", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{"user": ann})
	})

	assert.True(t, hs.ctl.Loading())
	hs.ctl.Initialize(context.Background())

	assert.False(t, hs.ctl.Loading())
	assert.False(t, hs.ctl.IsAuthenticated())
	assert.Zero(t, calls.Load())
	assertConsistent(t, hs.ctl)
}

func TestInitialize_RestoresUser(t *testing.T) {
	hs := newHarness(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/profile", r.URL.Path)
		assert.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"user": annComplete})
	})

	hs.ctl.Initialize(context.Background())

	require.True(t, hs.ctl.IsAuthenticated())
	assert.Equal(t, "Ann", hs.ctl.User().Name)
	assert.True(t, hs.ctl.HasCompletedProfile())
	assert.False(t, hs.ctl.Loading())
	assert.Equal(t, "t1", hs.tokens.get())
}

func TestInitialize_ExpiredToken(t *testing.T) {
	hs := newHarness(t, "expired", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Token expired"})
	})

	hs.ctl.Initialize(context.Background())

	assert.Nil(t, hs.ctl.User())
	assert.Empty(t, hs.tokens.get())
	assert.False(t, hs.ctl.Loading())
	assertConsistent(t, hs.ctl)

	loc, ok := hs.outbox.TakeNavigation("/foods")
	assert.True(t, ok)
	assert.Equal(t, LoginPath, loc)
}

func TestInitialize_ServerErrorClearsToken(t *testing.T) {
	hs := newHarness(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "db down"})
	})

	hs.ctl.Initialize(context.Background())

	assert.Nil(t, hs.ctl.User())
	assert.Empty(t, hs.tokens.get())
	assert.False(t, hs.ctl.Loading())
}

func TestInitialize_RunsOnce(t *testing.T) {
	var calls atomic.Int32
	hs := newHarness(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		writeJSON(w, http.StatusOK, map[string]any{"user": ann})
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hs.ctl.Initialize(context.Background())
			// every caller sees the finished state
			assert.False(t, hs.ctl.Loading())
			assert.True(t, hs.ctl.IsAuthenticated())
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
}

func TestInitialize_IgnoresCallerCancellation(t *testing.T) {
	hs := newHarness(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user": ann})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	hs.ctl.Initialize(ctx)

	assert.True(t, hs.ctl.IsAuthenticated())
	assert.Equal(t, "t1", hs.tokens.get())
}

func TestLogin_Success(t *testing.T) {
	hs := newHarness(t, "", func(w http.ResponseWriter, r *http.Request) {
		var body models.LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@x.com", body.Email)
		assert.Equal(t, "secret", body.Password)
		writeJSON(w, http.StatusOK, map[string]any{"message": "ok", "token": "t1", "user": ann})
	})
	hs.ctl.Initialize(context.Background())

	ok := hs.ctl.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "secret"})

	require.True(t, ok)
	assert.Equal(t, "Ann", hs.ctl.User().Name)
	assert.Equal(t, "t1", hs.tokens.get())
	assertConsistent(t, hs.ctl)
	assert.Equal(t, []Notification{
		{Level: LevelSuccess, Message: "Selamat datang, Ann!"},
		{Level: LevelInfo, Message: "Lengkapi profil Anda untuk rekomendasi yang lebih akurat"},
	}, hs.outbox.Notifications())
}

func TestLogin_CompleteProfileSkipsReminder(t *testing.T) {
	hs := newHarness(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"token": "t1", "user": annComplete})
	})

	require.True(t, hs.ctl.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "secret"}))
	assert.Len(t, hs.outbox.Notifications(), 1)
}

func TestInitialize_UnknownDietGoalKeepsSession(t *testing.T) {
	user := map[string]any{"user_id": 7, "nama": "Ann", "email": "a@x.com", "role": "user", "diet_goal": "gain"}
	hs := newHarness(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user": user})
	})

	hs.ctl.Initialize(context.Background())

	require.True(t, hs.ctl.IsAuthenticated())
	assert.Equal(t, models.DietGoal("gain"), hs.ctl.User().DietGoal)
	assert.Equal(t, "t1", hs.tokens.get())
}

func TestLogin_UnknownDietGoalStillSucceeds(t *testing.T) {
	user := map[string]any{"user_id": 7, "nama": "Ann", "email": "a@x.com", "role": "user", "diet_goal": "gain"}
	hs := newHarness(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"token": "t9", "user": user})
	})
	hs.ctl.Initialize(context.Background())

	ok := hs.ctl.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "secret"})

	require.True(t, ok)
	assert.Equal(t, "t9", hs.tokens.get())
	assert.Equal(t, LevelSuccess, hs.outbox.Notifications()[0].Level)
}

// refusingTokens fails every write, like a store handed an expired token
type refusingTokens struct{ memTokens }

func (*refusingTokens) SetToken(context.Context, string) error {
	return errors.New("token is already expired")
}

func TestLogin_FailsWhenTokenCannotBeStored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"token": "old", "user": annComplete})
	}))
	t.Cleanup(srv.Close)
	outbox := &Outbox{}
	ctl := New(apiclient.New(apiclient.Config{BaseURL: srv.URL}).Bind(&refusingTokens{}, nil), WithNotifier(outbox))

	ok := ctl.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "secret"})

	assert.False(t, ok)
	assert.False(t, ctl.IsAuthenticated())
	assert.Equal(t, []Notification{{Level: LevelError, Message: apiclient.DefaultErrorMessage}}, outbox.Notifications())
}

func TestLogin_Failure(t *testing.T) {
	hs := newHarness(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Email atau password salah"})
	})
	hs.ctl.Initialize(context.Background())

	ok := hs.ctl.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "wrong"})

	assert.False(t, ok)
	assert.Nil(t, hs.ctl.User())
	assert.Empty(t, hs.tokens.get())
	assert.Equal(t, []Notification{{Level: LevelError, Message: "Email atau password salah"}}, hs.outbox.Notifications())
	// already on the login page, so the 401 redirect is a no-op
	_, moved := hs.outbox.TakeNavigation(LoginPath)
	assert.False(t, moved)
}

func TestLogin_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	outbox := &Outbox{}
	ctl := New(apiclient.New(apiclient.Config{BaseURL: base}).Bind(&memTokens{}, nil), WithNotifier(outbox))

	assert.False(t, ctl.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "secret"}))
	assert.Equal(t, []Notification{{Level: LevelError, Message: apiclient.DefaultErrorMessage}}, outbox.Notifications())
}

func TestRegister(t *testing.T) {
	var calls atomic.Int32
	hs := newHarness(t, "", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/auth/register", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.NotContains(t, body, "confirmPassword")
		assert.Equal(t, "Ann", body["nama"])
		writeJSON(w, http.StatusCreated, map[string]any{"token": "t9", "user": ann})
	})

	mismatch := models.RegisterForm{Name: "Ann", Email: "a@x.com", Password: "secret", ConfirmPassword: "other"}
	assert.False(t, hs.ctl.Register(context.Background(), mismatch))
	assert.Equal(t, []Notification{{Level: LevelError, Message: "Password tidak cocok"}}, hs.outbox.Notifications())

	missing := models.RegisterForm{Email: "a@x.com", Password: "secret", ConfirmPassword: "secret"}
	assert.False(t, hs.ctl.Register(context.Background(), missing))
	assert.Zero(t, calls.Load())
	hs.outbox.Notifications()

	form := models.RegisterForm{Name: "Ann", Email: "a@x.com", Password: "secret", ConfirmPassword: "secret"}
	require.True(t, hs.ctl.Register(context.Background(), form))
	assert.EqualValues(t, 1, calls.Load())
	assert.Equal(t, "t9", hs.tokens.get())
	assert.Equal(t, 7, hs.ctl.User().ID)
	assert.Equal(t, []Notification{
		{Level: LevelSuccess, Message: "Registrasi berhasil! Selamat datang, Ann!"},
		{Level: LevelInfo, Message: "Lengkapi profil Anda di halaman profil untuk rekomendasi yang lebih akurat"},
	}, hs.outbox.Notifications())
}

func TestRegister_APIError(t *testing.T) {
	hs := newHarness(t, "", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Email sudah terdaftar"})
	})

	form := models.RegisterForm{Name: "Ann", Email: "a@x.com", Password: "secret", ConfirmPassword: "secret"}
	assert.False(t, hs.ctl.Register(context.Background(), form))
	assert.Nil(t, hs.ctl.User())
	assert.Equal(t, []Notification{{Level: LevelError, Message: "Email sudah terdaftar"}}, hs.outbox.Notifications())
}

func TestLogout(t *testing.T) {
	hs := newHarness(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user": ann})
	})
	hs.ctl.Initialize(context.Background())
	require.True(t, hs.ctl.IsAuthenticated())

	hs.ctl.Logout(context.Background())

	assert.Nil(t, hs.ctl.User())
	assertConsistent(t, hs.ctl)
	assert.Empty(t, hs.tokens.get())
	assert.Equal(t, []Notification{{Level: LevelSuccess, Message: "Anda telah logout"}}, hs.outbox.Notifications())
	loc, ok := hs.outbox.TakeNavigation("/profile")
	assert.True(t, ok)
	assert.Equal(t, HomePath, loc)
}

func TestRefreshUser(t *testing.T) {
	var fail atomic.Bool
	hs := newHarness(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "boom"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": annComplete})
	})
	hs.ctl.Initialize(context.Background())

	hs.ctl.RefreshUser(context.Background())
	assert.True(t, hs.ctl.HasCompletedProfile())

	fail.Store(true)
	hs.ctl.RefreshUser(context.Background())
	assert.Nil(t, hs.ctl.User())
	assert.Empty(t, hs.tokens.get())
	loc, ok := hs.outbox.TakeNavigation("/profile")
	assert.True(t, ok)
	assert.Equal(t, HomePath, loc)
}

func TestGuard(t *testing.T) {
	admin := map[string]any{"user_id": 1, "nama": "Root", "role": "admin"}
	tests := []struct {
		name     string
		user     map[string]any
		path     string
		action   Action
		location string
		notice   bool
	}{
		{"public anonymous", nil, "/foods", ActionRender, "", false},
		{"protected anonymous", nil, "/profile", ActionRedirect, "/login?redirect=%2Fprofile", false},
		{"protected nested", nil, "/mealplanning/2026-10-15", ActionRedirect, "/login?redirect=%2Fmealplanning%2F2026-10-15", false},
		{"protected signed in", ann, "/favorites", ActionRender, "", false},
		{"admin anonymous", nil, "/admin", ActionRedirect, "/", true},
		{"admin as user", ann, "/admin/stats", ActionRedirect, "/", true},
		{"admin as admin", admin, "/admin", ActionRender, "", false},
		{"login signed in", ann, "/login", ActionRedirect, "/", false},
		{"register signed in", ann, "/register", ActionRedirect, "/", false},
		{"login anonymous", nil, "/login", ActionRender, "", false},
		{"login prefix is not the login page", ann, "/login-help", ActionRender, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := ""
			if tt.user != nil {
				token = "t1"
			}
			hs := newHarness(t, token, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, map[string]any{"user": tt.user})
			})
			hs.ctl.Initialize(context.Background())

			d := hs.ctl.Enforce(tt.path)

			assert.Equal(t, tt.action, d.Action)
			assert.Equal(t, tt.location, d.Location)
			if tt.notice {
				require.NotNil(t, d.Notice)
				assert.Equal(t, []Notification{{Level: LevelError, Message: "Akses ditolak. Anda tidak memiliki izin admin."}}, hs.outbox.Notifications())
			} else {
				assert.Nil(t, d.Notice)
				assert.Empty(t, hs.outbox.Notifications())
			}
		})
	}
}

func TestGuard_WaitsWhileLoading(t *testing.T) {
	ctl := New(apiclient.New(apiclient.Config{}).Bind(&memTokens{}, nil))
	for _, path := range []string{"/", "/profile", "/admin", "/login"} {
		assert.Equal(t, Decision{Action: ActionWait}, ctl.Guard(path))
	}
}

func TestTable_Classify(t *testing.T) {
	table := DefaultTable()
	assert.Equal(t, ClassProtected, table.Classify("/recommendations"))
	assert.Equal(t, ClassProtected, table.Classify("/meal-planning/week"))
	assert.Equal(t, ClassAdmin, table.Classify("/admin"))
	assert.Equal(t, ClassPublic, table.Classify("/"))
	assert.Equal(t, ClassPublic, table.Classify("/foods/12"))

	overlapping := Table{Protected: []string{"/admin/reports"}, Admin: []string{"/admin"}}
	assert.Equal(t, ClassProtected, overlapping.Classify("/admin/reports/daily"))
	assert.Equal(t, ClassAdmin, overlapping.Classify("/admin/users"))
}

func TestLoginRedirectTarget(t *testing.T) {
	tests := map[string]string{
		"":                        "/",
		"/profile":                "/profile",
		"/foods?page=2":           "/foods?page=2",
		"https://evil.example":    "/",
		"//evil.example/profile":  "/",
		"/\\evil.example":         "/",
		"javascript:alert(1)":     "/",
		"profile":                 "/",
		"/login":                  "/",
		"/register?redirect=/foo": "/",
	}
	for in, want := range tests {
		assert.Equal(t, want, LoginRedirectTarget(in), in)
	}
}

func TestPermissions(t *testing.T) {
	hs := newHarness(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user": ann})
	})
	anonymous := New(apiclient.New(apiclient.Config{}).Bind(&memTokens{}, nil))

	assert.Equal(t, "User", anonymous.DisplayName())
	assert.False(t, anonymous.CanAccess(""))
	assert.False(t, anonymous.CanEdit(7))
	assert.False(t, anonymous.HasAnyRole("user", "admin"))

	hs.ctl.Initialize(context.Background())
	c := hs.ctl
	assert.Equal(t, "Ann", c.DisplayName())
	assert.True(t, c.CanAccess(""))
	assert.True(t, c.CanAccess("user"))
	assert.False(t, c.CanAccess("admin"))
	assert.False(t, c.IsAdmin())
	assert.True(t, c.CanEdit(7))
	assert.True(t, c.CanDelete(7))
	assert.False(t, c.CanEdit(8))
	assert.False(t, c.CanEdit(0))
	assert.True(t, c.HasRole("user"))
	assert.True(t, c.HasAnyRole("admin", "user"))
	assert.False(t, c.HasAnyRole())
}

func TestAdminCanDoEverything(t *testing.T) {
	hs := newHarness(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user": map[string]any{"user_id": 1, "role": "admin"}})
	})
	hs.ctl.Initialize(context.Background())

	assert.True(t, hs.ctl.IsAdmin())
	assert.True(t, hs.ctl.CanAccess("nutritionist"))
	assert.True(t, hs.ctl.CanEdit(99))
	assert.Equal(t, "User", hs.ctl.DisplayName())
}

func TestUserIsACopy(t *testing.T) {
	hs := newHarness(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"user": ann})
	})
	hs.ctl.Initialize(context.Background())

	u := hs.ctl.User()
	u.Role = "admin"
	assert.False(t, hs.ctl.IsAdmin())
}

func TestOutbox(t *testing.T) {
	o := &Outbox{}
	assert.Equal(t, []Notification{}, o.Notifications())

	o.Notify(Notification{Level: LevelInfo, Message: "a"})
	o.Notify(Notification{Level: LevelError, Message: "b"})
	assert.Len(t, o.Notifications(), 2)
	assert.Empty(t, o.Notifications())

	o.Navigate("/login")
	o.Navigate("/")
	loc, ok := o.TakeNavigation("/profile")
	assert.True(t, ok)
	assert.Equal(t, "/", loc)
	_, ok = o.TakeNavigation("/profile")
	assert.False(t, ok)
}

func TestOutbox_NavigationTakenOnceAcrossRequests(t *testing.T) {
	hs := newHarness(t, "t1", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/profile" {
			writeJSON(w, http.StatusOK, map[string]any{"user": ann})
			return
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Token expired"})
	})
	hs.ctl.Initialize(context.Background())
	require.True(t, hs.ctl.IsAuthenticated())

	_, err := hs.ctl.API().Recommendations.MethodInfo(context.Background())
	require.Error(t, err)

	// a concurrent request renders first and takes the redirect
	loc, ok := hs.outbox.TakeNavigation("/foods")
	require.True(t, ok)
	assert.Equal(t, LoginPath, loc)

	// the request that hit the 401 finds nothing to follow, but the guard
	// still sends it to the login page
	_, ok = hs.outbox.TakeNavigation("/profile")
	assert.False(t, ok)
	d := hs.ctl.Guard("/profile")
	assert.Equal(t, ActionRedirect, d.Action)
	assert.Equal(t, LoginURL("/profile"), d.Location)
}

func TestRegistry(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if int(status.Load()) != http.StatusOK {
			writeJSON(w, int(status.Load()), map[string]string{"error": "Token expired"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"user": ann})
	}))
	t.Cleanup(srv.Close)

	stores := map[string]*memTokens{"a": {token: "ta"}, "b": {}}
	reg := NewRegistry(apiclient.New(apiclient.Config{BaseURL: srv.URL}), func(id string) apiclient.TokenStore {
		return stores[id]
	}, RegistryConfig{IdleTTL: time.Minute})
	now := time.Unix(1_700_000_000, 0)
	reg.now = func() time.Time { return now }

	a := reg.Get("a")
	assert.Same(t, a, reg.Get("a"))
	b := reg.Get("b")
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, reg.Len())

	a.Controller.Initialize(context.Background())
	b.Controller.Initialize(context.Background())
	assert.True(t, a.Controller.IsAuthenticated())
	assert.False(t, b.Controller.IsAuthenticated())

	// a 401 on any call signs the session out and asks for the login page
	status.Store(http.StatusUnauthorized)
	_, err := a.Controller.API().Foods.MyRatings(context.Background())
	require.Error(t, err)
	assert.False(t, a.Controller.IsAuthenticated())
	assert.Empty(t, stores["a"].get())
	loc, ok := a.Outbox.TakeNavigation("/favorites")
	assert.True(t, ok)
	assert.Equal(t, LoginPath, loc)

	now = now.Add(30 * time.Second)
	reg.Get("b")
	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, reg.Sweep())
	assert.Equal(t, 1, reg.Len())
	assert.NotSame(t, a, reg.Get("a"))

	reg.Forget("b")
	assert.Equal(t, 1, reg.Len())
}
