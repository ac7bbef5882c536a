package session

import (
	"net/url"
	"strings"
)

const (
	HomePath     = "/"
	LoginPath    = "/login"
	RegisterPath = "/register"
)

// Class is the protection class of a path
type Class int

const (
	ClassPublic Class = iota
	ClassProtected
	ClassAdmin
)

func (c Class) String() string {
	switch c {
	case ClassProtected:
		return "protected"
	case ClassAdmin:
		return "admin"
	default:
		return "public"
	}
}

// Table maps path prefixes to protection classes
type Table struct {
	Protected []string
	Admin     []string
}

// DefaultTable is the route table of the web app. Both spellings of the
// meal planning page are covered.
func DefaultTable() Table {
	return Table{
		Protected: []string{"/recommendations", "/profile", "/meal-planning", "/mealplanning", "/favorites"},
		Admin:     []string{"/admin"},
	}
}

// Classify checks protected prefixes first, then admin; first match wins
func (t Table) Classify(path string) Class {
	for _, prefix := range t.Protected {
		if strings.HasPrefix(path, prefix) {
			return ClassProtected
		}
	}
	for _, prefix := range t.Admin {
		if strings.HasPrefix(path, prefix) {
			return ClassAdmin
		}
	}
	return ClassPublic
}

// IsAuthPage reports whether path is the login or register page
func IsAuthPage(path string) bool {
	return path == LoginPath || path == RegisterPath
}

// LoginURL is the login page that returns to path after a successful login
func LoginURL(path string) string {
	return LoginPath + "?redirect=" + url.QueryEscape(path)
}

// LoginRedirectTarget returns where to go after login. Only same-site
// absolute paths are accepted; anything else goes home.
func LoginRedirectTarget(redirect string) string {
	if redirect == "" || !strings.HasPrefix(redirect, "/") {
		return HomePath
	}
	// "//host" and "/\host" are protocol-relative in browsers
	if strings.HasPrefix(redirect, "//") || strings.HasPrefix(redirect, "/\\") {
		return HomePath
	}
	u, err := url.Parse(redirect)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return HomePath
	}
	if IsAuthPage(u.Path) {
		return HomePath
	}
	return redirect
}
