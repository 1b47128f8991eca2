package ui

import (
	"sync"

	"github.com/meatdealer/backend/internal/models"
)

// Gate tracks the authenticated identity. While IsLoading reports true the
// application renders only a loading indicator; while unauthenticated only
// the login form is reachable. The gate is mutated exclusively by the App's
// login and logout flows.
type Gate struct {
	mu      sync.Mutex
	current *models.User
	loading bool
}

// CurrentUser returns the signed-in user, or nil.
func (g *Gate) CurrentUser() *models.User {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// IsAuthenticated reports whether an identity is present.
func (g *Gate) IsAuthenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current != nil
}

// IsLoading reports whether a login attempt is resolving.
func (g *Gate) IsLoading() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.loading
}

func (g *Gate) setLoading(loading bool) {
	g.mu.Lock()
	g.loading = loading
	g.mu.Unlock()
}

func (g *Gate) setUser(user models.User) {
	g.mu.Lock()
	g.current = &user
	g.loading = false
	g.mu.Unlock()
}

func (g *Gate) clear() {
	g.mu.Lock()
	g.current = nil
	g.loading = false
	g.mu.Unlock()
}
