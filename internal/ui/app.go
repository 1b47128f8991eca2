// Package ui implements the navigation and permission core of the catalog
// application: the session gate, the view controller, the modal service, the
// shared-link resolver, and the mutating action pipeline. It is transport
// agnostic; services, location, and meta-tag hooks are injected, so the same
// core runs against the HTTP API client or against in-memory fakes in tests.
package ui

import (
	"context"
	"log/slog"
	"sync"

	"github.com/meatdealer/backend/internal/deeplink"
	"github.com/meatdealer/backend/internal/modal"
	"github.com/meatdealer/backend/internal/models"
	"github.com/meatdealer/backend/internal/permissions"
	"github.com/meatdealer/backend/internal/view"
)

// Config wires an App. Auth, Profiles, Private, and Location are required.
type Config struct {
	Auth     AuthService
	Profiles ProfileService
	Private  PrivateProfileService
	Location deeplink.LocationProvider
	Meta     MetaTagHooks
	Logger   *slog.Logger
}

// App orchestrates the catalog UI core. All view-state mutations funnel
// through the embedded controller; screens observe state through the
// accessors and never mutate it directly.
type App struct {
	auth     AuthService
	profiles ProfileService
	private  PrivateProfileService
	logger   *slog.Logger

	gate     Gate
	views    *view.Controller
	modals   *modal.Service
	links    *deeplink.Resolver
	location deeplink.LocationProvider
	meta     MetaTagHooks

	mu          sync.Mutex
	inFlight    bool
	profileList []models.Profile
	privateList []models.PrivateProfile
}

// NewApp constructs the application core.
func NewApp(cfg Config) *App {
	if cfg.Auth == nil || cfg.Profiles == nil || cfg.Private == nil {
		panic("ui: auth, profile, and private-profile services must not be nil")
	}
	if cfg.Location == nil {
		panic("ui: location provider must not be nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &App{
		auth:     cfg.Auth,
		profiles: cfg.Profiles,
		private:  cfg.Private,
		logger:   logger,
		views:    view.NewController(),
		modals:   modal.NewService(),
		links:    deeplink.NewResolver(cfg.Location),
		location: cfg.Location,
		meta:     cfg.Meta,
	}
}

// Gate exposes the session gate.
func (a *App) Gate() *Gate { return &a.gate }

// ViewState returns a copy of the current navigation state.
func (a *App) ViewState() view.State { return a.views.State() }

// Modal returns a copy of the current modal state.
func (a *App) Modal() modal.State { return a.modals.State() }

// Modals exposes the modal service so a frontend can confirm or dismiss.
func (a *App) Modals() *modal.Service { return a.modals }

// Profiles returns the loaded catalog.
func (a *App) Profiles() []models.Profile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.profileList
}

// PrivateProfiles returns the loaded private catalog.
func (a *App) PrivateProfiles() []models.PrivateProfile {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.privateList
}

// Login resolves credentials through the auth service and, on success, loads
// the catalog and resolves any pending shared link. The caller's login form
// surfaces the returned error inline; no modal is raised here.
func (a *App) Login(ctx context.Context, creds Credentials) error {
	a.gate.setLoading(true)

	user, err := a.auth.Login(ctx, creds)
	if err != nil {
		a.gate.clear()
		a.logger.Warn("login rejected", "username", creds.Username, "error", err)
		return err
	}

	a.gate.setUser(user)
	a.RefreshProfiles(ctx)
	a.RefreshPrivateProfiles(ctx)
	return nil
}

// Logout asks for confirmation before revoking the session. Canceling the
// modal leaves everything untouched.
func (a *App) Logout(ctx context.Context) {
	a.modals.ShowConfirm(
		"Cerrar Sesión",
		"¿Estás seguro de que quieres cerrar sesión?",
		func() {
			if err := a.auth.Logout(ctx); err != nil {
				a.logger.Warn("logout call failed, clearing session anyway", "error", err)
			}
			a.gate.clear()
			a.views.ShowCatalog()
			a.mu.Lock()
			a.profileList = nil
			a.privateList = nil
			a.mu.Unlock()
		},
		"Cerrar Sesión",
		"Cancelar",
	)
}

// RefreshProfiles reloads the catalog and re-runs shared-link resolution,
// which must be idempotent because it is repeated on every collection change.
func (a *App) RefreshProfiles(ctx context.Context) {
	list, err := a.profiles.List(ctx)
	if err != nil {
		a.logger.Error("load profiles", "error", err)
		return
	}
	a.mu.Lock()
	a.profileList = list
	a.mu.Unlock()

	a.resolveSharedLink()
}

// RefreshPrivateProfiles reloads the private catalog for entitled users.
func (a *App) RefreshPrivateProfiles(ctx context.Context) {
	if !permissions.CanAccessPrivateVideos(a.gate.CurrentUser()) {
		return
	}
	list, err := a.private.List(ctx)
	if err != nil {
		a.logger.Error("load private profiles", "error", err)
		return
	}
	a.mu.Lock()
	a.privateList = list
	a.mu.Unlock()
}

// OpenProfile shows the detail screen for a catalog card.
func (a *App) OpenProfile(profile *models.Profile) {
	if err := a.views.ShowProfile(profile); err != nil {
		a.logger.Warn("open profile without selection", "error", err)
	}
}

// OpenEdit shows the edit form for a profile. Whether the form renders or
// shows the access-denied screen is decided by CanEditSelected.
func (a *App) OpenEdit(profile *models.Profile) {
	if err := a.views.ShowEdit(profile); err != nil {
		a.logger.Warn("open edit without selection", "error", err)
	}
}

// CanEditSelected reports whether the current user may edit the selected
// profile. The edit screen consults this on every render; a false result
// renders the access-denied screen instead of the form.
func (a *App) CanEditSelected() bool {
	return permissions.CanEditProfile(a.gate.CurrentUser(), a.views.State().SelectedProfile)
}

// NavigateAdd opens the add-profile form.
func (a *App) NavigateAdd() {
	a.views.ShowAdd()
}

// NavigateCatalog returns to the catalog, clearing selections and resetting
// the link-sharing meta tags.
func (a *App) NavigateCatalog() {
	a.views.ShowCatalog()
	a.meta.reset()
}

// BackFromSharedProfile leaves the deep-linked view, rewriting the location
// back to the root.
func (a *App) BackFromSharedProfile() {
	a.location.Replace("/")
	a.NavigateCatalog()
}

// NavigateUserManagement enters the admin user-management screen.
func (a *App) NavigateUserManagement() {
	if err := a.views.ShowUserManagement(a.gate.CurrentUser()); err != nil {
		a.modals.ShowError("Acceso Denegado", "Solo los administradores pueden gestionar usuarios.")
	}
}

// NavigateCommentModeration enters the admin comment-moderation screen.
func (a *App) NavigateCommentModeration() {
	if err := a.views.ShowCommentModeration(a.gate.CurrentUser()); err != nil {
		a.modals.ShowError("Acceso Denegado", "Solo los administradores pueden moderar comentarios.")
	}
}

// NavigatePrivateVideos enters the private-video catalog. A rejected user
// sees exactly one error modal and no transition.
func (a *App) NavigatePrivateVideos() {
	if err := a.views.ShowPrivateVideos(a.gate.CurrentUser()); err != nil {
		a.modals.ShowError("Acceso Denegado", "No tienes permisos para acceder a la sección de videos privados.")
	}
}

// OpenPrivateProfile shows the private-profile detail screen.
func (a *App) OpenPrivateProfile(profile *models.PrivateProfile) {
	if err := a.views.ShowPrivateProfile(profile); err != nil {
		a.logger.Warn("open private profile without selection", "error", err)
	}
}

// NavigateCreatePrivateProfile opens the private-profile creation form.
func (a *App) NavigateCreatePrivateProfile() {
	if err := a.views.ShowCreatePrivateProfile(a.gate.CurrentUser()); err != nil {
		a.modals.ShowError("Acceso Denegado", "No tienes permisos para crear perfiles privados.")
	}
}

// OpenEditPrivateProfile moves from the private detail screen into its edit
// form, keeping the current selection.
func (a *App) OpenEditPrivateProfile() {
	if err := a.views.ShowEditPrivateProfile(); err != nil {
		a.logger.Warn("open private edit without selection", "error", err)
	}
}

// SetBlurImages toggles the catalog-wide image blur.
func (a *App) SetBlurImages(blur bool) {
	a.views.SetBlurImages(blur)
}

// resolveSharedLink maps the current location onto the shared-profile view.
// Re-resolving the same link while already on that view is a no-op.
func (a *App) resolveSharedLink() {
	a.mu.Lock()
	list := a.profileList
	a.mu.Unlock()

	profile, ok := a.links.Resolve(list)
	if !ok {
		return
	}

	state := a.views.State()
	if state.Current == view.SharedProfile && state.SelectedProfile != nil && state.SelectedProfile.ID == profile.ID {
		return
	}

	if err := a.views.ShowSharedProfile(profile); err != nil {
		return
	}
	a.meta.update(*profile)
}
