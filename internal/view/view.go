// Package view implements the screen-navigation state machine of the catalog
// application. A Controller owns the current view and the selected entities;
// it is the single writer of that state, and every transition replaces the
// whole selection rather than merging into it, so no screen can observe a
// stale selection left over from a previous view.
package view

import (
	"errors"

	"github.com/meatdealer/backend/internal/models"
	"github.com/meatdealer/backend/internal/permissions"
)

// View identifies one of the mutually exclusive screens.
type View string

const (
	Catalog              View = "catalog"
	Add                  View = "add"
	Detail               View = "detail"
	Edit                 View = "edit"
	SharedProfile        View = "shared-profile"
	UserManagement       View = "user-management"
	CommentModeration    View = "comment-moderation"
	PrivateVideos        View = "private-videos"
	PrivateVideoDetail   View = "private-video-detail"
	CreatePrivateProfile View = "create-private-profile"
	EditPrivateProfile   View = "edit-private-profile"
)

var (
	// ErrPermissionDenied indicates a guarded transition was rejected; the
	// current view is left unchanged.
	ErrPermissionDenied = errors.New("view: permission denied")
	// ErrNoSelection indicates an entity view was requested without an
	// entity; the controller falls back to the relevant listing view.
	ErrNoSelection = errors.New("view: no entity selected")
)

// State is the complete navigation state. Copies are handed out by value so
// screens can never mutate controller state directly.
type State struct {
	Current         View
	SelectedProfile *models.Profile
	SelectedPrivate *models.PrivateProfile
	BlurImages      bool
}

// Controller drives transitions between screens. The zero value is not usable;
// construct with NewController.
type Controller struct {
	state State
}

// NewController returns a controller positioned on the catalog.
func NewController() *Controller {
	return &Controller{state: State{Current: Catalog}}
}

// State returns a copy of the current navigation state.
func (c *Controller) State() State {
	return c.state
}

// set replaces the full selection triple, preserving only the blur toggle.
func (c *Controller) set(v View, profile *models.Profile, private *models.PrivateProfile) {
	c.state = State{
		Current:         v,
		SelectedProfile: profile,
		SelectedPrivate: private,
		BlurImages:      c.state.BlurImages,
	}
}

// ShowCatalog navigates to the catalog, clearing both entity slots.
func (c *Controller) ShowCatalog() {
	c.set(Catalog, nil, nil)
}

// ShowAdd navigates to the add-profile form.
func (c *Controller) ShowAdd() {
	c.set(Add, nil, nil)
}

// ShowProfile opens the detail screen for the given profile. A nil profile
// redirects to the catalog instead of rendering an empty detail screen.
func (c *Controller) ShowProfile(profile *models.Profile) error {
	if profile == nil {
		c.set(Catalog, nil, nil)
		return ErrNoSelection
	}
	c.set(Detail, profile, nil)
	return nil
}

// ShowEdit opens the edit form for the given profile. A nil profile redirects
// to the catalog.
func (c *Controller) ShowEdit(profile *models.Profile) error {
	if profile == nil {
		c.set(Catalog, nil, nil)
		return ErrNoSelection
	}
	c.set(Edit, profile, nil)
	return nil
}

// ShowSharedProfile enters the read-only deep-linked rendering of a profile.
// Shared profiles bypass permission guards: no edit or delete action is wired
// on that screen.
func (c *Controller) ShowSharedProfile(profile *models.Profile) error {
	if profile == nil {
		c.set(Catalog, nil, nil)
		return ErrNoSelection
	}
	c.set(SharedProfile, profile, nil)
	return nil
}

// ShowUserManagement enters the admin user-management screen.
func (c *Controller) ShowUserManagement(user *models.User) error {
	if !permissions.CanManageUsers(user) {
		return ErrPermissionDenied
	}
	c.set(UserManagement, nil, nil)
	return nil
}

// ShowCommentModeration enters the admin comment-moderation screen.
func (c *Controller) ShowCommentModeration(user *models.User) error {
	if !permissions.CanModerateComments(user) {
		return ErrPermissionDenied
	}
	c.set(CommentModeration, nil, nil)
	return nil
}

// ShowPrivateVideos enters the private-video catalog. The permission gate is
// re-evaluated on every call; a rejected user stays on the current view.
func (c *Controller) ShowPrivateVideos(user *models.User) error {
	if !permissions.CanAccessPrivateVideos(user) {
		return ErrPermissionDenied
	}
	c.set(PrivateVideos, nil, nil)
	return nil
}

// ShowPrivateProfile opens the detail screen for a private profile.
func (c *Controller) ShowPrivateProfile(profile *models.PrivateProfile) error {
	if profile == nil {
		c.set(PrivateVideos, nil, nil)
		return ErrNoSelection
	}
	c.set(PrivateVideoDetail, nil, profile)
	return nil
}

// ShowCreatePrivateProfile enters the private-profile creation form.
func (c *Controller) ShowCreatePrivateProfile(user *models.User) error {
	if !permissions.CanCreatePrivateProfiles(user) {
		return ErrPermissionDenied
	}
	c.set(CreatePrivateProfile, nil, nil)
	return nil
}

// ShowEditPrivateProfile opens the edit form for the currently selected
// private profile, keeping the selection. Without a selection it falls back
// to the private-video listing.
func (c *Controller) ShowEditPrivateProfile() error {
	if c.state.SelectedPrivate == nil {
		c.set(PrivateVideos, nil, nil)
		return ErrNoSelection
	}
	c.set(EditPrivateProfile, nil, c.state.SelectedPrivate)
	return nil
}

// ReplaceSelectedProfile swaps the selected profile in place without a view
// transition. Used when a service call returns fresh engagement counters for
// the profile currently on screen.
func (c *Controller) ReplaceSelectedProfile(profile *models.Profile) {
	if c.state.SelectedProfile == nil || profile == nil {
		return
	}
	if c.state.SelectedProfile.ID == profile.ID {
		c.state.SelectedProfile = profile
	}
}

// SetBlurImages toggles the catalog-wide image blur without touching the
// navigation state.
func (c *Controller) SetBlurImages(blur bool) {
	c.state.BlurImages = blur
}
