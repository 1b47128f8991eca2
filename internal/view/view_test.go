package view

import (
	"errors"
	"testing"

	"github.com/meatdealer/backend/internal/models"
)

func TestControllerInitialState(t *testing.T) {
	c := NewController()

	state := c.State()
	if state.Current != Catalog {
		t.Fatalf("expected initial view %q got %q", Catalog, state.Current)
	}
	if state.SelectedProfile != nil || state.SelectedPrivate != nil {
		t.Fatal("expected empty selection on start")
	}
}

func TestTransitionsReplaceSelection(t *testing.T) {
	c := NewController()
	profile := &models.Profile{ID: "p1"}

	if err := c.ShowProfile(profile); err != nil {
		t.Fatalf("show profile: %v", err)
	}
	if got := c.State(); got.Current != Detail || got.SelectedProfile != profile {
		t.Fatalf("expected detail view with selection, got %+v", got)
	}

	c.ShowAdd()
	if got := c.State(); got.Current != Add || got.SelectedProfile != nil || got.SelectedPrivate != nil {
		t.Fatalf("expected add view with cleared selection, got %+v", got)
	}

	if err := c.ShowEdit(profile); err != nil {
		t.Fatalf("show edit: %v", err)
	}
	c.ShowCatalog()
	if got := c.State(); got.Current != Catalog || got.SelectedProfile != nil {
		t.Fatalf("expected catalog with cleared selection, got %+v", got)
	}
}

func TestPrivateVideoGuard(t *testing.T) {
	c := NewController()
	plain := &models.User{ID: "u1", Role: models.RoleUser}
	granted := &models.User{ID: "u2", Role: models.RoleUser, CanAccessPrivate: true}

	if err := c.ShowPrivateVideos(plain); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied got %v", err)
	}
	if got := c.State(); got.Current != Catalog {
		t.Fatalf("expected view unchanged after rejection, got %q", got.Current)
	}

	if err := c.ShowPrivateVideos(granted); err != nil {
		t.Fatalf("expected access granted: %v", err)
	}
	if got := c.State(); got.Current != PrivateVideos {
		t.Fatalf("expected private-videos view, got %q", got.Current)
	}

	if err := c.ShowCreatePrivateProfile(plain); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected create gate rejection got %v", err)
	}
	if got := c.State(); got.Current != PrivateVideos {
		t.Fatal("expected rejected create transition to leave state unchanged")
	}
}

func TestAdminGuards(t *testing.T) {
	c := NewController()
	admin := &models.User{ID: "a1", Role: models.RoleAdmin}
	plain := &models.User{ID: "u1", Role: models.RoleUser}

	if err := c.ShowUserManagement(plain); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected rejection got %v", err)
	}
	if err := c.ShowUserManagement(admin); err != nil {
		t.Fatalf("user management: %v", err)
	}
	if err := c.ShowCommentModeration(admin); err != nil {
		t.Fatalf("comment moderation: %v", err)
	}
	if got := c.State(); got.Current != CommentModeration || got.SelectedProfile != nil {
		t.Fatalf("expected moderation view with cleared selection, got %+v", got)
	}
}

func TestNilEntityFallsBackToListing(t *testing.T) {
	c := NewController()

	if err := c.ShowProfile(nil); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected no-selection error got %v", err)
	}
	if got := c.State(); got.Current != Catalog {
		t.Fatalf("expected fallback to catalog got %q", got.Current)
	}

	if err := c.ShowEditPrivateProfile(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected no-selection error got %v", err)
	}
	if got := c.State(); got.Current != PrivateVideos {
		t.Fatalf("expected fallback to private videos got %q", got.Current)
	}
}

func TestEditPrivateProfileKeepsSelection(t *testing.T) {
	c := NewController()
	private := &models.PrivateProfile{ID: "pv1", Name: "After Hours"}

	if err := c.ShowPrivateProfile(private); err != nil {
		t.Fatalf("show private profile: %v", err)
	}
	if err := c.ShowEditPrivateProfile(); err != nil {
		t.Fatalf("show edit private profile: %v", err)
	}
	if got := c.State(); got.Current != EditPrivateProfile || got.SelectedPrivate != private {
		t.Fatalf("expected edit view keeping selection, got %+v", got)
	}
}

func TestReplaceSelectedProfile(t *testing.T) {
	c := NewController()
	before := &models.Profile{ID: "p1", LikesCount: 1}
	after := &models.Profile{ID: "p1", LikesCount: 2, IsLikedByCurrentUser: true}

	if err := c.ShowProfile(before); err != nil {
		t.Fatalf("show profile: %v", err)
	}
	c.ReplaceSelectedProfile(after)
	if got := c.State(); got.SelectedProfile.LikesCount != 2 || !got.SelectedProfile.IsLikedByCurrentUser {
		t.Fatalf("expected refreshed selection, got %+v", got.SelectedProfile)
	}
	if got := c.State(); got.Current != Detail {
		t.Fatal("expected no view transition on like refresh")
	}

	c.ReplaceSelectedProfile(&models.Profile{ID: "other"})
	if got := c.State(); got.SelectedProfile.ID != "p1" {
		t.Fatal("expected mismatched id to be ignored")
	}
}

func TestBlurTogglePersistsAcrossTransitions(t *testing.T) {
	c := NewController()
	c.SetBlurImages(true)
	c.ShowAdd()
	c.ShowCatalog()
	if !c.State().BlurImages {
		t.Fatal("expected blur toggle to survive transitions")
	}
}
