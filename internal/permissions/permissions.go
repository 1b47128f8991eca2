// Package permissions holds the pure authorization predicates consulted by the
// view controller and the HTTP handlers. Predicates take the current user and
// the resource and return a plain boolean; they are side-effect free and must
// be re-evaluated on every check rather than cached, since both the user and
// the resource can change between checks.
package permissions

import "github.com/meatdealer/backend/internal/models"

// CanEditProfile reports whether the user may edit or delete the profile.
// Admins may edit any profile. Regular users may edit only profiles they
// created. Legacy profiles without a creator are editable by admins only.
func CanEditProfile(user *models.User, profile *models.Profile) bool {
	if user == nil || profile == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	if profile.CreatedBy != nil && profile.CreatedBy.ID == user.ID {
		return true
	}
	return false
}

// CanAccessPrivateVideos reports whether the user may enter the private-video
// section. Admins always may; regular users need the explicit flag.
func CanAccessPrivateVideos(user *models.User) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin() || user.CanAccessPrivate
}

// CanCreatePrivateProfiles reports whether the user may create private-video
// profiles. Creation is held to the same grant as access.
func CanCreatePrivateProfiles(user *models.User) bool {
	return CanAccessPrivateVideos(user)
}

// CanManageUsers reports whether the user may enter user management.
func CanManageUsers(user *models.User) bool {
	return user != nil && user.IsAdmin()
}

// CanModerateComments reports whether the user may approve or remove comments.
func CanModerateComments(user *models.User) bool {
	return user != nil && user.IsAdmin()
}
