// Package deeplink resolves shared profile links from the host location into
// a concrete profile. The location is injected behind LocationProvider so the
// resolver is testable without a browser environment.
package deeplink

import (
	"fmt"
	"regexp"

	"github.com/meatdealer/backend/internal/models"
)

// LocationProvider abstracts access to the host's location bar.
type LocationProvider interface {
	// Path returns the location path, e.g. "/profile/42".
	Path() string
	// Hash returns the location fragment including the leading "#".
	Hash() string
	// Replace rewrites the location without triggering a reload.
	Replace(url string)
}

var (
	hashPattern = regexp.MustCompile(`^#/profile/(.+)$`)
	pathPattern = regexp.MustCompile(`^/profile/(.+)$`)
)

// Resolver matches shared-link locations against the profile collection.
type Resolver struct {
	location LocationProvider
}

// NewResolver constructs a resolver over the provided location.
func NewResolver(location LocationProvider) *Resolver {
	if location == nil {
		panic("deeplink: location provider must not be nil")
	}
	return &Resolver{location: location}
}

// Resolve inspects the location for a shared profile link and returns the
// matching profile. Path-form links ("/profile/<id>") are normalized to the
// hash form via Replace; hash-form links are left untouched. The second
// return reports whether a matching profile was found. Resolve is safe to
// call repeatedly: re-resolving an unchanged location yields the same result
// and performs no further normalization.
func (r *Resolver) Resolve(profiles []models.Profile) (*models.Profile, bool) {
	id, fromPath := r.profileID()
	if id == "" {
		return nil, false
	}

	for i := range profiles {
		if profiles[i].ID != id {
			continue
		}
		if fromPath {
			r.location.Replace(fmt.Sprintf("/#/profile/%s", id))
		}
		return &profiles[i], true
	}

	return nil, false
}

// profileID extracts the shared profile id, preferring the hash form.
func (r *Resolver) profileID() (id string, fromPath bool) {
	if m := hashPattern.FindStringSubmatch(r.location.Hash()); m != nil {
		return m[1], false
	}
	if m := pathPattern.FindStringSubmatch(r.location.Path()); m != nil {
		return m[1], true
	}
	return "", false
}
