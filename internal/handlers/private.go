package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meatdealer/backend/internal/logging"
	"github.com/meatdealer/backend/internal/models"
	"github.com/meatdealer/backend/internal/permissions"
	"github.com/meatdealer/backend/internal/repositories"
)

// PrivateProfileHandler implements the restricted catalog endpoints. Every
// operation requires the private-access grant or the admin role.
type PrivateProfileHandler struct {
	Private  PrivateProfileStore
	Identity identity
	NowFunc  func() time.Time
}

// List handles GET /api/v1/private-profiles.
func (h PrivateProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if _, ok := h.requireAccess(w, r); !ok {
		return
	}

	profiles, err := h.Private.List(ctx)
	if err != nil {
		logger.Error("list private profiles failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to list private profiles"})
		return
	}

	if profiles == nil {
		profiles = []models.PrivateProfile{}
	}

	respondJSON(ctx, w, http.StatusOK, profiles)
}

// Get handles GET /api/v1/private-profiles/{id}.
func (h PrivateProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if _, ok := h.requireAccess(w, r); !ok {
		return
	}

	profile, err := h.Private.Get(ctx, r.PathValue("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "private profile not found"})
			return
		}
		logger.Error("get private profile failed", "error", err, "profileId", r.PathValue("id"))
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load private profile"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, profile)
}

// Create handles POST /api/v1/private-profiles.
func (h PrivateProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	user, ok := h.requireAccess(w, r)
	if !ok {
		return
	}

	var profile models.PrivateProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		logger.Warn("invalid private profile payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	now := h.now()
	profile.ID = uuid.NewString()
	profile.OwnerID = user.ID
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if err := h.Private.Create(ctx, profile); err != nil {
		logger.Error("create private profile failed", "error", err, "userId", user.ID)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to create private profile"})
		return
	}

	respondJSON(ctx, w, http.StatusCreated, profile)
}

// Update handles PUT /api/v1/private-profiles/{id}.
func (h PrivateProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	user, ok := h.requireAccess(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	existing, err := h.Private.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "private profile not found"})
			return
		}
		logger.Error("load private profile for update failed", "error", err, "profileId", id)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load private profile"})
		return
	}

	var incoming models.PrivateProfile
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		logger.Warn("invalid private profile payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	incoming.Name = strings.TrimSpace(incoming.Name)
	if incoming.Name == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	incoming.ID = existing.ID
	incoming.OwnerID = existing.OwnerID
	incoming.CreatedAt = existing.CreatedAt
	incoming.UpdatedAt = h.now()

	if err := h.Private.Update(ctx, incoming); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "private profile not found"})
			return
		}
		logger.Error("update private profile failed", "error", err, "profileId", id, "userId", user.ID)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to update private profile"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, incoming)
}

// Delete handles DELETE /api/v1/private-profiles/{id}.
func (h PrivateProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	user, ok := h.requireAccess(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if err := h.Private.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "private profile not found"})
			return
		}
		logger.Error("delete private profile failed", "error", err, "profileId", id, "userId", user.ID)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to delete private profile"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h PrivateProfileHandler) requireAccess(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	ctx := r.Context()

	user, err := h.Identity.currentUser(r)
	if err != nil {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return models.User{}, false
	}

	if !permissions.CanAccessPrivateVideos(&user) {
		respondJSON(ctx, w, http.StatusForbidden, map[string]string{"error": "private access required"})
		return models.User{}, false
	}

	return user, true
}

func (h PrivateProfileHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
