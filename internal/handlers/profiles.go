package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/meatdealer/backend/internal/logging"
	"github.com/meatdealer/backend/internal/models"
	"github.com/meatdealer/backend/internal/permissions"
	"github.com/meatdealer/backend/internal/repositories"
)

// ProfileHandler implements the public catalog CRUD and like endpoints.
type ProfileHandler struct {
	Profiles ProfileStore
	Identity identity
	NowFunc  func() time.Time
}

// List handles GET /api/v1/profiles. The catalog is public: like state is
// annotated only when the request carries a valid session.
func (h ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	var viewerID string
	if user, err := h.Identity.currentUser(r); err == nil {
		viewerID = user.ID
	}

	profiles, err := h.Profiles.List(ctx, viewerID)
	if err != nil {
		logger.Error("list profiles failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to list profiles"})
		return
	}

	if profiles == nil {
		profiles = []models.Profile{}
	}

	respondJSON(ctx, w, http.StatusOK, profiles)
}

// Get handles GET /api/v1/profiles/{id}.
func (h ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	var viewerID string
	if user, err := h.Identity.currentUser(r); err == nil {
		viewerID = user.ID
	}

	profile, err := h.Profiles.Get(ctx, r.PathValue("id"), viewerID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "profile not found"})
			return
		}
		logger.Error("get profile failed", "error", err, "profileId", r.PathValue("id"))
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load profile"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, profile)
}

// Create handles POST /api/v1/profiles.
func (h ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	user, err := h.Identity.currentUser(r)
	if err != nil {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	var profile models.Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		logger.Warn("invalid profile payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if msgs := validateProfile(profile); len(msgs) > 0 {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]any{"errors": msgs})
		return
	}

	now := h.now()
	profile.ID = uuid.NewString()
	profile.CreatedBy = &user
	profile.CreatedAt = now
	profile.UpdatedAt = now
	profile.LikesCount = 0
	profile.IsLikedByCurrentUser = false
	profile.LikedByUsers = nil

	if err := h.Profiles.Create(ctx, profile); err != nil {
		logger.Error("create profile failed", "error", err, "userId", user.ID)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to create profile"})
		return
	}

	respondJSON(ctx, w, http.StatusCreated, profile)
}

// Update handles PUT /api/v1/profiles/{id}. Only admins or the creator may
// modify a profile.
func (h ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, span := logging.StartSpan(r.Context(), "profiles.update")
	defer span.End()
	logger := logging.FromContext(ctx)

	user, err := h.Identity.currentUser(r)
	if err != nil {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	id := r.PathValue("id")
	existing, err := h.Profiles.Get(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "profile not found"})
			return
		}
		logger.Error("load profile for update failed", "error", err, "profileId", id)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load profile"})
		return
	}

	if !permissions.CanEditProfile(&user, &existing) {
		logger.Warn("profile update forbidden", "userId", user.ID, "profileId", id)
		respondJSON(ctx, w, http.StatusForbidden, map[string]string{"error": "not allowed to edit this profile"})
		return
	}

	var incoming models.Profile
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		logger.Warn("invalid profile payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if msgs := validateProfile(incoming); len(msgs) > 0 {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]any{"errors": msgs})
		return
	}

	incoming.ID = existing.ID
	incoming.CreatedBy = existing.CreatedBy
	incoming.CreatedAt = existing.CreatedAt
	incoming.UpdatedAt = h.now()

	if err := h.Profiles.Update(ctx, incoming); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "profile not found"})
			return
		}
		logger.Error("update profile failed", "error", err, "profileId", id)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to update profile"})
		return
	}

	updated, err := h.Profiles.Get(ctx, id, user.ID)
	if err != nil {
		logger.Error("reload profile after update failed", "error", err, "profileId", id)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load profile"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/profiles/{id}.
func (h ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	user, err := h.Identity.currentUser(r)
	if err != nil {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	id := r.PathValue("id")
	existing, err := h.Profiles.Get(ctx, id, user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "profile not found"})
			return
		}
		logger.Error("load profile for delete failed", "error", err, "profileId", id)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load profile"})
		return
	}

	if !permissions.CanEditProfile(&user, &existing) {
		logger.Warn("profile delete forbidden", "userId", user.ID, "profileId", id)
		respondJSON(ctx, w, http.StatusForbidden, map[string]string{"error": "not allowed to delete this profile"})
		return
	}

	if err := h.Profiles.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "profile not found"})
			return
		}
		logger.Error("delete profile failed", "error", err, "profileId", id)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to delete profile"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ToggleLike handles POST /api/v1/profiles/{id}/like.
func (h ProfileHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	user, err := h.Identity.currentUser(r)
	if err != nil {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	profile, err := h.Profiles.ToggleLike(ctx, r.PathValue("id"), user.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "profile not found"})
			return
		}
		logger.Error("toggle like failed", "error", err, "profileId", r.PathValue("id"), "userId", user.ID)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to update like"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, profile)
}

// validateProfile enforces the catalog's submission rules server-side, using
// the same limits as the interactive form.
func validateProfile(profile models.Profile) []string {
	var msgs []string

	if len(profile.Photos)+len(profile.Videos) == 0 {
		msgs = append(msgs, "at least one photo or video is required")
	}
	if profile.FirstName == "" {
		msgs = append(msgs, "first name is required")
	}
	if profile.LastName == "" {
		msgs = append(msgs, "last name is required")
	}
	if profile.Age < 18 || profile.Age > 60 {
		msgs = append(msgs, "age must be between 18 and 60")
	}
	if len(profile.MusicTags)+len(profile.PlaceTags) == 0 {
		msgs = append(msgs, "at least one music or place tag is required")
	}

	return msgs
}

func (h ProfileHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
