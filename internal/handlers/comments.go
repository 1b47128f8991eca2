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

// CommentHandler implements comment submission and moderation endpoints.
type CommentHandler struct {
	Comments CommentStore
	Profiles ProfileStore
	Identity identity
	NowFunc  func() time.Time
}

// ListApproved handles GET /api/v1/profiles/{id}/comments. Only moderated
// comments are visible.
func (h CommentHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	comments, err := h.Comments.ListApproved(ctx, r.PathValue("id"))
	if err != nil {
		logger.Error("list approved comments failed", "error", err, "profileId", r.PathValue("id"))
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to list comments"})
		return
	}

	if comments == nil {
		comments = []models.Comment{}
	}

	respondJSON(ctx, w, http.StatusOK, comments)
}

// Create handles POST /api/v1/profiles/{id}/comments. New comments start
// unapproved and surface only after moderation.
func (h CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	user, err := h.Identity.currentUser(r)
	if err != nil {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	profileID := r.PathValue("id")
	if _, err := h.Profiles.Get(ctx, profileID, user.ID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "profile not found"})
			return
		}
		logger.Error("load profile for comment failed", "error", err, "profileId", profileID)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load profile"})
		return
	}

	var req commentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid comment payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "comment text is required"})
		return
	}

	comment := models.Comment{
		ID:        uuid.NewString(),
		ProfileID: profileID,
		AuthorID:  user.ID,
		Author:    user.FullName,
		Text:      req.Text,
		Approved:  false,
		CreatedAt: h.now(),
	}

	if err := h.Comments.Create(ctx, comment); err != nil {
		logger.Error("create comment failed", "error", err, "profileId", profileID, "userId", user.ID)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to create comment"})
		return
	}

	respondJSON(ctx, w, http.StatusCreated, comment)
}

// ListPending handles GET /api/v1/comments/pending. Moderators only.
func (h CommentHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	user, err := h.Identity.currentUser(r)
	if err != nil {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	if !permissions.CanModerateComments(&user) {
		respondJSON(ctx, w, http.StatusForbidden, map[string]string{"error": "moderation requires admin role"})
		return
	}

	comments, err := h.Comments.ListPending(ctx)
	if err != nil {
		logger.Error("list pending comments failed", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to list comments"})
		return
	}

	if comments == nil {
		comments = []models.Comment{}
	}

	respondJSON(ctx, w, http.StatusOK, comments)
}

// Approve handles POST /api/v1/comments/{id}/approve. Moderators only.
func (h CommentHandler) Approve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	user, err := h.Identity.currentUser(r)
	if err != nil {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	if !permissions.CanModerateComments(&user) {
		respondJSON(ctx, w, http.StatusForbidden, map[string]string{"error": "moderation requires admin role"})
		return
	}

	id := r.PathValue("id")
	if err := h.Comments.SetApproved(ctx, id, true); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "comment not found"})
			return
		}
		logger.Error("approve comment failed", "error", err, "commentId", id)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to approve comment"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "approved"})
}

// Delete handles DELETE /api/v1/comments/{id}. Moderators only.
func (h CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	user, err := h.Identity.currentUser(r)
	if err != nil {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	if !permissions.CanModerateComments(&user) {
		respondJSON(ctx, w, http.StatusForbidden, map[string]string{"error": "moderation requires admin role"})
		return
	}

	id := r.PathValue("id")
	if err := h.Comments.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "comment not found"})
			return
		}
		logger.Error("delete comment failed", "error", err, "commentId", id)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to delete comment"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

type commentRequest struct {
	Text string `json:"text"`
}

func (h CommentHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
