package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/meatdealer/backend/internal/logging"
	"github.com/meatdealer/backend/internal/models"
	"github.com/meatdealer/backend/internal/permissions"
	"github.com/meatdealer/backend/internal/repositories"
)

// UserHandler implements the admin-only user management endpoints.
type UserHandler struct {
	Users    UserStore
	Identity identity
	NowFunc  func() time.Time
}

// List handles GET /api/v1/users.
func (h UserHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	users, err := h.Users.List(ctx)
	if err != nil {
		logger.Error("list users failed", "error", err, "adminId", admin.ID)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to list users"})
		return
	}

	if users == nil {
		users = []models.User{}
	}

	respondJSON(ctx, w, http.StatusOK, users)
}

// Create handles POST /api/v1/users.
func (h UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid user payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	req.Username = strings.TrimSpace(strings.ToLower(req.Username))
	if req.Username == "" || req.Password == "" {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "username and password are required"})
		return
	}

	if len(req.Password) < 8 {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "password must be at least 8 characters"})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "role must be admin or user"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("failed to hash password", "error", err)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to secure password"})
		return
	}

	now := h.now()
	user := models.User{
		ID:               uuid.NewString(),
		Username:         req.Username,
		FullName:         strings.TrimSpace(req.FullName),
		Password:         string(hashed),
		Role:             role,
		CanAccessPrivate: req.CanAccessPrivate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := h.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			respondJSON(ctx, w, http.StatusConflict, map[string]string{"error": "username already taken"})
			return
		}
		logger.Error("create user failed", "error", err, "adminId", admin.ID)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to create user"})
		return
	}

	respondJSON(ctx, w, http.StatusCreated, user)
}

// Update handles PUT /api/v1/users/{id}. Password changes are optional; an
// empty password keeps the stored hash.
func (h UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	existing, err := h.Users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		logger.Error("load user for update failed", "error", err, "userId", id)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to load user"})
		return
	}

	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid user payload", "error", err)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if req.Username != "" {
		existing.Username = strings.TrimSpace(strings.ToLower(req.Username))
	}
	if req.FullName != "" {
		existing.FullName = strings.TrimSpace(req.FullName)
	}
	if req.Role != "" {
		if req.Role != models.RoleAdmin && req.Role != models.RoleUser {
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "role must be admin or user"})
			return
		}
		existing.Role = req.Role
	}
	existing.CanAccessPrivate = req.CanAccessPrivate

	if req.Password != "" {
		if len(req.Password) < 8 {
			respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "password must be at least 8 characters"})
			return
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("failed to hash password", "error", err)
			respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "failed to secure password"})
			return
		}
		existing.Password = string(hashed)
	}

	existing.UpdatedAt = h.now()

	if err := h.Users.Update(ctx, existing); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			respondJSON(ctx, w, http.StatusConflict, map[string]string{"error": "username already taken"})
			return
		}
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		logger.Error("update user failed", "error", err, "userId", id, "adminId", admin.ID)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to update user"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, existing)
}

// Delete handles DELETE /api/v1/users/{id}. Admins cannot delete themselves.
func (h UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	admin, ok := h.requireAdmin(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	if id == admin.ID {
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "cannot delete your own account"})
		return
	}

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondJSON(ctx, w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		logger.Error("delete user failed", "error", err, "userId", id, "adminId", admin.ID)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to delete user"})
		return
	}

	respondJSON(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h UserHandler) requireAdmin(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	ctx := r.Context()

	user, err := h.Identity.currentUser(r)
	if err != nil {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return models.User{}, false
	}

	if !permissions.CanManageUsers(&user) {
		respondJSON(ctx, w, http.StatusForbidden, map[string]string{"error": "user management requires admin role"})
		return models.User{}, false
	}

	return user, true
}

type userRequest struct {
	Username         string `json:"username"`
	FullName         string `json:"fullName"`
	Password         string `json:"password"`
	Role             string `json:"role"`
	CanAccessPrivate bool   `json:"canAccessPrivate"`
}

func (h UserHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
