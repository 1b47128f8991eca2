package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/meatdealer/backend/internal/logging"
)

// maxUploadBytes caps a single media upload at 64 MiB.
const maxUploadBytes = 64 << 20

// MediaHandler accepts photo and video uploads and stores them in the
// configured object store.
type MediaHandler struct {
	Storage  MediaStorage
	Identity identity
}

// Upload handles POST /api/v1/media multipart uploads. The response carries
// the public URL of the stored object.
func (h MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx, span := logging.StartSpan(r.Context(), "media.upload")
	defer span.End()
	logger := logging.FromContext(ctx)

	user, err := h.Identity.currentUser(r)
	if err != nil {
		respondJSON(ctx, w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
		return
	}

	if h.Storage == nil {
		logger.Error("media storage not configured")
		respondJSON(ctx, w, http.StatusServiceUnavailable, map[string]string{"error": "media uploads are not configured"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		logger.Warn("invalid media upload", "error", err, "userId", user.ID)
		respondJSON(ctx, w, http.StatusBadRequest, map[string]string{"error": "a file field is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !allowedMediaType(contentType) {
		respondJSON(ctx, w, http.StatusUnsupportedMediaType, map[string]string{"error": "only image and video uploads are allowed"})
		return
	}

	key := fmt.Sprintf("media/%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(header.Filename)))
	url, err := h.Storage.Upload(ctx, key, contentType, file)
	if err != nil {
		logger.Error("media upload failed", "error", err, "key", key, "userId", user.ID)
		respondJSON(ctx, w, http.StatusInternalServerError, map[string]string{"error": "unable to store media"})
		return
	}

	logger.Info("media uploaded", "key", key, "userId", user.ID, "size", header.Size)
	respondJSON(ctx, w, http.StatusCreated, map[string]string{"url": url})
}

func allowedMediaType(contentType string) bool {
	return strings.HasPrefix(contentType, "image/") || strings.HasPrefix(contentType, "video/")
}
