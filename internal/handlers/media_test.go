package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/meatdealer/backend/internal/models"
)

func multipartUpload(t *testing.T, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create part: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return &buf, writer.FormDataContentType()
}

func TestMediaHandlerUpload(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "uploader", "password123", models.RoleUser, false)
	token := env.token(t, user)

	body, contentType := multipartUpload(t, "foto.jpg", "image/jpeg", "fake image bytes")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	resp := decodeBody[map[string]string](t, rec)
	if !strings.HasPrefix(resp["url"], "https://cdn.test/media/") {
		t.Fatalf("expected stored media url, got %q", resp["url"])
	}
	if !strings.HasSuffix(resp["url"], ".jpg") {
		t.Fatalf("expected original extension to survive, got %q", resp["url"])
	}

	if len(env.media.uploads) != 1 {
		t.Fatalf("expected 1 stored object, got %d", len(env.media.uploads))
	}
}

func TestMediaHandlerUploadRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartUpload(t, "foto.jpg", "image/jpeg", "fake image bytes")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestMediaHandlerUploadRejectsOtherTypes(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "uploader", "password123", models.RoleUser, false)
	token := env.token(t, user)

	body, contentType := multipartUpload(t, "malware.exe", "application/octet-stream", "nope")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/media", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected status %d got %d", http.StatusUnsupportedMediaType, rec.Code)
	}
}
