package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/meatdealer/backend/internal/models"
	"github.com/meatdealer/backend/internal/ui"
)

func TestClientLoginStoresTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/auth/login" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}

		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Fatalf("decode credentials: %v", err)
		}
		if creds["username"] != "carlos" {
			t.Fatalf("unexpected username %q", creds["username"])
		}

		_ = json.NewEncoder(w).Encode(authResponse{
			User: &models.User{ID: "u1", Username: "carlos"},
			Tokens: models.SessionTokens{
				AccessToken:  "access-1",
				RefreshToken: "refresh-1",
			},
		})
	}))
	defer server.Close()

	client := New(server.URL)
	user, err := client.Login(context.Background(), ui.Credentials{Username: "carlos", Password: "secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected user %+v", user)
	}
	if client.accessToken != "access-1" || client.refreshToken != "refresh-1" {
		t.Fatalf("expected tokens to be stored, got %q %q", client.accessToken, client.refreshToken)
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer access-1" {
			t.Fatalf("expected bearer token, got %q", got)
		}
		_ = json.NewEncoder(w).Encode([]models.Profile{{ID: "p1"}})
	}))
	defer server.Close()

	client := New(server.URL, WithTokens("access-1", "refresh-1"))
	profiles, err := client.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(profiles) != 1 || profiles[0].ID != "p1" {
		t.Fatalf("unexpected profiles %+v", profiles)
	}
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "private access required"})
	}))
	defer server.Close()

	client := New(server.URL, WithTokens("access-1", ""))
	_, err := client.PrivateProfiles().List(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusForbidden || apiErr.Message != "private access required" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}

func TestClientLogoutForgetsTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/auth/logout" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "logged out"})
	}))
	defer server.Close()

	client := New(server.URL, WithTokens("access-1", "refresh-1"))
	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if client.accessToken != "" || client.refreshToken != "" {
		t.Fatal("expected tokens to be cleared")
	}
}

func TestClientToggleLike(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/profiles/p1/like" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(models.Profile{ID: "p1", LikesCount: 3, IsLikedByCurrentUser: true})
	}))
	defer server.Close()

	client := New(server.URL, WithTokens("access-1", ""))
	profile, err := client.ToggleLike(context.Background(), "p1")
	if err != nil {
		t.Fatalf("toggle like: %v", err)
	}
	if profile.LikesCount != 3 || !profile.IsLikedByCurrentUser {
		t.Fatalf("unexpected profile %+v", profile)
	}
}
