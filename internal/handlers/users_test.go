package handlers

import (
	"context"
	"net/http"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/meatdealer/backend/internal/models"
)

func TestUserHandlerRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	user := env.addUser(t, "user", "password123", models.RoleUser, true)
	token := env.token(t, user)

	rec := env.do(t, http.MethodGet, "/api/v1/users", token, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status %d got %d", http.StatusForbidden, rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/v1/users", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestUserHandlerCreateAndList(t *testing.T) {
	env := newTestEnv(t)
	admin := env.addUser(t, "admin", "password123", models.RoleAdmin, false)
	token := env.token(t, admin)

	rec := env.do(t, http.MethodPost, "/api/v1/users", token, userRequest{
		Username:         "Nuevo",
		FullName:         "Nuevo Usuario",
		Password:         "supersafe",
		CanAccessPrivate: true,
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status %d got %d: %s", http.StatusCreated, rec.Code, rec.Body.String())
	}

	created := decodeBody[models.User](t, rec)
	if created.Username != "nuevo" {
		t.Fatalf("expected normalized username, got %q", created.Username)
	}
	if created.Role != models.RoleUser {
		t.Fatalf("expected default role, got %q", created.Role)
	}
	if !created.CanAccessPrivate {
		t.Fatal("expected private access flag to persist")
	}

	stored, err := env.users.FindByUsername(context.Background(), "nuevo")
	if err != nil {
		t.Fatalf("expected user stored: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("supersafe")) != nil {
		t.Fatal("stored password is not hashed")
	}

	rec = env.do(t, http.MethodGet, "/api/v1/users", token, nil)
	users := decodeBody[[]models.User](t, rec)
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}

func TestUserHandlerCreateRejectsShortPassword(t *testing.T) {
	env := newTestEnv(t)
	admin := env.addUser(t, "admin", "password123", models.RoleAdmin, false)

	rec := env.do(t, http.MethodPost, "/api/v1/users", env.token(t, admin), userRequest{Username: "x", Password: "short"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
}

func TestUserHandlerCreateRejectsDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	admin := env.addUser(t, "admin", "password123", models.RoleAdmin, false)
	env.addUser(t, "taken", "password123", models.RoleUser, false)

	rec := env.do(t, http.MethodPost, "/api/v1/users", env.token(t, admin), userRequest{Username: "taken", Password: "supersafe"})

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected status %d got %d", http.StatusConflict, rec.Code)
	}
}

func TestUserHandlerUpdateGrantsPrivateAccess(t *testing.T) {
	env := newTestEnv(t)
	admin := env.addUser(t, "admin", "password123", models.RoleAdmin, false)
	target := env.addUser(t, "target", "password123", models.RoleUser, false)

	rec := env.do(t, http.MethodPut, "/api/v1/users/"+target.ID, env.token(t, admin), userRequest{CanAccessPrivate: true})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	updated := decodeBody[models.User](t, rec)
	if !updated.CanAccessPrivate {
		t.Fatal("expected private access to be granted")
	}
	if updated.Username != target.Username {
		t.Fatalf("username must not change when omitted, got %q", updated.Username)
	}
}

func TestUserHandlerDeleteRejectsSelf(t *testing.T) {
	env := newTestEnv(t)
	admin := env.addUser(t, "admin", "password123", models.RoleAdmin, false)
	token := env.token(t, admin)

	rec := env.do(t, http.MethodDelete, "/api/v1/users/"+admin.ID, token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}

	other := env.addUser(t, "other", "password123", models.RoleUser, false)
	rec = env.do(t, http.MethodDelete, "/api/v1/users/"+other.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}
}
