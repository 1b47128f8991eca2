package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/meatdealer/backend/internal/models"
)

// errUnauthenticated signals that a request carried no usable bearer token.
var errUnauthenticated = errors.New("missing or invalid bearer token")

// identity resolves bearer tokens into full user records for handlers that
// require an authenticated caller.
type identity struct {
	Users    UserStore
	Sessions SessionManager
}

// currentUser resolves the Authorization header of the request into the user
// it belongs to. It returns errUnauthenticated when the token is missing,
// unknown, or expired.
func (i identity) currentUser(r *http.Request) (models.User, error) {
	token := bearerToken(r)
	if token == "" {
		return models.User{}, errUnauthenticated
	}

	userID, err := i.Sessions.Validate(r.Context(), token)
	if err != nil {
		return models.User{}, errUnauthenticated
	}

	user, err := i.Users.FindByID(r.Context(), userID)
	if err != nil {
		return models.User{}, errUnauthenticated
	}

	return user, nil
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
