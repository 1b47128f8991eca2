package handlers

import "net/http"

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	ident := identity{Users: deps.Users, Sessions: deps.Sessions}

	health := HealthHandler{}
	auth := AuthHandler{Users: deps.Users, Sessions: deps.Sessions, Limiter: deps.LoginLimiter}
	profiles := ProfileHandler{Profiles: deps.Profiles, Identity: ident}
	comments := CommentHandler{Comments: deps.Comments, Profiles: deps.Profiles, Identity: ident}
	users := UserHandler{Users: deps.Users, Identity: ident}
	private := PrivateProfileHandler{Private: deps.Private, Identity: ident}
	media := MediaHandler{Storage: deps.Media, Identity: ident}

	mux.HandleFunc("/healthz", health.Handle)

	mux.HandleFunc("POST /api/v1/auth/login", auth.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", auth.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", auth.Logout)

	mux.HandleFunc("GET /api/v1/profiles", profiles.List)
	mux.HandleFunc("POST /api/v1/profiles", profiles.Create)
	mux.HandleFunc("GET /api/v1/profiles/{id}", profiles.Get)
	mux.HandleFunc("PUT /api/v1/profiles/{id}", profiles.Update)
	mux.HandleFunc("DELETE /api/v1/profiles/{id}", profiles.Delete)
	mux.HandleFunc("POST /api/v1/profiles/{id}/like", profiles.ToggleLike)

	mux.HandleFunc("GET /api/v1/profiles/{id}/comments", comments.ListApproved)
	mux.HandleFunc("POST /api/v1/profiles/{id}/comments", comments.Create)
	mux.HandleFunc("GET /api/v1/comments/pending", comments.ListPending)
	mux.HandleFunc("POST /api/v1/comments/{id}/approve", comments.Approve)
	mux.HandleFunc("DELETE /api/v1/comments/{id}", comments.Delete)

	mux.HandleFunc("GET /api/v1/users", users.List)
	mux.HandleFunc("POST /api/v1/users", users.Create)
	mux.HandleFunc("PUT /api/v1/users/{id}", users.Update)
	mux.HandleFunc("DELETE /api/v1/users/{id}", users.Delete)

	mux.HandleFunc("GET /api/v1/private-profiles", private.List)
	mux.HandleFunc("POST /api/v1/private-profiles", private.Create)
	mux.HandleFunc("GET /api/v1/private-profiles/{id}", private.Get)
	mux.HandleFunc("PUT /api/v1/private-profiles/{id}", private.Update)
	mux.HandleFunc("DELETE /api/v1/private-profiles/{id}", private.Delete)

	mux.HandleFunc("POST /api/v1/media", media.Upload)
}

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Users        UserStore
	Sessions     SessionManager
	Profiles     ProfileStore
	Comments     CommentStore
	Private      PrivateProfileStore
	Media        MediaStorage
	LoginLimiter RateLimiter
}
