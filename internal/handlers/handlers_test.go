package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/google/uuid"

	"github.com/meatdealer/backend/internal/auth"
	"github.com/meatdealer/backend/internal/models"
	"github.com/meatdealer/backend/internal/repositories"
)

type memUserStore struct {
	users map[string]models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]models.User)}
}

func (s *memUserStore) Create(_ context.Context, user models.User) error {
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return repositories.ErrConflict
		}
	}
	s.users[user.ID] = user
	return nil
}

func (s *memUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *memUserStore) FindByID(_ context.Context, id string) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return user, nil
}

func (s *memUserStore) List(_ context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (s *memUserStore) Update(_ context.Context, user models.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.users[user.ID] = user
	return nil
}

func (s *memUserStore) Delete(_ context.Context, id string) error {
	if _, ok := s.users[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

type memProfileStore struct {
	profiles map[string]models.Profile
	likes    map[string]map[string]bool
	users    *memUserStore
}

func newMemProfileStore(users *memUserStore) *memProfileStore {
	return &memProfileStore{
		profiles: make(map[string]models.Profile),
		likes:    make(map[string]map[string]bool),
		users:    users,
	}
}

func (s *memProfileStore) Create(_ context.Context, profile models.Profile) error {
	if _, ok := s.profiles[profile.ID]; ok {
		return repositories.ErrConflict
	}
	s.profiles[profile.ID] = profile
	return nil
}

func (s *memProfileStore) Get(_ context.Context, id, viewerID string) (models.Profile, error) {
	profile, ok := s.profiles[id]
	if !ok {
		return models.Profile{}, repositories.ErrNotFound
	}
	return s.annotate(profile, viewerID), nil
}

func (s *memProfileStore) List(_ context.Context, viewerID string) ([]models.Profile, error) {
	profiles := make([]models.Profile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		profiles = append(profiles, s.annotate(profile, viewerID))
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].CreatedAt.After(profiles[j].CreatedAt) })
	return profiles, nil
}

func (s *memProfileStore) Update(_ context.Context, profile models.Profile) error {
	existing, ok := s.profiles[profile.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	profile.CreatedBy = existing.CreatedBy
	s.profiles[profile.ID] = profile
	return nil
}

func (s *memProfileStore) Delete(_ context.Context, id string) error {
	if _, ok := s.profiles[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.profiles, id)
	delete(s.likes, id)
	return nil
}

func (s *memProfileStore) ToggleLike(ctx context.Context, profileID, userID string) (models.Profile, error) {
	if _, ok := s.profiles[profileID]; !ok {
		return models.Profile{}, repositories.ErrNotFound
	}
	if s.likes[profileID] == nil {
		s.likes[profileID] = make(map[string]bool)
	}
	if s.likes[profileID][userID] {
		delete(s.likes[profileID], userID)
	} else {
		s.likes[profileID][userID] = true
	}
	return s.Get(ctx, profileID, userID)
}

func (s *memProfileStore) annotate(profile models.Profile, viewerID string) models.Profile {
	likes := s.likes[profile.ID]
	profile.LikesCount = len(likes)
	profile.IsLikedByCurrentUser = viewerID != "" && likes[viewerID]
	profile.LikedByUsers = nil
	for userID := range likes {
		if user, ok := s.users.users[userID]; ok {
			profile.LikedByUsers = append(profile.LikedByUsers, user)
		}
	}
	return profile
}

type memCommentStore struct {
	comments map[string]models.Comment
}

func newMemCommentStore() *memCommentStore {
	return &memCommentStore{comments: make(map[string]models.Comment)}
}

func (s *memCommentStore) Create(_ context.Context, comment models.Comment) error {
	s.comments[comment.ID] = comment
	return nil
}

func (s *memCommentStore) ListApproved(_ context.Context, profileID string) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range s.comments {
		if comment.ProfileID == profileID && comment.Approved {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (s *memCommentStore) ListPending(_ context.Context) ([]models.Comment, error) {
	var out []models.Comment
	for _, comment := range s.comments {
		if !comment.Approved {
			out = append(out, comment)
		}
	}
	return out, nil
}

func (s *memCommentStore) SetApproved(_ context.Context, id string, approved bool) error {
	comment, ok := s.comments[id]
	if !ok {
		return repositories.ErrNotFound
	}
	comment.Approved = approved
	s.comments[id] = comment
	return nil
}

func (s *memCommentStore) Delete(_ context.Context, id string) error {
	if _, ok := s.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}

type memPrivateStore struct {
	profiles map[string]models.PrivateProfile
}

func newMemPrivateStore() *memPrivateStore {
	return &memPrivateStore{profiles: make(map[string]models.PrivateProfile)}
}

func (s *memPrivateStore) Create(_ context.Context, profile models.PrivateProfile) error {
	s.profiles[profile.ID] = profile
	return nil
}

func (s *memPrivateStore) Get(_ context.Context, id string) (models.PrivateProfile, error) {
	profile, ok := s.profiles[id]
	if !ok {
		return models.PrivateProfile{}, repositories.ErrNotFound
	}
	return profile, nil
}

func (s *memPrivateStore) List(_ context.Context) ([]models.PrivateProfile, error) {
	profiles := make([]models.PrivateProfile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (s *memPrivateStore) Update(_ context.Context, profile models.PrivateProfile) error {
	if _, ok := s.profiles[profile.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.profiles[profile.ID] = profile
	return nil
}

func (s *memPrivateStore) Delete(_ context.Context, id string) error {
	if _, ok := s.profiles[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.profiles, id)
	return nil
}

type memMediaStorage struct {
	uploads map[string]string
}

func newMemMediaStorage() *memMediaStorage {
	return &memMediaStorage{uploads: make(map[string]string)}
}

func (s *memMediaStorage) Upload(_ context.Context, key string, contentType string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	s.uploads[key] = contentType + ":" + string(data)
	return "https://cdn.test/" + key, nil
}

type allowAllLimiter struct{}

func (allowAllLimiter) Allow(string) bool { return true }

type denyAllLimiter struct{}

func (denyAllLimiter) Allow(string) bool { return false }

type testEnv struct {
	mux      *http.ServeMux
	users    *memUserStore
	profiles *memProfileStore
	comments *memCommentStore
	private  *memPrivateStore
	media    *memMediaStorage
	sessions *auth.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := newMemUserStore()
	env := &testEnv{
		mux:      http.NewServeMux(),
		users:    users,
		profiles: newMemProfileStore(users),
		comments: newMemCommentStore(),
		private:  newMemPrivateStore(),
		media:    newMemMediaStorage(),
		sessions: auth.NewManager(time.Minute, time.Hour, auth.NewInMemorySessionStore()),
	}

	RegisterRoutes(env.mux, Dependencies{
		Users:        env.users,
		Sessions:     env.sessions,
		Profiles:     env.profiles,
		Comments:     env.comments,
		Private:      env.private,
		Media:        env.media,
		LoginLimiter: allowAllLimiter{},
	})

	return env
}

func (env *testEnv) addUser(t *testing.T, username, password, role string, privateAccess bool) models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		ID:               uuid.NewString(),
		Username:         username,
		FullName:         username + " test",
		Password:         string(hashed),
		Role:             role,
		CanAccessPrivate: privateAccess,
		CreatedAt:        time.Now().UTC(),
		UpdatedAt:        time.Now().UTC(),
	}
	if err := env.users.Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (env *testEnv) token(t *testing.T, user models.User) string {
	t.Helper()
	tokens, err := env.sessions.Issue(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}
	return tokens.AccessToken
}

func (env *testEnv) addProfile(t *testing.T, creator *models.User) models.Profile {
	t.Helper()

	profile := models.Profile{
		ID:          uuid.NewString(),
		FirstName:   "Maria",
		LastName:    "Lopez",
		Age:         25,
		MusicTags:   []string{"bachata"},
		Photos:      []string{"https://cdn.test/photo.jpg"},
		IsAvailable: true,
		CreatedBy:   creator,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := env.profiles.Create(context.Background(), profile); err != nil {
		t.Fatalf("create profile: %v", err)
	}
	return profile
}

func (env *testEnv) do(t *testing.T, method, path, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}
