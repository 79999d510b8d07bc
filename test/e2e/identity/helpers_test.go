package identity_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

/*
 * Common helpers for identity client end-to-end tests. The fake service
 * implements the wire surface the client targets (token, logout, invite,
 * recover, generate_link, admin users, health, settings) against an
 * in-memory user store, so full flows can be exercised in-process.
 */

const serviceKey = "test-service-key-12345"

type fakeService struct {
	mu       sync.Mutex
	users    map[string]map[string]any
	sessions map[string]string // refresh token -> user id
	nextID   int
}

func newFakeService() *fakeService {
	return &fakeService{
		users:    make(map[string]map[string]any),
		sessions: make(map[string]string),
	}
}

// setupService starts the fake identity service and returns its base URL.
func setupService(t *testing.T) string {
	t.Helper()

	svc := newFakeService()
	srv := httptest.NewServer(svc.handler())
	t.Cleanup(srv.Close)

	return srv.URL
}

func (s *fakeService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", s.handleToken)
	mux.HandleFunc("POST /logout", s.handleLogout)
	mux.HandleFunc("POST /invite", s.requireServiceKey(s.handleInvite))
	mux.HandleFunc("POST /recover", s.handleRecover)
	mux.HandleFunc("POST /admin/generate_link", s.requireServiceKey(s.handleGenerateLink))
	mux.HandleFunc("POST /admin/users", s.requireServiceKey(s.handleCreateUser))
	mux.HandleFunc("GET /admin/users", s.requireServiceKey(s.handleListUsers))
	mux.HandleFunc("GET /admin/users/{id}", s.requireServiceKey(s.handleGetUser))
	mux.HandleFunc("PUT /admin/users/{id}", s.requireServiceKey(s.handleUpdateUser))
	mux.HandleFunc("DELETE /admin/users/{id}", s.requireServiceKey(s.handleDeleteUser))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"version": "v0.0.0-test", "name": "fake-identity",
		})
	})
	mux.HandleFunc("GET /settings", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"external":       map[string]bool{"github": true, "google": true},
			"disable_signup": false,
			"autoconfirm":    true,
		})
	})
	return mux
}

func (s *fakeService) requireServiceKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+serviceKey {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"code": 401, "msg": "Invalid service key",
			})
			return
		}
		next(w, r)
	}
}

func (s *fakeService) handleToken(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Query().Get("grant_type") {
	case "id_token":
		var creds struct {
			IDToken  string `json:"id_token"`
			Provider string `json:"provider"`
		}
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil || creds.IDToken == "" {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"code": 400, "msg": "Invalid id token",
			})
			return
		}
		user := s.addUser(map[string]any{
			"email":        "federated@example.com",
			"app_metadata": map[string]any{"provider": creds.Provider},
		})
		s.writeSession(w, user)

	case "refresh_token":
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		s.mu.Lock()
		userID, ok := s.sessions[body.RefreshToken]
		if ok {
			delete(s.sessions, body.RefreshToken)
		}
		user := s.users[userID]
		s.mu.Unlock()

		if !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"code": 401, "msg": "Invalid Refresh Token",
			})
			return
		}
		s.writeSession(w, user)

	default:
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code": 400, "msg": "Unsupported grant type",
		})
	}
}

func (s *fakeService) handleLogout(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"code": 401, "msg": "Invalid token",
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *fakeService) handleInvite(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string         `json:"email"`
		Data  map[string]any `json:"data"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	user := s.addUser(map[string]any{
		"email":         body.Email,
		"user_metadata": body.Data,
		"invited_at":    time.Now().UTC().Format(time.RFC3339),
	})
	writeJSON(w, http.StatusOK, user)
}

func (s *fakeService) handleRecover(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	if body.Email == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"code": 422, "msg": "Invalid email",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (s *fakeService) handleGenerateLink(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Type  string `json:"type"`
		Email string `json:"email"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)

	user := s.addUser(map[string]any{"email": body.Email})
	user["action_link"] = fmt.Sprintf("http://fake/verify?type=%s&token=tok-%s", body.Type, user["id"])
	writeJSON(w, http.StatusOK, user)
}

func (s *fakeService) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var attrs map[string]any
	if err := json.NewDecoder(r.Body).Decode(&attrs); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"code": 400, "msg": "Invalid body",
		})
		return
	}
	email, _ := attrs["email"].(string)
	if !strings.Contains(email, "@") {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"code": 422, "msg": "Invalid email",
		})
		return
	}
	delete(attrs, "password")
	writeJSON(w, http.StatusOK, s.addUser(attrs))
}

func (s *fakeService) handleListUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := make([]map[string]any, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"users": users})
}

func (s *fakeService) handleGetUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	user, ok := s.users[r.PathValue("id")]
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"code": 404, "msg": "User not found",
		})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *fakeService) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var attrs map[string]any
	_ = json.NewDecoder(r.Body).Decode(&attrs)

	s.mu.Lock()
	user, ok := s.users[r.PathValue("id")]
	if ok {
		for k, v := range attrs {
			user[k] = v
		}
		user["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"code": 404, "msg": "User not found",
		})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *fakeService) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	user, ok := s.users[r.PathValue("id")]
	if ok {
		delete(s.users, r.PathValue("id"))
	}
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"code": 404, "msg": "User not found",
		})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// addUser stores a user built from the given attributes and returns it.
func (s *fakeService) addUser(attrs map[string]any) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	user := map[string]any{
		"id":         fmt.Sprintf("user-%d", s.nextID),
		"aud":        "authenticated",
		"role":       "authenticated",
		"created_at": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range attrs {
		if v != nil {
			user[k] = v
		}
	}
	s.users[user["id"].(string)] = user
	return user
}

// writeSession issues a fresh token bundle for the user.
func (s *fakeService) writeSession(w http.ResponseWriter, user map[string]any) {
	s.mu.Lock()
	s.nextID++
	refresh := fmt.Sprintf("refresh-%d", s.nextID)
	s.sessions[refresh] = user["id"].(string)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"access_token":  fmt.Sprintf("access-%s", refresh),
		"refresh_token": refresh,
		"token_type":    "bearer",
		"expires_in":    3600,
		"user":          user,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
