package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Totenem/Time-Tracker-App/internal/auth/domain"
	authhttp "github.com/Totenem/Time-Tracker-App/internal/auth/http"
	"github.com/Totenem/Time-Tracker-App/internal/auth/repository"
	"github.com/Totenem/Time-Tracker-App/internal/auth/service"
	"github.com/Totenem/Time-Tracker-App/internal/common/clock"
	"github.com/Totenem/Time-Tracker-App/internal/common/crypto"
	"github.com/Totenem/Time-Tracker-App/internal/common/logger"
)

const routerSecret = "router-test-secret-that-is-long-enough!"

// memoryUserRepo backs handler tests with an in-process user store so full
// signup-then-login flows run without a database.
type memoryUserRepo struct {
	byUsername map[string]domain.User
	byEmail    map[string]domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		byUsername: make(map[string]domain.User),
		byEmail:    make(map[string]domain.User),
	}
}

func (m *memoryUserRepo) Create(ctx context.Context, user domain.User) error {
	if _, ok := m.byUsername[user.Username]; ok {
		return repository.ErrUsernameAlreadyExists
	}
	if _, ok := m.byEmail[user.Email]; ok {
		return repository.ErrEmailAlreadyExists
	}
	m.byUsername[user.Username] = user
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUserRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	user, ok := m.byUsername[username]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *memoryUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	_, ok := m.byUsername[username]
	return ok, nil
}

func (m *memoryUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

// fastHasher avoids bcrypt cost in handler tests.
type fastHasher struct{}

func (fastHasher) Hash(password string) (string, error) { return "h:" + password, nil }

func (fastHasher) Compare(hash, password string) error {
	if hash != "h:"+password {
		return bcrypt.ErrMismatchedHashAndPassword
	}
	return nil
}

type seqIDGenerator struct{ n int }

func (g *seqIDGenerator) NewID() (string, error) {
	g.n++
	return "user-" + string(rune('0'+g.n)), nil
}

func newAuthMux(t *testing.T) *http.ServeMux {
	t.Helper()
	log := logger.NewForTesting()
	tokens, err := service.NewTokenService(routerSecret, 24*time.Hour, clock.NewRealClock())
	if err != nil {
		t.Fatalf("failed to build token service: %v", err)
	}
	var hasher crypto.PasswordHasher = fastHasher{}
	auth := service.NewAuthService(newMemoryUserRepo(), hasher, tokens, &seqIDGenerator{}, clock.NewRealClock(), log)
	handler := authhttp.NewHandler(auth, 5*time.Second, log)

	mux := http.NewServeMux()
	handler.Register(mux)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestSignupEndpoint_Success(t *testing.T) {
	mux := newAuthMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/v1/auth/signup",
		`{"username":"TestUser123","email":"Test@Example.COM","password":"TestPassword123"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Message != "User created successfully" {
		t.Errorf("unexpected message %q", body.Message)
	}
	if body.Token == "" {
		t.Fatal("expected a token in the response")
	}

	tokens, err := service.NewTokenService(routerSecret, 24*time.Hour, clock.NewRealClock())
	if err != nil {
		t.Fatalf("failed to build token service: %v", err)
	}
	claims, err := tokens.Verify(body.Token)
	if err != nil {
		t.Fatalf("issued token must verify: %v", err)
	}
	if claims.Username != "testuser123" {
		t.Errorf("expected normalized username in token, got %q", claims.Username)
	}
}

func TestSignupEndpoint_Failures(t *testing.T) {
	testCases := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"invalid json", `{"username":`, http.StatusBadRequest},
		{"missing fields", `{"username":"user1"}`, http.StatusBadRequest},
		{"bad username", `{"username":"bad user","email":"a@b.co","password":"Password1"}`, http.StatusBadRequest},
		{"bad email", `{"username":"user1","email":"nope","password":"Password1"}`, http.StatusBadRequest},
		{"weak password", `{"username":"user1","email":"a@b.co","password":"alllower1"}`, http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mux := newAuthMux(t)
			rec := doJSON(t, mux, http.MethodPost, "/v1/auth/signup", tc.body)
			if rec.Code != tc.wantStatus {
				t.Errorf("expected %d, got %d: %s", tc.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSignupEndpoint_DuplicateUsername(t *testing.T) {
	mux := newAuthMux(t)

	first := doJSON(t, mux, http.MethodPost, "/v1/auth/signup",
		`{"username":"user1","email":"first@b.co","password":"Password1"}`)
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201 for the first signup, got %d", first.Code)
	}

	second := doJSON(t, mux, http.MethodPost, "/v1/auth/signup",
		`{"username":"User1","email":"second@b.co","password":"Password1"}`)
	if second.Code != http.StatusConflict {
		t.Errorf("expected 409 for a duplicate username, got %d: %s", second.Code, second.Body.String())
	}
}

func TestSignupEndpoint_DuplicateEmail(t *testing.T) {
	mux := newAuthMux(t)

	doJSON(t, mux, http.MethodPost, "/v1/auth/signup",
		`{"username":"user1","email":"shared@b.co","password":"Password1"}`)

	second := doJSON(t, mux, http.MethodPost, "/v1/auth/signup",
		`{"username":"user2","email":"Shared@B.CO","password":"Password1"}`)
	if second.Code != http.StatusConflict {
		t.Errorf("expected 409 for a duplicate email, got %d: %s", second.Code, second.Body.String())
	}
}

func TestLoginEndpoint(t *testing.T) {
	mux := newAuthMux(t)

	doJSON(t, mux, http.MethodPost, "/v1/auth/signup",
		`{"username":"TestUser123","email":"a@b.co","password":"TestPassword123"}`)

	t.Run("success with unnormalized username", func(t *testing.T) {
		rec := doJSON(t, mux, http.MethodPost, "/v1/auth/login",
			`{"username":"TestUser123","password":"TestPassword123"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var body struct {
			Username string `json:"username"`
			Message  string `json:"message"`
			Token    string `json:"token"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if body.Username != "testuser123" {
			t.Errorf("expected normalized username, got %q", body.Username)
		}
		if body.Message != "User logged in successfully" {
			t.Errorf("unexpected message %q", body.Message)
		}
		if body.Token == "" {
			t.Error("expected a token")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		rec := doJSON(t, mux, http.MethodPost, "/v1/auth/login",
			`{"username":"nobody1","password":"Password1"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := doJSON(t, mux, http.MethodPost, "/v1/auth/login",
			`{"username":"TestUser123","password":"WrongPassword1"}`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestLogoutEndpoint(t *testing.T) {
	mux := newAuthMux(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body.Message != "User logged out successfully" {
		t.Errorf("unexpected message %q", body.Message)
	}
}

func TestAuthEndpoints_MethodNotAllowed(t *testing.T) {
	mux := newAuthMux(t)

	testCases := []struct {
		path   string
		method string
	}{
		{"/v1/auth/signup", http.MethodGet},
		{"/v1/auth/login", http.MethodGet},
		{"/v1/auth/logout", http.MethodPost},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			if rec.Code != http.StatusMethodNotAllowed {
				t.Errorf("expected 405, got %d", rec.Code)
			}
		})
	}
}
