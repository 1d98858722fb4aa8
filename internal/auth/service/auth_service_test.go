package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Totenem/Time-Tracker-App/internal/auth/domain"
	"github.com/Totenem/Time-Tracker-App/internal/auth/repository"
	"github.com/Totenem/Time-Tracker-App/internal/auth/service"
	"github.com/Totenem/Time-Tracker-App/internal/common/clock"
	commonerrors "github.com/Totenem/Time-Tracker-App/internal/common/errors"
	"github.com/Totenem/Time-Tracker-App/internal/common/logger"
)

type mockUserRepo struct {
	createFunc         func(ctx context.Context, user domain.User) error
	findByUsernameFunc func(ctx context.Context, username string) (domain.User, error)
	usernameExistsFunc func(ctx context.Context, username string) (bool, error)
	emailExistsFunc    func(ctx context.Context, email string) (bool, error)

	created []domain.User
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) error {
	m.created = append(m.created, user)
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (domain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return domain.User{}, repository.ErrUserNotFound
}

func (m *mockUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	if m.usernameExistsFunc != nil {
		return m.usernameExistsFunc(ctx, username)
	}
	return false, nil
}

func (m *mockUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	if m.emailExistsFunc != nil {
		return m.emailExistsFunc(ctx, email)
	}
	return false, nil
}

type mockHasher struct {
	hashFunc    func(password string) (string, error)
	compareFunc func(hash, password string) error

	hashCalls    int
	compareCalls int
}

func (m *mockHasher) Hash(password string) (string, error) {
	m.hashCalls++
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *mockHasher) Compare(hash, password string) error {
	m.compareCalls++
	if m.compareFunc != nil {
		return m.compareFunc(hash, password)
	}
	return nil
}

type fixedIDGenerator struct {
	id string
}

func (g *fixedIDGenerator) NewID() (string, error) {
	return g.id, nil
}

func newAuthService(t *testing.T, repo *mockUserRepo, hasher *mockHasher) *service.AuthService {
	t.Helper()
	clk := clock.NewMockClock(time.Date(2025, time.March, 12, 10, 0, 0, 0, time.UTC))
	tokens, err := service.NewTokenService(testSecret, 24*time.Hour, clock.NewRealClock())
	if err != nil {
		t.Fatalf("failed to build token service: %v", err)
	}
	return service.NewAuthService(repo, hasher, tokens, &fixedIDGenerator{id: "id-1"}, clk, logger.NewForTesting())
}

func TestAuthService_Signup_NormalizesInputs(t *testing.T) {
	repo := &mockUserRepo{}
	hasher := &mockHasher{}
	auth := newAuthService(t, repo, hasher)

	result, err := auth.Signup(context.Background(), service.SignupInput{
		Username: "TestUser123",
		Email:    "Test@Example.COM",
		Password: "TestPassword123",
	})
	if err != nil {
		t.Fatalf("expected signup to succeed, got %v", err)
	}

	if len(repo.created) != 1 {
		t.Fatalf("expected one created user, got %d", len(repo.created))
	}

	user := repo.created[0]
	if user.Username != "testuser123" {
		t.Errorf("expected normalized username, got %q", user.Username)
	}
	if user.Email != "test@example.com" {
		t.Errorf("expected normalized email, got %q", user.Email)
	}
	if user.PasswordHash == "TestPassword123" {
		t.Error("password must not be stored in plaintext")
	}

	tokens, buildErr := service.NewTokenService(testSecret, 24*time.Hour, clock.NewRealClock())
	if buildErr != nil {
		t.Fatalf("failed to build token service: %v", buildErr)
	}
	claims, err := tokens.Verify(result.Token)
	if err != nil {
		t.Fatalf("issued token must verify, got %v", err)
	}
	if claims.Username != "testuser123" {
		t.Errorf("expected token username %q, got %q", "testuser123", claims.Username)
	}
	if claims.UserID != "id-1" {
		t.Errorf("expected token user id %q, got %q", "id-1", claims.UserID)
	}
}

func TestAuthService_Signup_ValidationFailures(t *testing.T) {
	testCases := []struct {
		name  string
		input service.SignupInput
	}{
		{"bad username", service.SignupInput{Username: "bad user", Email: "a@b.co", Password: "Password1"}},
		{"bad email", service.SignupInput{Username: "user1", Email: "nonsense", Password: "Password1"}},
		{"short password", service.SignupInput{Username: "user1", Email: "a@b.co", Password: "short1A"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &mockUserRepo{}
			hasher := &mockHasher{}
			auth := newAuthService(t, repo, hasher)

			_, err := auth.Signup(context.Background(), tc.input)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !commonerrors.IsValidation(err) {
				t.Errorf("expected validation category, got %v", err)
			}
			if len(repo.created) != 0 {
				t.Error("no user should be persisted on validation failure")
			}
			if hasher.hashCalls != 0 {
				t.Error("password should not be hashed on validation failure")
			}
		})
	}
}

func TestAuthService_Signup_UsernameTaken(t *testing.T) {
	repo := &mockUserRepo{
		usernameExistsFunc: func(ctx context.Context, username string) (bool, error) {
			return true, nil
		},
	}
	auth := newAuthService(t, repo, &mockHasher{})

	_, err := auth.Signup(context.Background(), service.SignupInput{
		Username: "taken1",
		Email:    "a@b.co",
		Password: "Password1",
	})
	if !errors.Is(err, service.ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Signup_RaceLosesToConstraint(t *testing.T) {
	// Existence checks pass, but a concurrent signup wins the insert.
	repo := &mockUserRepo{
		createFunc: func(ctx context.Context, user domain.User) error {
			return repository.ErrUsernameAlreadyExists
		},
	}
	auth := newAuthService(t, repo, &mockHasher{})

	_, err := auth.Signup(context.Background(), service.SignupInput{
		Username: "racer1",
		Email:    "r@b.co",
		Password: "Password1",
	})
	if !errors.Is(err, service.ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_Signup_EmailTaken(t *testing.T) {
	repo := &mockUserRepo{
		emailExistsFunc: func(ctx context.Context, email string) (bool, error) {
			return true, nil
		},
	}
	auth := newAuthService(t, repo, &mockHasher{})

	_, err := auth.Signup(context.Background(), service.SignupInput{
		Username: "user1",
		Email:    "taken@b.co",
		Password: "Password1",
	})
	if !errors.Is(err, service.ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	repo := &mockUserRepo{}
	hasher := &mockHasher{}
	auth := newAuthService(t, repo, hasher)

	_, err := auth.Login(context.Background(), service.LoginInput{
		Username: "nobody1",
		Password: "Password1",
	})
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if hasher.compareCalls != 0 {
		t.Error("no password comparison should happen for an unknown user")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := &mockUserRepo{
		findByUsernameFunc: func(ctx context.Context, username string) (domain.User, error) {
			return domain.User{ID: "id-1", Username: username, PasswordHash: "stored-hash"}, nil
		},
	}
	hasher := &mockHasher{
		compareFunc: func(hash, password string) error {
			return bcrypt.ErrMismatchedHashAndPassword
		},
	}
	auth := newAuthService(t, repo, hasher)

	_, err := auth.Login(context.Background(), service.LoginInput{
		Username: "user1",
		Password: "WrongPassword1",
	})
	if !errors.Is(err, service.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := &mockUserRepo{
		findByUsernameFunc: func(ctx context.Context, username string) (domain.User, error) {
			return domain.User{ID: "id-9", Username: username, PasswordHash: "stored-hash"}, nil
		},
	}
	auth := newAuthService(t, repo, &mockHasher{})

	result, err := auth.Login(context.Background(), service.LoginInput{
		Username: "  TestUser123 ",
		Password: "TestPassword123",
	})
	if err != nil {
		t.Fatalf("expected login to succeed, got %v", err)
	}
	if result.Username != "testuser123" {
		t.Errorf("expected normalized username, got %q", result.Username)
	}
	if result.Token == "" {
		t.Error("expected a token")
	}
}
