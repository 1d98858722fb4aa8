package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/Totenem/Time-Tracker-App/internal/auth/domain"
	"github.com/Totenem/Time-Tracker-App/internal/auth/repository"
	"github.com/Totenem/Time-Tracker-App/internal/common/clock"
	commoncrypto "github.com/Totenem/Time-Tracker-App/internal/common/crypto"
	commonerrors "github.com/Totenem/Time-Tracker-App/internal/common/errors"
	"github.com/Totenem/Time-Tracker-App/internal/common/jwtverify"
	"github.com/Totenem/Time-Tracker-App/internal/common/logger"
	"github.com/Totenem/Time-Tracker-App/internal/observability/metrics"
)

type AuthService struct {
	repo        repository.Repository
	hasher      commoncrypto.PasswordHasher
	tokens      *TokenService
	idGenerator commoncrypto.IDGenerator
	clock       clock.Clock
	log         *logger.Logger
}

func NewAuthService(
	repo repository.Repository,
	hasher commoncrypto.PasswordHasher,
	tokens *TokenService,
	idGenerator commoncrypto.IDGenerator,
	clk clock.Clock,
	log *logger.Logger,
) *AuthService {
	return &AuthService{
		repo:        repo,
		hasher:      hasher,
		tokens:      tokens,
		idGenerator: idGenerator,
		clock:       clk,
		log:         log,
	}
}

type SignupInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthResult struct {
	Token    string
	Username string
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "signup_attempt",
	}).Info("signup attempt")

	username, err := NormalizeUsername(input.Username)
	if err != nil {
		return AuthResult{}, err
	}

	email, err := NormalizeEmail(input.Email)
	if err != nil {
		return AuthResult{}, err
	}

	password, err := ValidatePassword(input.Password)
	if err != nil {
		return AuthResult{}, err
	}

	taken, err := s.repo.UsernameExists(ctx, username)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "signup_username_check_failed",
		}).Errorf("signup failed: %v", err)
		return AuthResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}
	if taken {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "signup_username_exists",
		}).Warn("signup failed: username already exists")
		return AuthResult{}, ErrUsernameTaken
	}

	taken, err = s.repo.EmailExists(ctx, email)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "signup_email_check_failed",
		}).Errorf("signup failed: %v", err)
		return AuthResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}
	if taken {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "signup_email_exists",
		}).Warn("signup failed: email already exists")
		return AuthResult{}, ErrEmailTaken
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "signup_hash_failed",
		}).Errorf("signup failed: password hash error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	user := domain.User{
		ID:           domain.ID(id),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now(),
	}

	// The existence checks above are advisory: the unique constraints on
	// username and email close the concurrent-signup race.
	if err := s.repo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameAlreadyExists):
			return AuthResult{}, ErrUsernameTaken
		case errors.Is(err, repository.ErrEmailAlreadyExists):
			return AuthResult{}, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "signup_create_failed",
		}).Errorf("signup failed: %v", err)
		return AuthResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	token, err := s.tokens.Issue(jwtverify.Claims{
		UserID:   id,
		Username: username,
		IssuedAt: user.CreatedAt,
	})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"user_id":  id,
			"action":   "signup_token_issue_failed",
		}).Errorf("signup failed: token issue error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.UsersRegistered.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": username,
		"user_id":  id,
		"action":   "signup_success",
	}).Info("signup success")

	return AuthResult{Token: token, Username: username}, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	s.log.WithFields(ctx, logger.Fields{
		"username": input.Username,
		"action":   "login_attempt",
	}).Info("login attempt")

	// Login re-normalizes a value that may already be canonical;
	// normalization is idempotent so this is safe.
	username, err := NormalizeUsername(input.Username)
	if err != nil {
		return AuthResult{}, err
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"username": username,
				"action":   "login_user_not_found",
			}).Warn("login failed: user not found")
			metrics.LoginsTotal.WithLabelValues("not_found").Inc()
			return AuthResult{}, ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return AuthResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			s.log.WithFields(ctx, logger.Fields{
				"username": username,
				"action":   "login_invalid_password",
			}).Warn("login failed: invalid password")
			metrics.LoginsTotal.WithLabelValues("invalid_password").Inc()
			return AuthResult{}, ErrInvalidCredentials
		}
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"action":   "login_hash_malformed",
		}).Errorf("login failed: %v", err)
		return AuthResult{}, commonerrors.ErrInvalidHash.WithCause(err)
	}

	token, err := s.tokens.Issue(jwtverify.Claims{
		UserID:   string(user.ID),
		Username: user.Username,
		IssuedAt: s.clock.Now(),
	})
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"username": username,
			"user_id":  string(user.ID),
			"action":   "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"username": user.Username,
		"user_id":  string(user.ID),
		"action":   "login_success",
	}).Info("login success")

	return AuthResult{Token: token, Username: user.Username}, nil
}
