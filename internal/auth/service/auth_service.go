package service

import (
	"context"
	"errors"
	"strings"

	"github.com/AlibekovAA/microblog/internal/common/clock"
	"github.com/AlibekovAA/microblog/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/microblog/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/microblog/internal/common/errors"
	"github.com/AlibekovAA/microblog/internal/common/logger"
	"github.com/AlibekovAA/microblog/internal/observability/metrics"
	userdomain "github.com/AlibekovAA/microblog/internal/user/domain"
	userrepo "github.com/AlibekovAA/microblog/internal/user/repository"
)

type TokenIssuer interface {
	Issue(accountID, handle string) (string, error)
}

type AuthServiceDeps struct {
	Repo        userrepo.Repository
	Hasher      commoncrypto.PasswordHasher
	IDGenerator commoncrypto.IDGenerator
	Tokens      TokenIssuer
	Clock       clock.Clock
	Log         *logger.Logger
}

type AuthService struct {
	repo        userrepo.Repository
	hasher      commoncrypto.PasswordHasher
	idGenerator commoncrypto.IDGenerator
	tokens      TokenIssuer
	clock       clock.Clock
	log         *logger.Logger
}

func NewAuthService(deps AuthServiceDeps) *AuthService {
	clk := deps.Clock
	if clk == nil {
		clk = clock.NewRealClock()
	}
	return &AuthService{
		repo:        deps.Repo,
		hasher:      deps.Hasher,
		idGenerator: deps.IDGenerator,
		tokens:      deps.Tokens,
		clock:       clk,
		log:         deps.Log,
	}
}

type SignupInput struct {
	Email    string
	Username string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Signup(ctx context.Context, input SignupInput) (string, error) {
	email := NormalizeEmail(input.Email)
	username := strings.TrimSpace(input.Username)

	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "signup_attempt",
	}).Info("signup attempt")

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signup_email_exists",
		}).Warn("signup failed: email already in use")
		return "", ErrEmailTaken
	} else if !errors.Is(err, userrepo.ErrUserNotFound) {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signup_lookup_failed",
		}).Errorf("signup failed: %v", err)
		return "", commonerrors.ErrDatabaseError.WithCause(err)
	}

	if len(input.Password) > constants.PasswordMaxLength {
		return "", ErrPasswordTooLong
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signup_hash_failed",
		}).Errorf("signup failed: password hash error: %v", err)
		return "", commonerrors.ErrInternalError.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signup_id_generation_failed",
		}).Errorf("signup failed: id generation error: %v", err)
		return "", commonerrors.ErrInternalError.WithCause(err)
	}

	user := userdomain.User{
		ID:           userdomain.ID(id),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    s.clock.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "signup_email_exists",
			}).Warn("signup failed: email already in use")
			return "", ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "signup_create_failed",
		}).Errorf("signup failed: %v", err)
		return "", commonerrors.ErrDatabaseError.WithCause(err)
	}

	token, err := s.tokens.Issue(string(user.ID), user.Username)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "signup_token_issue_failed",
		}).Errorf("signup failed: token issue error: %v", err)
		return "", commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.SignupsTotal.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "signup_success",
	}).Info("signup success")

	return token, nil
}

// Login answers ErrInvalidCredentials for both an unknown email and a wrong
// password so callers cannot probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, error) {
	email := NormalizeEmail(input.Email)

	s.log.WithFields(ctx, logger.Fields{
		"email":  email,
		"action": "login_attempt",
	}).Info("login attempt")

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			s.log.WithFields(ctx, logger.Fields{
				"email":  email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			return "", ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"email":  email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return "", commonerrors.ErrDatabaseError.WithCause(err)
	}

	if !s.hasher.Matches(user.PasswordHash, input.Password) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "login_invalid_password",
		}).Warn("login failed: invalid password")
		return "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(string(user.ID), user.Username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return "", commonerrors.ErrInternalError.WithCause(err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	return token, nil
}

func (s *AuthService) Me(ctx context.Context, userID string) (userdomain.User, error) {
	user, err := s.repo.FindByID(ctx, userdomain.ID(userID))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": userID,
				"action":  "me_user_not_found",
			}).Warn("me failed: account no longer exists")
			return userdomain.User{}, ErrUserNotFound
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": userID,
			"action":  "me_fetch_failed",
		}).Errorf("me failed: %v", err)
		return userdomain.User{}, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return user, nil
}
