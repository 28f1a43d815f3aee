package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/karnbhushan1994/freefortalk/internal/core/domain"
	"github.com/karnbhushan1994/freefortalk/internal/core/ports"
	"github.com/karnbhushan1994/freefortalk/internal/metrics"
)

const (
	msgSignupFields    = domain.MsgSignupFieldsRequired
	msgLoginFields     = domain.MsgLoginFieldsRequired
	msgEmailRegistered = "Email already registered"
	msgUnknownRole     = "role must be one of: user admin"
	msgRoleNotAllowed  = "role cannot be self-assigned"
	msgPasswordTooLong = "password must be at most 72 bytes"

	// maxPasswordBytes is the longest input bcrypt will hash.
	maxPasswordBytes = 72

	// dummyPassword feeds the bcrypt comparison run for unknown emails.
	dummyPassword = "freefortalk-timing-equaliser"
)

// AuthConfig holds the policy knobs of AuthService.
type AuthConfig struct {
	// AllowAdminSignup lets anonymous callers register with role "admin".
	AllowAdminSignup bool
}

// AuthService implements signup and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	cfg    AuthConfig
	log    zerolog.Logger
	now    func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, cfg AuthConfig, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		cfg:    cfg,
		log:    log,
		now:    time.Now,
	}
}

// Signup registers a new account and returns a session token for it.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (res *ports.AuthResult, err error) {
	defer func() { recordAttempt(metrics.OpSignup, err) }()

	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return nil, domain.Validation(msgSignupFields)
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, domain.Validation(msgPasswordTooLong)
	}

	role, err := s.resolveRole(in.Role)
	if err != nil {
		return nil, err
	}

	// Best-effort pre-check; the unique index is the authority.
	_, err = s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.Conflict(msgEmailRegistered)
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, domain.Internal(fmt.Errorf("signup: find user: %w", err))
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("signup: %w", err))
	}

	now := s.now().UTC()
	user, err := s.repo.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		ProfilePic:   domain.DefaultProfilePic,
		LastSeen:     now,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return nil, domain.Conflict(msgEmailRegistered)
		}
		return nil, domain.Internal(fmt.Errorf("signup: create user: %w", err))
	}

	res, err = s.issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("user_id", user.ID).
		Str("email", user.Email).
		Str("role", user.Role).
		Msg("user signed up")

	return res, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// both return domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, in ports.LoginInput) (res *ports.AuthResult, err error) {
	defer func() { recordAttempt(metrics.OpLogin, err) }()

	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.Validation(msgLoginFields)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.Internal(fmt.Errorf("login: find user: %w", err))
		}
		// Spend the same bcrypt work as a real comparison.
		_, _ = s.hasher.Verify(s.timingHash(), in.Password)
		s.log.Warn().Str("email", email).Msg("login failed")
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(user.PasswordHash, in.Password)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("login: %w", err))
	}
	if !ok {
		s.log.Warn().Str("email", email).Msg("login failed")
		return nil, domain.ErrInvalidCredentials
	}

	res, err = s.issue(user)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return res, nil
}

func (s *AuthService) issue(user *domain.User) (*ports.AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, domain.Internal(fmt.Errorf("issue token: %w", err))
	}
	return &ports.AuthResult{Token: token, User: user.Public()}, nil
}

func (s *AuthService) resolveRole(role string) (string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	switch {
	case role == "":
		return domain.RoleUser, nil
	case !domain.ValidRole(role):
		return "", domain.Validation(msgUnknownRole)
	case role == domain.RoleAdmin && !s.cfg.AllowAdminSignup:
		return "", domain.Validation(msgRoleNotAllowed)
	}
	return role, nil
}

// timingHash lazily builds a hash at the configured cost for unknown-email logins.
func (s *AuthService) timingHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash(dummyPassword)
		if err != nil {
			s.log.Error().Err(err).Msg("failed to build timing hash")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func recordAttempt(op string, err error) {
	outcome := metrics.OutcomeSuccess
	switch domain.KindOf(err) {
	case "":
	case domain.KindValidation:
		outcome = metrics.OutcomeValidation
	case domain.KindConflict:
		outcome = metrics.OutcomeConflict
	case domain.KindAuth:
		outcome = metrics.OutcomeInvalidCredentials
	default:
		outcome = metrics.OutcomeError
	}
	metrics.AuthAttemptsTotal.WithLabelValues(op, outcome).Inc()
}

var _ ports.AuthService = (*AuthService)(nil)
