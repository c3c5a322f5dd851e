package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/auth"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/storefront-service/internal/repository"
)

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *entity.User `json:"user"`
}

type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*entity.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, session *entity.Session) error
	Authenticate(ctx context.Context, token string) (*entity.Session, error)
	Me(ctx context.Context, session *entity.Session) (*entity.User, error)
	EnsureAdmin(ctx context.Context, email, password string) error
}

type authService struct {
	userRepo repository.UserRepository
	sessions repository.SessionStore
	hasher   *auth.PasswordHasher
	tokens   *auth.TokenManager
	log      logger.Logger
}

func NewAuthService(
	userRepo repository.UserRepository,
	sessions repository.SessionStore,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	log logger.Logger,
) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
		hasher:   hasher,
		tokens:   tokens,
		log:      log,
	}
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) (*entity.User, error) {
	ctx, span := tracer.Start(ctx, "AuthService.Signup")
	defer span.End()

	req.Email = entity.NormalizeEmail(req.Email)
	if err := entity.Validate(&req); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, req.Email); err == nil {
		s.log.Infof("Signup rejected, email %s already registered", req.Email)
		return nil, fmt.Errorf("email %s: %w", req.Email, ErrConflict)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeFailure("look up email", err)
	}

	return s.register(ctx, req.Name, req.Email, req.Password, entity.RoleUser)
}

func (s *authService) register(ctx context.Context, name, email, password string, role entity.Role) (*entity.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, entity.NewValidationError("password", "must be at most 72 bytes")
		}
		return nil, err
	}

	user, err := entity.NewUser(name, email, hash, role)
	if err != nil {
		return nil, err
	}

	// The unique index still catches a concurrent signup for the same email.
	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, storeFailure("create user", err)
	}
	user.ID = id

	s.log.Infof("User %s registered with role %s", id, role)
	return user, nil
}

// Login answers every credential problem with the same ErrUnauthorized so the
// response does not reveal which emails are registered.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	ctx, span := tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	if err := entity.Validate(&req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, entity.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, storeFailure("look up user", err)
	}
	if !user.IsActive || !s.hasher.Check(user.PasswordHash, req.Password) {
		s.log.Infof("Failed login for user %s", user.ID)
		return nil, ErrUnauthorized
	}

	token, claims, err := s.tokens.Generate(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	session := &entity.Session{
		TokenID:   claims.ID,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, storeFailure("save session", err)
	}

	return &LoginResult{Token: token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

func (s *authService) Logout(ctx context.Context, session *entity.Session) error {
	if err := s.sessions.Delete(ctx, session.TokenID); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return storeFailure("delete session", err)
	}
	s.log.Infof("Session %s revoked for user %s", session.TokenID, session.UserID)
	return nil
}

// Authenticate accepts a token only while its session is stored.
func (s *authService) Authenticate(ctx context.Context, token string) (*entity.Session, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	session, err := s.sessions.Get(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: session revoked or expired", ErrUnauthorized)
		}
		return nil, storeFailure("load session", err)
	}
	return session, nil
}

func (s *authService) Me(ctx context.Context, session *entity.Session) (*entity.User, error) {
	oid, err := parseID(session.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	user, err := s.userRepo.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUnauthorized
		}
		return nil, storeFailure("load user", err)
	}
	return user, nil
}

// EnsureAdmin creates the bootstrap admin account once. An existing account
// with that email is left untouched.
func (s *authService) EnsureAdmin(ctx context.Context, email, password string) error {
	email = entity.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		if !existing.IsAdmin() {
			s.log.Warnf("Bootstrap admin email %s belongs to a non-admin user, leaving it unchanged", email)
		}
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return storeFailure("look up bootstrap admin", err)
	}

	if _, err := s.register(ctx, "", email, password, entity.RoleAdmin); err != nil {
		if errors.Is(err, ErrConflict) {
			return nil
		}
		return fmt.Errorf("create bootstrap admin: %w", err)
	}
	return nil
}
