package identity

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/schoolms/backend/internal/domain/identity"
	"github.com/schoolms/backend/internal/domain/shared"
	"github.com/schoolms/backend/internal/infrastructure/auth"
)

// ErrInvalidCredentials is returned for unknown accounts and wrong passwords
// alike so login failures do not reveal which accounts exist.
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")

// ErrAccountNotActive is returned when a known account may not log in
var ErrAccountNotActive = shared.NewDomainError("ACCOUNT_NOT_ACTIVE", "Account is not active")

// AuthService handles login and logout
type AuthService struct {
	userRepo  identity.UserRepository
	jwt       *auth.JWTService
	blacklist auth.TokenBlacklist
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	jwt *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		jwt:       jwt,
		blacklist: blacklist,
		logger:    logger,
	}
}

// Login verifies the credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.VerifyPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}
	if !user.CanLogin() {
		return nil, ErrAccountNotActive
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Save(ctx, user); err != nil {
		// The login itself succeeded; the timestamp is advisory.
		s.logger.Warn("Failed to record login time",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
	}

	return toLoginResponse(token, user), nil
}

// Logout revokes the presented token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	ttl := claims.GetRemainingTTL()
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.Revoke(ctx, claims.ID, ttl)
}
