package usecases

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"appointme.backend/internal/domain/entities"
	domainerrors "appointme.backend/internal/domain/errors"
	"appointme.backend/internal/domain/repositories"
	"appointme.backend/pkg/crypto"
	"appointme.backend/pkg/jwt"
	"appointme.backend/pkg/logger"
	"appointme.backend/pkg/utils"
)

// TokenRevoker records revoked token ids until they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthUsecase handles marketplace user authentication
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
	revoker    TokenRevoker
}

// NewAuthUsecase creates a new auth usecase. revoker may be nil, in which case
// logout only discards tokens client-side.
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	jwtService *jwt.JWTService,
	revoker TokenRevoker,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
		revoker:    revoker,
	}
}

// Register creates a user account and signs it in.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	email := normalizeEmail(input.Email)

	_, err := u.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.Conflict("email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:                utils.NewID(),
		Name:              strings.TrimSpace(input.Name),
		Email:             email,
		PasswordHash:      passwordHash,
		ApplicationStatus: entities.ApplicationStatusNone,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("email already registered")
		}
		return nil, err
	}

	logger.Info(ctx, "User registered", zap.String("user_id", user.ID.String()))
	return issueTokens(u.jwtService, user.ID, user.Email, jwt.RoleUser, user)
}

// Login authenticates a user and returns tokens
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return issueTokens(u.jwtService, user.ID, user.Email, jwt.RoleUser, user)
}

// Refresh exchanges a refresh token for a new pair. The old refresh token is revoked.
func (u *AuthUsecase) Refresh(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := validateRefresh(ctx, u.jwtService, u.revoker, refreshToken, jwt.RoleUser)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}

	if err := revoke(ctx, u.revoker, claims); err != nil {
		return nil, err
	}
	return issueTokens(u.jwtService, user.ID, user.Email, jwt.RoleUser, user)
}

// Logout revokes the access token and, when supplied, the refresh token.
func (u *AuthUsecase) Logout(ctx context.Context, access *jwt.Claims, refreshToken string) error {
	return logout(ctx, u.jwtService, u.revoker, access, refreshToken)
}

// Me returns the authenticated user
func (u *AuthUsecase) Me(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// AdminAuthUsecase handles back-office account authentication
type AdminAuthUsecase struct {
	adminRepo  repositories.AdminRepository
	jwtService *jwt.JWTService
	revoker    TokenRevoker
}

// NewAdminAuthUsecase creates a new admin auth usecase
func NewAdminAuthUsecase(
	adminRepo repositories.AdminRepository,
	jwtService *jwt.JWTService,
	revoker TokenRevoker,
) *AdminAuthUsecase {
	return &AdminAuthUsecase{
		adminRepo:  adminRepo,
		jwtService: jwtService,
		revoker:    revoker,
	}
}

// Signup creates an admin account and signs it in.
func (u *AdminAuthUsecase) Signup(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	email := normalizeEmail(input.Email)

	_, err := u.adminRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, domainerrors.Conflict("email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	admin := &entities.Admin{
		ID:           utils.NewID(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := u.adminRepo.Create(ctx, admin); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.Conflict("email already registered")
		}
		return nil, err
	}

	logger.Info(ctx, "Admin account created", zap.String("admin_id", admin.ID.String()))
	return issueTokens(u.jwtService, admin.ID, admin.Email, jwt.RoleAdmin, admin)
}

// Login authenticates an admin and returns tokens
func (u *AdminAuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	admin, err := u.adminRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, admin.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return issueTokens(u.jwtService, admin.ID, admin.Email, jwt.RoleAdmin, admin)
}

// Refresh exchanges an admin refresh token for a new pair.
func (u *AdminAuthUsecase) Refresh(ctx context.Context, refreshToken string) (*entities.AuthResponse, error) {
	claims, err := validateRefresh(ctx, u.jwtService, u.revoker, refreshToken, jwt.RoleAdmin)
	if err != nil {
		return nil, err
	}

	admin, err := u.adminRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrUnauthorized
		}
		return nil, err
	}

	if err := revoke(ctx, u.revoker, claims); err != nil {
		return nil, err
	}
	return issueTokens(u.jwtService, admin.ID, admin.Email, jwt.RoleAdmin, admin)
}

// Logout revokes the admin's tokens.
func (u *AdminAuthUsecase) Logout(ctx context.Context, access *jwt.Claims, refreshToken string) error {
	return logout(ctx, u.jwtService, u.revoker, access, refreshToken)
}

// Me returns the authenticated admin
func (u *AdminAuthUsecase) Me(ctx context.Context, adminID uuid.UUID) (*entities.Admin, error) {
	return u.adminRepo.GetByID(ctx, adminID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func issueTokens(jwtService *jwt.JWTService, id uuid.UUID, email, role string, account interface{}) (*entities.AuthResponse, error) {
	pair, err := jwtService.GenerateTokenPair(id, email, role)
	if err != nil {
		return nil, err
	}
	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    pair.TokenType,
		ExpiresIn:    pair.ExpiresIn,
		User:         account,
	}, nil
}

func validateRefresh(ctx context.Context, jwtService *jwt.JWTService, revoker TokenRevoker, token, role string) (*jwt.Claims, error) {
	claims, err := jwtService.ValidateTokenOfType(token, jwt.TokenTypeRefresh)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.ErrTokenExpired
		}
		return nil, domainerrors.ErrUnauthorized
	}
	if claims.Role != role {
		return nil, domainerrors.ErrUnauthorized
	}

	if revoker != nil {
		revoked, err := revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, domainerrors.ErrTokenRevoked
		}
	}
	return claims, nil
}

func revoke(ctx context.Context, revoker TokenRevoker, claims *jwt.Claims) error {
	if revoker == nil || claims == nil {
		return nil
	}
	return revoker.Revoke(ctx, claims.ID, claims.TTL())
}

func logout(ctx context.Context, jwtService *jwt.JWTService, revoker TokenRevoker, access *jwt.Claims, refreshToken string) error {
	if err := revoke(ctx, revoker, access); err != nil {
		return err
	}
	if refreshToken == "" {
		return nil
	}

	// An unusable refresh token has nothing left to revoke.
	refresh, err := jwtService.ValidateTokenOfType(refreshToken, jwt.TokenTypeRefresh)
	if err != nil || access == nil || refresh.UserID != access.UserID {
		return nil
	}
	return revoke(ctx, revoker, refresh)
}
