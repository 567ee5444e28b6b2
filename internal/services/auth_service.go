package services

import (
	"time"

	"munext_backend/internal/auth"
	"munext_backend/internal/email"
	"munext_backend/internal/logger"
	"munext_backend/internal/models"
	"munext_backend/internal/repositories"
	"munext_backend/internal/services/dto"
	"munext_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, userID, refreshToken string) error
	VerifyEmail(db *gorm.DB, token string) error
	Me(db *gorm.DB, userID string) (*models.User, error)
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	emailProvider email.Provider
}

func NewAuthService(userRepo repositories.UserRepository, emailProvider email.Provider) AuthService {
	return &AuthServiceImpl{
		userRepo:      userRepo,
		emailProvider: emailProvider,
	}
}

// Register - регистрация нового пользователя
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	// Админов через публичную регистрацию не создают
	if req.Role == models.UserRoleAdmin {
		return nil, apperrors.ErrInvalidUserRole
	}

	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	verificationToken := auth.GenerateRandomToken()

	user := &models.User{
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      hashedPassword,
		Role:              req.Role,
		IsVerified:        false,
		VerificationToken: verificationToken,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrEmailTaken) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// Письмо не должно валить регистрацию: SMTP может быть недоступен
	if err := s.emailProvider.SendVerification(user.Email, user.Name, verificationToken); err != nil {
		logger.WithError(err).Warn("Failed to send verification email", "user_id", user.ID)
	}

	return s.buildAuthResponse(db, user)
}

// Login - аутентификация пользователя
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.buildAuthResponse(db, user)
}

// Refresh обменивает живой refresh-токен на новую пару токенов
func (s *AuthServiceImpl) Refresh(db *gorm.DB, refreshToken string) (*dto.AuthResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(db, refreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(db, refreshToken)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// Ротация: старый токен гасится, попутно чистим просроченные
	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}
	_ = s.userRepo.CleanExpiredRefreshTokens(db)

	return s.buildAuthResponse(db, user)
}

// Logout гасит refresh-токен. Без токена в теле гасятся все токены пользователя.
func (s *AuthServiceImpl) Logout(db *gorm.DB, userID, refreshToken string) error {
	if refreshToken == "" {
		if err := s.userRepo.DeleteUserRefreshTokens(db, userID); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	}
	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// VerifyEmail подтверждает email по токену из письма
func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, token string) error {
	user, err := s.userRepo.FindByVerificationToken(db, token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	now := time.Now()
	user.EmailVerifiedAt = &now
	user.VerificationToken = ""
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}

	return nil
}

// Me возвращает текущего пользователя с профилем
func (s *AuthServiceImpl) Me(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByIDWithRelations(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err, "user", "User not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *AuthServiceImpl) buildAuthResponse(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := auth.GenerateRandomToken()

	err = s.userRepo.CreateRefreshToken(db, &models.RefreshToken{
		UserID:    user.ID,
		Token:     refreshToken,
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
