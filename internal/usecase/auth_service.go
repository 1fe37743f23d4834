package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/St1cky1/taskboard/internal/entity"
	"github.com/St1cky1/taskboard/internal/infrastructure/auth"
	"github.com/St1cky1/taskboard/internal/repository"
)

type AuthService struct {
	userRepo         repository.IUserRepository
	refreshTokenRepo repository.IRefreshTokenRepository
	passwordManager  *auth.PasswordManager
	jwtManager       *auth.JWTManager
	adminInviteCode  string
}

func NewAuthService(
	userRepo repository.IUserRepository,
	refreshTokenRepo repository.IRefreshTokenRepository,
	passwordManager *auth.PasswordManager,
	jwtManager *auth.JWTManager,
	adminInviteCode string,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		refreshTokenRepo: refreshTokenRepo,
		passwordManager:  passwordManager,
		jwtManager:       jwtManager,
		adminInviteCode:  adminInviteCode,
	}
}

// Register регистрирует нового пользователя
func (s *AuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.LoginResponse, error) {
	// Проверяем обязательные поля
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.Name) == "" {
		return nil, entity.ErrInvalidUserData
	}

	// Проверяем, что пользователь с таким email не существует
	existingUser, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, entity.ErrEmailTaken
	}

	// Роль admin выдаем только по коду приглашения. Без кода или с неверным
	// кодом регистрируем обычного пользователя - самоназначение admin
	// с клиента было дырой.
	role := entity.RoleUser
	if req.Role == "admin" && s.adminInviteCode != "" && req.InviteCode == s.adminInviteCode {
		role = entity.RoleAdmin
	}

	// Хешируем пароль
	passwordHash, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	// Создаем пользователя
	user, err := s.userRepo.Create(ctx, strings.TrimSpace(req.Name), req.Email, passwordHash, role)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueTokens(ctx, user)
}

// Login логинит пользователя
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error) {
	// Ищем пользователя по email
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, entity.ErrInvalidCredentials
	}

	// Проверяем пароль
	if !s.passwordManager.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, entity.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

// issueTokens генерирует пару токенов и сохраняет хеш refresh token
func (s *AuthService) issueTokens(ctx context.Context, user *entity.User) (*entity.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	refreshTokenHash := s.hashToken(refreshToken)
	expiresAt := time.Now().Add(7 * 24 * time.Hour)
	if err := s.refreshTokenRepo.Save(ctx, user.ID, refreshTokenHash, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to save refresh token: %w", err)
	}

	return &entity.LoginResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// RefreshToken обновляет access token с ротацией refresh token
func (s *AuthService) RefreshToken(ctx context.Context, refreshTokenStr string) (*entity.RefreshTokenResponse, error) {
	// Невалидный, просроченный или неизвестный токен - это 401.
	// Ошибки зависимостей отдаем как есть, они фатальны для запроса
	claims, err := s.jwtManager.ValidateRefreshToken(refreshTokenStr)
	if err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	// Проверяем, есть ли этот токен в БД
	refreshTokenHash := s.hashToken(refreshTokenStr)
	storedToken, err := s.refreshTokenRepo.GetByHash(ctx, refreshTokenHash)
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}
	if storedToken == nil {
		return nil, entity.ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		// Пользователь удален - его токены больше ничего не стоят
		return nil, entity.ErrInvalidCredentials
	}

	// Генерируем новую пару токенов
	newAccessToken, err := s.jwtManager.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate new access token: %w", err)
	}

	newRefreshToken, err := s.jwtManager.GenerateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate new refresh token: %w", err)
	}

	// Откатываем старый refresh token
	if err := s.refreshTokenRepo.Revoke(ctx, refreshTokenHash); err != nil {
		return nil, fmt.Errorf("failed to revoke old refresh token: %w", err)
	}

	// Сохраняем новый refresh token
	newRefreshTokenHash := s.hashToken(newRefreshToken)
	expiresAt := time.Now().Add(7 * 24 * time.Hour)
	if err := s.refreshTokenRepo.Save(ctx, user.ID, newRefreshTokenHash, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to save new refresh token: %w", err)
	}

	return &entity.RefreshTokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

// Logout откатывает все refresh токены пользователя
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.refreshTokenRepo.RevokeAll(ctx, userID); err != nil {
		return fmt.Errorf("failed to revoke refresh tokens: %w", err)
	}
	return nil
}

// hashToken генерирует хеш токена для хранения в БД
func (s *AuthService) hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
