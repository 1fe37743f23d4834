package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/St1cky1/taskboard/internal/entity"
	"github.com/St1cky1/taskboard/internal/infrastructure/auth"
	"github.com/St1cky1/taskboard/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// MockRefreshTokenRepository - мок для IRefreshTokenRepository
type MockRefreshTokenRepository struct {
	SaveFunc      func(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	GetByHashFunc func(ctx context.Context, tokenHash string) (*repository.RefreshToken, error)
	RevokeFunc    func(ctx context.Context, tokenHash string) error
	RevokeAllFunc func(ctx context.Context, userID string) error
}

var _ repository.IRefreshTokenRepository = (*MockRefreshTokenRepository)(nil)

func (m *MockRefreshTokenRepository) Save(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, userID, tokenHash, expiresAt)
	}
	return nil
}

func (m *MockRefreshTokenRepository) GetByHash(ctx context.Context, tokenHash string) (*repository.RefreshToken, error) {
	if m.GetByHashFunc != nil {
		return m.GetByHashFunc(ctx, tokenHash)
	}
	return nil, nil
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, tokenHash string) error {
	if m.RevokeFunc != nil {
		return m.RevokeFunc(ctx, tokenHash)
	}
	return nil
}

func (m *MockRefreshTokenRepository) RevokeAll(ctx context.Context, userID string) error {
	if m.RevokeAllFunc != nil {
		return m.RevokeAllFunc(ctx, userID)
	}
	return nil
}

func newAuthService(userRepo *MockUserRepository, inviteCode string) *AuthService {
	return newAuthServiceWithTokens(userRepo, &MockRefreshTokenRepository{}, inviteCode)
}

func newAuthServiceWithTokens(userRepo *MockUserRepository, tokenRepo *MockRefreshTokenRepository, inviteCode string) *AuthService {
	if userRepo == nil {
		userRepo = &MockUserRepository{}
	}
	return NewAuthService(
		userRepo,
		tokenRepo,
		auth.NewPasswordManagerWithCost(bcrypt.MinCost),
		auth.NewJWTManager("test-secret"),
		inviteCode,
	)
}

func registeringUserRepo(t *testing.T) *MockUserRepository {
	t.Helper()
	return &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return nil, nil
		},
		CreateFunc: func(ctx context.Context, name, email, passwordHash string, role entity.Role) (*entity.User, error) {
			return &entity.User{ID: "new-user", Name: name, Email: email, PasswordHash: passwordHash, Role: role}, nil
		},
	}
}

func TestRegisterSuccess(t *testing.T) {
	service := newAuthService(registeringUserRepo(t), "")

	resp, err := service.Register(context.Background(), &entity.RegisterRequest{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{ID: "existing", Email: email}, nil
		},
	}
	service := newAuthService(userRepo, "")

	_, err := service.Register(context.Background(), &entity.RegisterRequest{
		Name:     "New User",
		Email:    "taken@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, entity.ErrEmailTaken)
}

func TestRegisterMissingFields(t *testing.T) {
	service := newAuthService(nil, "")

	_, err := service.Register(context.Background(), &entity.RegisterRequest{Email: "a@b.c"})
	assert.ErrorIs(t, err, entity.ErrInvalidUserData)
}

// Роль admin из тела запроса больше не принимается на веру
func TestRegisterAdminRequiresInviteCode(t *testing.T) {
	tests := []struct {
		name       string
		inviteCode string // настройка сервера
		role       string
		reqCode    string
		wantRole   entity.Role
	}{
		{"valid invite code", "letmein", "admin", "letmein", entity.RoleAdmin},
		{"wrong invite code degrades to user", "letmein", "admin", "nope", entity.RoleUser},
		{"missing invite code degrades to user", "letmein", "admin", "", entity.RoleUser},
		{"admin self-registration disabled", "", "admin", "", entity.RoleUser},
		{"arbitrary role string is user", "letmein", "superadmin", "letmein", entity.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newAuthService(registeringUserRepo(t), tt.inviteCode)

			resp, err := service.Register(context.Background(), &entity.RegisterRequest{
				Name:       "X",
				Email:      "x@example.com",
				Password:   "secret123",
				Role:       tt.role,
				InviteCode: tt.reqCode,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, resp.User.Role)
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	pm := auth.NewPasswordManagerWithCost(bcrypt.MinCost)
	hash, err := pm.HashPassword("secret123")
	require.NoError(t, err)

	userRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			return &entity.User{ID: "u1", Email: email, PasswordHash: hash, Role: entity.RoleUser}, nil
		},
	}
	service := newAuthService(userRepo, "")

	resp, err := service.Login(context.Background(), &entity.LoginRequest{
		Email:    "u1@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.User.ID)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	pm := auth.NewPasswordManagerWithCost(bcrypt.MinCost)
	hash, err := pm.HashPassword("secret123")
	require.NoError(t, err)

	userRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if email == "known@example.com" {
				return &entity.User{ID: "u1", Email: email, PasswordHash: hash}, nil
			}
			return nil, nil
		},
	}
	service := newAuthService(userRepo, "")

	// неизвестный email
	_, err = service.Login(context.Background(), &entity.LoginRequest{
		Email:    "ghost@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)

	// неверный пароль - тот же ответ, без утечки
	_, err = service.Login(context.Background(), &entity.LoginRequest{
		Email:    "known@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

// Refresh

// validRefreshToken выпускает refresh token тем же секретом, что и сервис
func validRefreshToken(t *testing.T, user *entity.User) string {
	t.Helper()
	token, err := auth.NewJWTManager("test-secret").GenerateRefreshToken(user)
	require.NoError(t, err)
	return token
}

func TestRefreshTokenGarbageIsInvalidCredentials(t *testing.T) {
	service := newAuthService(nil, "")

	_, err := service.RefreshToken(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestRefreshTokenUnknownHashIsInvalidCredentials(t *testing.T) {
	// валидная подпись, но токена нет в БД (отозван или просрочен)
	tokenRepo := &MockRefreshTokenRepository{
		GetByHashFunc: func(ctx context.Context, tokenHash string) (*repository.RefreshToken, error) {
			return nil, nil
		},
	}
	service := newAuthServiceWithTokens(nil, tokenRepo, "")

	token := validRefreshToken(t, &entity.User{ID: "u1", Email: "u1@example.com", Role: entity.RoleUser})
	_, err := service.RefreshToken(context.Background(), token)
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestRefreshTokenDeletedUserIsInvalidCredentials(t *testing.T) {
	tokenRepo := &MockRefreshTokenRepository{
		GetByHashFunc: func(ctx context.Context, tokenHash string) (*repository.RefreshToken, error) {
			return &repository.RefreshToken{UserID: "u1", TokenHash: tokenHash}, nil
		},
	}
	userRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*entity.User, error) {
			return nil, nil
		},
	}
	service := newAuthServiceWithTokens(userRepo, tokenRepo, "")

	token := validRefreshToken(t, &entity.User{ID: "u1", Email: "u1@example.com", Role: entity.RoleUser})
	_, err := service.RefreshToken(context.Background(), token)
	assert.ErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestRefreshTokenRepoFailureIsNotCredentials(t *testing.T) {
	// отказ БД - это не 401, а внутренняя ошибка
	tokenRepo := &MockRefreshTokenRepository{
		GetByHashFunc: func(ctx context.Context, tokenHash string) (*repository.RefreshToken, error) {
			return nil, assert.AnError
		},
	}
	service := newAuthServiceWithTokens(nil, tokenRepo, "")

	token := validRefreshToken(t, &entity.User{ID: "u1", Email: "u1@example.com", Role: entity.RoleUser})
	_, err := service.RefreshToken(context.Background(), token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, entity.ErrInvalidCredentials)
}

func TestRefreshTokenRotation(t *testing.T) {
	user := &entity.User{ID: "u1", Email: "u1@example.com", Name: "User One", Role: entity.RoleUser}
	token := validRefreshToken(t, user)

	var revokedHash, savedHash string
	tokenRepo := &MockRefreshTokenRepository{
		GetByHashFunc: func(ctx context.Context, tokenHash string) (*repository.RefreshToken, error) {
			return &repository.RefreshToken{UserID: user.ID, TokenHash: tokenHash}, nil
		},
		RevokeFunc: func(ctx context.Context, tokenHash string) error {
			revokedHash = tokenHash
			return nil
		},
		SaveFunc: func(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
			savedHash = tokenHash
			return nil
		},
	}
	userRepo := &MockUserRepository{
		GetByIDFunc: func(ctx context.Context, id string) (*entity.User, error) {
			return user, nil
		},
	}
	service := newAuthServiceWithTokens(userRepo, tokenRepo, "")

	resp, err := service.RefreshToken(context.Background(), token)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// отозван именно хеш предъявленного токена, новый сохранен
	assert.Equal(t, service.hashToken(token), revokedHash)
	assert.NotEmpty(t, savedHash)
}
