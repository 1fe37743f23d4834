package repository

import (
	"context"
	"time"

	"github.com/St1cky1/taskboard/internal/entity"
)

// IUserRepository - интерфейс для UserRepository
type IUserRepository interface {
	Create(ctx context.Context, name, email, passwordHash string, role entity.Role) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
}

// ITaskRepository - интерфейс для TaskRepository
type ITaskRepository interface {
	Create(ctx context.Context, task *entity.NewTask) (*entity.Task, error)
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	Update(ctx context.Context, id string, updates map[string]interface{}) (*entity.Task, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter *entity.TaskFilter) ([]entity.Task, error)
}

// ICommentRepository - интерфейс для CommentRepository
type ICommentRepository interface {
	Create(ctx context.Context, taskID, authorID, text string) (*entity.Comment, error)
	ListByTask(ctx context.Context, taskID string) ([]entity.Comment, error)
}

// IRefreshTokenRepository - интерфейс для RefreshTokenRepository
type IRefreshTokenRepository interface {
	Save(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	GetByHash(ctx context.Context, tokenHash string) (*RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
	RevokeAll(ctx context.Context, userID string) error
}
