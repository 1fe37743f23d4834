package usecase

import (
	"context"

	"github.com/St1cky1/taskboard/internal/authz"
	"github.com/St1cky1/taskboard/internal/entity"
	"github.com/St1cky1/taskboard/internal/repository"
)

type UserService struct {
	userRepo repository.IUserRepository
}

func NewUserService(userRepo repository.IUserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// ListUsers - полный список пользователей, только для админа
func (s *UserService) ListUsers(ctx context.Context, actor entity.Actor) ([]entity.User, error) {
	if !authz.CanViewAll(actor) {
		return nil, entity.ErrForbidden
	}
	return s.userRepo.List(ctx)
}

// GetCurrentUser - профиль текущего пользователя
func (s *UserService) GetCurrentUser(ctx context.Context, actor entity.Actor) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}
