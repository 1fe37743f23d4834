package repository

import (
	"context"

	"github.com/St1cky1/taskboard/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// создаем пользователя
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string, role entity.Role) (*entity.User, error) {
	query := `
	INSERT INTO users (id, name, email, password_hash, role)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, name, email, password_hash, role, created_at, updated_at
	`

	var user entity.User
	err := r.db.QueryRow(ctx, query, uuid.NewString(), name, email, passwordHash, role).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// получаем данные по id
func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `
	SELECT id, name, email, password_hash, role, created_at, updated_at
	FROM users
	WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

// получаем данные по email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
	SELECT id, name, email, password_hash, role, created_at, updated_at
	FROM users
	WHERE email = $1
	`
	return r.getOne(ctx, query, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var user entity.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// List - получаем всех пользователей
func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	query := `
	SELECT id, name, email, password_hash, role, created_at, updated_at
	FROM users
	ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var user entity.User
		err := rows.Scan(
			&user.ID,
			&user.Name,
			&user.Email,
			&user.PasswordHash,
			&user.Role,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, rows.Err()
}
