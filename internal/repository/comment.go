package repository

import (
	"context"

	"github.com/St1cky1/taskboard/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository struct {
	db *pgxpool.Pool
}

func NewCommentRepository(db *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{
		db: db,
	}
}

// Create добавляет комментарий в конец ленты задачи
func (r *CommentRepository) Create(ctx context.Context, taskID, authorID, text string) (*entity.Comment, error) {
	query := `
	WITH inserted AS (
		INSERT INTO comments (id, task_id, user_id, text)
		VALUES ($1, $2, $3, $4)
		RETURNING id, task_id, user_id, text, created_at
	)
	SELECT i.id, i.task_id, i.text, i.created_at, u.id, u.email, u.name
	FROM inserted i
	JOIN users u ON u.id = i.user_id
	`

	var comment entity.Comment
	err := r.db.QueryRow(ctx, query, uuid.NewString(), taskID, authorID, text).Scan(
		&comment.ID,
		&comment.TaskID,
		&comment.Text,
		&comment.CreatedAt,
		&comment.Author.ID,
		&comment.Author.Email,
		&comment.Author.Name,
	)
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// ListByTask - комментарии задачи в порядке добавления
func (r *CommentRepository) ListByTask(ctx context.Context, taskID string) ([]entity.Comment, error) {
	query := `
	SELECT c.id, c.task_id, c.text, c.created_at, u.id, u.email, u.name
	FROM comments c
	JOIN users u ON u.id = c.user_id
	WHERE c.task_id = $1
	ORDER BY c.seq ASC
	`

	rows, err := r.db.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []entity.Comment
	for rows.Next() {
		var comment entity.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.TaskID,
			&comment.Text,
			&comment.CreatedAt,
			&comment.Author.ID,
			&comment.Author.Email,
			&comment.Author.Name,
		)
		if err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}
