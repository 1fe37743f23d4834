package repository

import (
	"context"
	"strconv"

	"github.com/St1cky1/taskboard/internal/entity"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const taskColumns = `
	t.id, t.title, t.description, t.status, t.priority, t.due_date,
	t.created_at, t.updated_at,
	a.id, a.email, a.name,
	c.id, c.email, c.name
`

const taskJoins = `
	FROM tasks t
	JOIN users a ON a.id = t.assigned_to
	JOIN users c ON c.id = t.created_by
`

type TaskRepository struct {
	db *pgxpool.Pool
}

func NewTaskRepository(db *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func (r *TaskRepository) Create(ctx context.Context, task *entity.NewTask) (*entity.Task, error) {
	query := `
	INSERT INTO tasks (id, title, description, status, priority, due_date, assigned_to, created_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id
	`

	var id string
	err := r.db.QueryRow(ctx, query,
		uuid.NewString(),
		task.Title,
		task.Description,
		task.Status,
		task.Priority,
		task.DueDate,
		task.AssignedTo,
		task.CreatedBy,
	).Scan(&id)
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	query := `SELECT ` + taskColumns + taskJoins + ` WHERE t.id = $1`

	var task entity.Task
	err := r.db.QueryRow(ctx, query, id).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.AssignedTo.ID,
		&task.AssignedTo.Email,
		&task.AssignedTo.Name,
		&task.CreatedBy.ID,
		&task.CreatedBy.Email,
		&task.CreatedBy.Name,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &task, nil
}

// Update - обновление задачи одним атомарным UPDATE по id.
// Конкурентные патчи одной задачи не перемешивают поля между собой.
func (r *TaskRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*entity.Task, error) {
	// Динамически строим SET часть запроса
	setClause := ""
	args := []interface{}{}
	argIndex := 1

	for field, value := range updates {
		if field == "updated_at" {
			continue // не обновляем вручную
		}
		if argIndex > 1 {
			setClause += ", "
		}
		setClause += field + " = $" + strconv.Itoa(argIndex)
		args = append(args, value)
		argIndex++
	}

	// Добавляем обновление updated_at
	if argIndex > 1 {
		setClause += ", updated_at = CURRENT_TIMESTAMP"
	}

	query := `
	UPDATE tasks
	SET ` + setClause + `
	WHERE id = $` + strconv.Itoa(argIndex) + `
	RETURNING id
	`
	args = append(args, id)

	var updatedID string
	if err := r.db.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return r.GetByID(ctx, updatedID)
}

// Delete - удаление задачи. Комментарии уходят каскадом (FK ON DELETE CASCADE)
func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

// List - список задач с фильтрацией
func (r *TaskRepository) List(ctx context.Context, filter *entity.TaskFilter) ([]entity.Task, error) {
	where, args := buildTaskFilter(filter)

	query := `SELECT ` + taskColumns + taskJoins + where + ` ORDER BY t.created_at DESC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []entity.Task
	for rows.Next() {
		var task entity.Task
		err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&task.Status,
			&task.Priority,
			&task.DueDate,
			&task.CreatedAt,
			&task.UpdatedAt,
			&task.AssignedTo.ID,
			&task.AssignedTo.Email,
			&task.AssignedTo.Name,
			&task.CreatedBy.ID,
			&task.CreatedBy.Email,
			&task.CreatedBy.Name,
		)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// buildTaskFilter компилирует фильтр в WHERE-часть. Пустой фильтр - без WHERE.
// Условия объединяются по AND; NULL в due_date не проходит сравнение с датами,
// поэтому задачи без срока в диапазон не попадают.
func buildTaskFilter(filter *entity.TaskFilter) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	next := func() string { return "$" + strconv.Itoa(len(args)) }

	if filter.Status != "" {
		args = append(args, filter.Status)
		clauses = append(clauses, "t.status = "+next())
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		clauses = append(clauses, "t.priority = "+next())
	}
	if filter.AssignedTo != "" {
		args = append(args, filter.AssignedTo)
		clauses = append(clauses, "t.assigned_to = "+next())
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		p := next()
		clauses = append(clauses, "(t.title ILIKE "+p+" OR t.description ILIKE "+p+")")
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		clauses = append(clauses, "t.due_date >= "+next())
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		clauses = append(clauses, "t.due_date <= "+next())
	}

	if len(clauses) == 0 {
		return "", args
	}

	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}
