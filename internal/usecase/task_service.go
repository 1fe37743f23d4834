package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/St1cky1/taskboard/internal/authz"
	"github.com/St1cky1/taskboard/internal/entity"
	"github.com/St1cky1/taskboard/internal/repository"
)

// NotificationPublisher интерфейс для публикации уведомлений в RabbitMQ
type NotificationPublisher interface {
	PublishTaskNotification(ctx context.Context, message *entity.TaskNotification) error
}

type TaskService struct {
	taskRepo    repository.ITaskRepository
	userRepo    repository.IUserRepository
	commentRepo repository.ICommentRepository
	notifier    NotificationPublisher
}

func NewTaskService(
	taskRepo repository.ITaskRepository,
	userRepo repository.IUserRepository,
	commentRepo repository.ICommentRepository,
	notifier NotificationPublisher,
) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		commentRepo: commentRepo,
		notifier:    notifier,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, actor entity.Actor, req *entity.CreateTaskRequest) (*entity.Task, error) {
	// 1. Заголовок обязателен
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, entity.ErrInvalidTaskData
	}

	// 2. Без явного исполнителя задача назначается на самого актора
	assigneeID := req.AssignedTo
	if assigneeID == "" {
		assigneeID = actor.ID
	}

	// 3. Назначить другого может только админ
	if !authz.CanAssign(actor, assigneeID) {
		return nil, entity.ErrForbidden
	}

	// 4. Исполнитель должен существовать
	assignee, err := s.userRepo.GetByID(ctx, assigneeID)
	if err != nil {
		return nil, err
	}
	if assignee == nil {
		return nil, entity.ErrUserNotFound
	}

	// 5. Дефолты: status = open, priority = medium
	priority := req.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !priority.Valid() {
		return nil, entity.ErrInvalidTaskData
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		dueDate = &req.DueDate.Time
	}

	// 6. Создаем задачу
	task, err := s.taskRepo.Create(ctx, &entity.NewTask{
		Title:       title,
		Description: req.Description,
		Status:      entity.StatusOpen,
		Priority:    priority,
		DueDate:     dueDate,
		AssignedTo:  assigneeID,
		CreatedBy:   actor.ID,
	})
	if err != nil {
		return nil, err
	}

	// 7. Уведомляем исполнителя. Ошибка уведомления не откатывает создание
	s.sendNotification(task, actor)

	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, actor entity.Actor, taskID string) (*entity.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	return task, nil
}

func (s *TaskService) UpdateTask(ctx context.Context, actor entity.Actor, taskID string, req *entity.UpdateTaskRequest) (*entity.Task, error) {
	// 1. Получаем текущую задачу
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	// 2. Проверяем права: независимо от содержимого патча
	if !authz.CanModify(actor, task) {
		return nil, entity.ErrForbidden
	}

	// 3. Переназначение проверяем отдельно, оно строже
	reassigned := false
	if newAssignee, ok := req.AssignedTo.Get(); ok && newAssignee != "" {
		if !authz.CanReassign(actor, task, newAssignee) {
			return nil, entity.ErrForbidden
		}
		if newAssignee != task.AssignedTo.ID {
			user, err := s.userRepo.GetByID(ctx, newAssignee)
			if err != nil {
				return nil, err
			}
			if user == nil {
				return nil, entity.ErrUserNotFound
			}
			reassigned = true
		}
	}

	// 4. Собираем обновления из переданных полей
	updates, err := buildTaskUpdates(req)
	if err != nil {
		return nil, err
	}

	if len(updates) == 0 {
		return task, nil
	}

	// 5. Применяем патч одним атомарным UPDATE
	updatedTask, err := s.taskRepo.Update(ctx, taskID, updates)
	if err != nil {
		return nil, err
	}
	if updatedTask == nil {
		return nil, entity.ErrTaskNotFound
	}

	// 6. Новому исполнителю - уведомление
	if reassigned {
		s.sendNotification(updatedTask, actor)
	}

	return updatedTask, nil
}

// buildTaskUpdates переводит патч в карту обновляемых колонок.
// Пустые строки оставляют поле как есть; единственное исключение -
// description, для которого явный null означает очистку.
func buildTaskUpdates(req *entity.UpdateTaskRequest) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if title, ok := req.Title.Get(); ok && strings.TrimSpace(title) != "" {
		updates["title"] = strings.TrimSpace(title)
	}

	if req.Description.IsClear() {
		updates["description"] = ""
	} else if description, ok := req.Description.Get(); ok {
		updates["description"] = description
	}

	if status, ok := req.Status.Get(); ok && status != "" {
		if !status.Valid() {
			return nil, entity.ErrInvalidTaskData
		}
		updates["status"] = status
	}

	if priority, ok := req.Priority.Get(); ok && priority != "" {
		if !priority.Valid() {
			return nil, entity.ErrInvalidTaskData
		}
		updates["priority"] = priority
	}

	if dueDate, ok := req.DueDate.Get(); ok {
		updates["due_date"] = dueDate.Time
	}

	if assignee, ok := req.AssignedTo.Get(); ok && assignee != "" {
		updates["assigned_to"] = assignee
	}

	return updates, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, actor entity.Actor, taskID string) error {
	// 1. Получаем задачу для проверки прав
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task == nil {
		return entity.ErrTaskNotFound
	}

	// 2. Удалять могут создатель и админ
	if !authz.CanDelete(actor, task) {
		return entity.ErrForbidden
	}

	// 3. Удаляем, комментарии уходят каскадом
	return s.taskRepo.Delete(ctx, taskID)
}

// ListTasks - список задач по фильтру. Не-админ без явного фильтра по
// исполнителю видит только свои задачи, сужение выполняется здесь,
// на сервере, а не на клиенте.
func (s *TaskService) ListTasks(ctx context.Context, actor entity.Actor, filter *entity.TaskFilter) ([]entity.Task, error) {
	if filter == nil {
		filter = &entity.TaskFilter{}
	}
	if !authz.CanViewAll(actor) && filter.AssignedTo == "" {
		filter.AssignedTo = actor.ID
	}
	return s.taskRepo.List(ctx, filter)
}

// ListByAssignee - задачи конкретного исполнителя
func (s *TaskService) ListByAssignee(ctx context.Context, actor entity.Actor, userID string) ([]entity.Task, error) {
	return s.taskRepo.List(ctx, &entity.TaskFilter{AssignedTo: userID})
}

func (s *TaskService) AddComment(ctx context.Context, actor entity.Actor, taskID, text string) (*entity.Comment, error) {
	// 1. Текст обязателен
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, entity.ErrInvalidCommentData
	}

	// 2. Задача должна существовать. Прав сверх аутентификации не требуется
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	// 3. Дописываем в конец ленты
	return s.commentRepo.Create(ctx, taskID, actor.ID, text)
}

func (s *TaskService) ListComments(ctx context.Context, actor entity.Actor, taskID string) ([]entity.Comment, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}

	return s.commentRepo.ListByTask(ctx, taskID)
}

// sendNotification асинхронно кладет уведомление в очередь.
// Неудача логируется и глотается, запрос от нее не падает.
func (s *TaskService) sendNotification(task *entity.Task, actor entity.Actor) {
	// Назначил тот, кто выполнил действие: при создании это автор,
	// при переназначении - действующий админ
	assignedBy := actor.Name
	if assignedBy == "" {
		assignedBy = actor.Email
	}

	msg := &entity.TaskNotification{
		TaskID:        task.ID,
		Title:         task.Title,
		Description:   task.Description,
		Priority:      string(task.Priority),
		DueDate:       task.DueDate,
		AssigneeEmail: task.AssignedTo.Email,
		AssigneeName:  task.AssignedTo.Name,
		AssignedBy:    assignedBy,
		Timestamp:     time.Now(),
	}

	go func() {
		if err := s.notifier.PublishTaskNotification(context.Background(), msg); err != nil {
			log.Printf("❌ Ошибка отправки уведомления в RabbitMQ: %v", err)
		}
	}()
}
