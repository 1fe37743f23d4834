package entity

import "time"

type TaskStatus string

const (
	StatusOpen       TaskStatus = "open"
	StatusInProgress TaskStatus = "in-progress"
	StatusDone       TaskStatus = "done"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Task - задача с заполненными ссылками на пользователей
type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *time.Time   `json:"dueDate,omitempty"`
	AssignedTo  UserSummary  `json:"assignedTo"`
	CreatedBy   UserSummary  `json:"createdBy"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

type Comment struct {
	ID        string      `json:"id"`
	TaskID    string      `json:"-"`
	Author    UserSummary `json:"userId"`
	Text      string      `json:"text"`
	CreatedAt time.Time   `json:"createdAt"`
}

type CreateTaskRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *Date        `json:"dueDate"`
	AssignedTo  string       `json:"assignedTo"`
}

// NewTask - провалидированные данные для вставки в БД
type NewTask struct {
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	AssignedTo  string
	CreatedBy   string
}

// UpdateTaskRequest - частичное обновление. Каждое поле несет явное
// состояние Unset | Clear | Set, см. patch.go
type UpdateTaskRequest struct {
	Title       Patch[string]       `json:"title"`
	Description Patch[string]       `json:"description"`
	Status      Patch[TaskStatus]   `json:"status"`
	Priority    Patch[TaskPriority] `json:"priority"`
	DueDate     Patch[Date]         `json:"dueDate"`
	AssignedTo  Patch[string]       `json:"assignedTo"`
}

type AddCommentRequest struct {
	Text string `json:"text"`
}

// TaskNotification - сообщение для очереди уведомлений о назначении задачи
type TaskNotification struct {
	TaskID        string     `json:"task_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Priority      string     `json:"priority"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	AssigneeEmail string     `json:"assignee_email"`
	AssigneeName  string     `json:"assignee_name"`
	AssignedBy    string     `json:"assigned_by"`
	Timestamp     time.Time  `json:"timestamp"`
}
