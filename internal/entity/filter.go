package entity

import (
	"strings"
	"time"
)

// TaskFilter - критерии списка задач. Пустое поле не накладывает ограничения,
// непустые объединяются по И.
type TaskFilter struct {
	Status     TaskStatus
	Priority   TaskPriority
	AssignedTo string
	Search     string
	StartDate  *time.Time
	EndDate    *time.Time
}

// Matches проверяет задачу против фильтра
func (f *TaskFilter) Matches(t *Task) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}
	if f.AssignedTo != "" && t.AssignedTo.ID != f.AssignedTo {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		inTitle := strings.Contains(strings.ToLower(t.Title), needle)
		inDescription := strings.Contains(strings.ToLower(t.Description), needle)
		if !inTitle && !inDescription {
			return false
		}
	}
	if f.StartDate != nil || f.EndDate != nil {
		// задачи без срока никогда не попадают в диапазон
		if t.DueDate == nil {
			return false
		}
		if f.StartDate != nil && t.DueDate.Before(*f.StartDate) {
			return false
		}
		if f.EndDate != nil && t.DueDate.After(*f.EndDate) {
			return false
		}
	}
	return true
}
