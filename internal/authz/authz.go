// Package authz - правила доступа к задачам. Все функции чистые:
// решение зависит только от переданных actor и task, никаких походов в БД.
// Каждый хендлер обязан ходить сюда, а не проверять роли сам.
package authz

import "github.com/St1cky1/taskboard/internal/entity"

// CanAssign - назначать задачу другому пользователю может только админ.
// Назначение на себя разрешено всем. Действует и при создании, и при переназначении.
func CanAssign(actor entity.Actor, assigneeID string) bool {
	return actor.IsAdmin() || assigneeID == actor.ID
}

// CanModify - редактировать поля задачи могут исполнитель, создатель и админ
func CanModify(actor entity.Actor, task *entity.Task) bool {
	return actor.ID == task.AssignedTo.ID ||
		actor.ID == task.CreatedBy.ID ||
		actor.IsAdmin()
}

// CanReassign - передать задачу другому может только админ. Строже, чем
// CanModify: исполнитель меняет статус, но не отдает задачу.
// "Переназначение" на текущего исполнителя - no-op, разрешен всем.
func CanReassign(actor entity.Actor, task *entity.Task, newAssigneeID string) bool {
	return newAssigneeID == task.AssignedTo.ID || actor.IsAdmin()
}

// CanDelete - удалять задачу могут создатель и админ
func CanDelete(actor entity.Actor, task *entity.Task) bool {
	return actor.ID == task.CreatedBy.ID || actor.IsAdmin()
}

// CanViewAll - несузженный список задач (и список пользователей) видит только админ
func CanViewAll(actor entity.Actor) bool {
	return actor.IsAdmin()
}
