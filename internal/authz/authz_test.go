package authz

import (
	"testing"

	"github.com/St1cky1/taskboard/internal/entity"
	"github.com/stretchr/testify/assert"
)

var (
	admin    = entity.Actor{ID: "a1", Role: entity.RoleAdmin}
	assignee = entity.Actor{ID: "u1", Role: entity.RoleUser}
	creator  = entity.Actor{ID: "u2", Role: entity.RoleUser}
	stranger = entity.Actor{ID: "u3", Role: entity.RoleUser}
)

func sampleTask() *entity.Task {
	return &entity.Task{
		ID:         "t1",
		Title:      "Sample",
		AssignedTo: entity.UserSummary{ID: "u1"},
		CreatedBy:  entity.UserSummary{ID: "u2"},
	}
}

func TestCanAssign(t *testing.T) {
	tests := []struct {
		name       string
		actor      entity.Actor
		assigneeID string
		want       bool
	}{
		{"admin assigns to anyone", admin, "u3", true},
		{"user assigns to self", stranger, "u3", true},
		{"user assigns to other", stranger, "u1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAssign(tt.actor, tt.assigneeID))
		})
	}
}

func TestCanModify(t *testing.T) {
	task := sampleTask()

	assert.True(t, CanModify(assignee, task))
	assert.True(t, CanModify(creator, task))
	assert.True(t, CanModify(admin, task))
	assert.False(t, CanModify(stranger, task))
}

func TestCanReassign(t *testing.T) {
	task := sampleTask()

	// передача другому пользователю - только админ
	assert.True(t, CanReassign(admin, task, "u3"))
	assert.False(t, CanReassign(assignee, task, "u3"))
	assert.False(t, CanReassign(creator, task, "u3"))

	// "переназначение" на текущего исполнителя - no-op, разрешено всем
	assert.True(t, CanReassign(stranger, task, "u1"))
}

// Переназначение требует строго больше прав, чем редактирование
func TestReassignStricterThanModify(t *testing.T) {
	task := sampleTask()

	assert.True(t, CanModify(assignee, task))
	assert.False(t, CanReassign(assignee, task, "u3"))
}

func TestCanDelete(t *testing.T) {
	task := sampleTask()

	assert.True(t, CanDelete(creator, task))
	assert.True(t, CanDelete(admin, task))
	assert.False(t, CanDelete(assignee, task))
	assert.False(t, CanDelete(stranger, task))
}

func TestCanViewAll(t *testing.T) {
	assert.True(t, CanViewAll(admin))
	assert.False(t, CanViewAll(assignee))
}
