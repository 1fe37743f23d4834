package worker

import (
	"testing"
	"time"

	"github.com/St1cky1/taskboard/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestRenderAssignmentEmail(t *testing.T) {
	due := time.Date(2026, 4, 20, 0, 0, 0, 0, time.UTC)
	subject, body := RenderAssignmentEmail(&entity.TaskNotification{
		TaskID:        "task-1",
		Title:         "Prepare report",
		Description:   "quarterly numbers",
		Priority:      "high",
		DueDate:       &due,
		AssigneeEmail: "u1@example.com",
		AssigneeName:  "User One",
		AssignedBy:    "Admin",
	})

	assert.Contains(t, subject, "Prepare report")
	assert.Contains(t, body, "Hello User One")
	assert.Contains(t, body, "Priority: high")
	assert.Contains(t, body, "Due Date: 20.04.2026")
	assert.Contains(t, body, "quarterly numbers")
	assert.Contains(t, body, "Assigned by: Admin")
}

func TestRenderAssignmentEmailDefaults(t *testing.T) {
	_, body := RenderAssignmentEmail(&entity.TaskNotification{
		Title:    "X",
		Priority: "medium",
	})

	assert.Contains(t, body, "Hello User")
	assert.Contains(t, body, "No due date")
	assert.Contains(t, body, "No description provided.")
}
