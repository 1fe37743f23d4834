package repository

import (
	"testing"
	"time"

	"github.com/St1cky1/taskboard/internal/entity"
	"github.com/stretchr/testify/assert"
)

func TestBuildTaskFilterEmpty(t *testing.T) {
	where, args := buildTaskFilter(&entity.TaskFilter{})

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildTaskFilterSingle(t *testing.T) {
	where, args := buildTaskFilter(&entity.TaskFilter{Status: entity.StatusOpen})

	assert.Equal(t, " WHERE t.status = $1", where)
	assert.Equal(t, []interface{}{entity.StatusOpen}, args)
}

func TestBuildTaskFilterConjunction(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)

	where, args := buildTaskFilter(&entity.TaskFilter{
		Status:     entity.StatusOpen,
		Priority:   entity.PriorityHigh,
		AssignedTo: "u1",
		Search:     "deploy",
		StartDate:  &start,
		EndDate:    &end,
	})

	assert.Equal(t,
		" WHERE t.status = $1 AND t.priority = $2 AND t.assigned_to = $3"+
			" AND (t.title ILIKE $4 OR t.description ILIKE $4)"+
			" AND t.due_date >= $5 AND t.due_date <= $6",
		where)
	assert.Equal(t, []interface{}{
		entity.StatusOpen, entity.PriorityHigh, "u1", "%deploy%", start, end,
	}, args)
}

func TestBuildTaskFilterSearchOnly(t *testing.T) {
	where, args := buildTaskFilter(&entity.TaskFilter{Search: "Fix"})

	assert.Equal(t, " WHERE (t.title ILIKE $1 OR t.description ILIKE $1)", where)
	assert.Equal(t, []interface{}{"%Fix%"}, args)
}
