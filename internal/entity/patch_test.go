package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchUnmarshalStates(t *testing.T) {
	var req UpdateTaskRequest
	body := `{"title": "New title", "description": null, "status": ""}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	// переданное значение
	v, ok := req.Title.Get()
	assert.True(t, ok)
	assert.Equal(t, "New title", v)

	// явный null
	assert.True(t, req.Description.IsClear())
	_, ok = req.Description.Get()
	assert.False(t, ok)

	// пустая строка - это Set пустого значения, не Clear
	s, ok := req.Status.Get()
	assert.True(t, ok)
	assert.Equal(t, TaskStatus(""), s)
	assert.False(t, req.Status.IsClear())

	// непереданные поля
	assert.True(t, req.Priority.IsUnset())
	assert.True(t, req.DueDate.IsUnset())
	assert.True(t, req.AssignedTo.IsUnset())
}

func TestPatchConstructors(t *testing.T) {
	assert.True(t, Unset[string]().IsUnset())
	assert.True(t, Clear[string]().IsClear())

	v, ok := Set("x").Get()
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestDateUnmarshal(t *testing.T) {
	var req UpdateTaskRequest
	require.NoError(t, json.Unmarshal([]byte(`{"dueDate": "2026-03-15"}`), &req))

	d, ok := req.DueDate.Get()
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), d.Time)

	require.NoError(t, json.Unmarshal([]byte(`{"dueDate": "2026-03-15T10:30:00Z"}`), &req))
	d, ok = req.DueDate.Get()
	require.True(t, ok)
	assert.Equal(t, 10, d.Hour())

	err := json.Unmarshal([]byte(`{"dueDate": "not-a-date"}`), &req)
	assert.Error(t, err)
}
