package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/St1cky1/taskboard/internal/api/middleware"
	"github.com/St1cky1/taskboard/internal/entity"
	"github.com/St1cky1/taskboard/internal/usecase"
	"github.com/go-chi/chi/v5"
)

type TaskHandler struct {
	taskService *usecase.TaskService
}

func NewTaskHandler(taskService *usecase.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// создаем новую задачу
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	var req entity.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), actor, &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"task": task})
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	task, err := h.taskService.GetTask(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"task": task})
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	var req entity.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), actor, chi.URLParam(r, "id"), &req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"task": task})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tasks, err := h.taskService.ListTasks(r.Context(), actor, filter)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (h *TaskHandler) ListByAssignee(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	tasks, err := h.taskService.ListByAssignee(r.Context(), actor, chi.URLParam(r, "userId"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if tasks == nil {
		tasks = []entity.Task{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"tasks": tasks})
}

func (h *TaskHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	var req entity.AddCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	comment, err := h.taskService.AddComment(r.Context(), actor, chi.URLParam(r, "id"), req.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{"comment": comment})
}

func (h *TaskHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authorization required")
		return
	}

	comments, err := h.taskService.ListComments(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if comments == nil {
		comments = []entity.Comment{}
	}

	respondJSON(w, http.StatusOK, map[string]any{"comments": comments})
}

// filterFromQuery разбирает query-параметры списка задач
func filterFromQuery(r *http.Request) (*entity.TaskFilter, error) {
	q := r.URL.Query()

	filter := &entity.TaskFilter{
		Status:     entity.TaskStatus(q.Get("status")),
		Priority:   entity.TaskPriority(q.Get("priority")),
		AssignedTo: q.Get("assignedTo"),
		Search:     q.Get("search"),
	}

	if s := q.Get("startDate"); s != "" {
		t, err := entity.ParseDate(s)
		if err != nil {
			return nil, err
		}
		filter.StartDate = &t
	}
	if s := q.Get("endDate"); s != "" {
		t, err := entity.ParseDate(s)
		if err != nil {
			return nil, err
		}
		filter.EndDate = &t
	}

	return filter, nil
}
