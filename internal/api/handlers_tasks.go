package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/sovna/taskhub/internal/platform/requestctx"
	"github.com/sovna/taskhub/internal/storage"
)

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := requestctx.UserFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeDetail(w, http.StatusBadRequest, "title is required")
		return
	}

	task, err := s.store.CreateTask(r.Context(), storage.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}, user.ID)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTaskView(task))
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := requestctx.UserFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	tasks, err := s.store.ListTasks(r.Context(), user.ID, r.URL.Query().Get("status"))
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskViews(tasks))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	task, ok := s.ownedTask(w, r)
	if !ok {
		return
	}

	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		writeDetail(w, http.StatusBadRequest, "title cannot be empty")
		return
	}

	updated, err := s.store.UpdateTask(r.Context(), task.ID, storage.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Task not found")
			return
		}
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskView(updated))
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	task, ok := s.ownedTask(w, r)
	if !ok {
		return
	}

	if _, err := s.store.DeleteTask(r.Context(), task.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Task not found")
			return
		}
		s.writeError(w, err)
		return
	}

	writeDetail(w, http.StatusOK, "Task deleted successfully")
}

// ownedTask loads the task in the path, checks existence before ownership,
// and writes the 400/404/403 response itself when the check fails. Both
// mutating handlers share this so the ownership rule cannot drift.
func (s *Server) ownedTask(w http.ResponseWriter, r *http.Request) (storage.Task, bool) {
	user, ok := requestctx.UserFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Not authenticated")
		return storage.Task{}, false
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid task id")
		return storage.Task{}, false
	}

	task, err := s.store.GetTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Task not found")
			return storage.Task{}, false
		}
		s.writeError(w, err)
		return storage.Task{}, false
	}

	if !taskOwnedBy(user, task) {
		writeDetail(w, http.StatusForbidden, "Not authorized")
		return storage.Task{}, false
	}

	return task, true
}

// taskOwnedBy is the single ownership rule for every mutating entry point.
func taskOwnedBy(user storage.User, task storage.Task) bool {
	return task.OwnerID == user.ID
}
