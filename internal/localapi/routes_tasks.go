package localapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"todoapp/internal/protocol"
	"todoapp/internal/service"
)

const maxRequestBody = 1 << 20

type createTaskRequest struct {
	Title string `json:"title"`
}

type updateTaskRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

func (s *Server) registerTaskRoutes() {
	s.mux.HandleFunc("GET /tasks", s.handleListTasks)
	s.mux.HandleFunc("POST /tasks", s.handleCreateTask)
	s.mux.HandleFunc("/tasks", s.handleMethodNotAllowed)
	s.mux.HandleFunc("PUT /tasks/{id}", s.handleUpdateTask)
	s.mux.HandleFunc("DELETE /tasks/{id}", s.handleDeleteTask)
	s.mux.HandleFunc("/tasks/{id}", s.handleMethodNotAllowed)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	rows, err := s.deps.Tasks.List(r.Context())
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	task, err := s.deps.Tasks.Create(r.Context(), req.Title)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.publishEvent(protocol.OpTaskCreated, task.ID, map[string]any{"task": task})
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req updateTaskRequest
	if !decodeBody(w, r, &req) {
		return
	}
	task, err := s.deps.Tasks.Update(r.Context(), id, service.Patch{Title: req.Title, Completed: req.Completed})
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.publishEvent(protocol.OpTaskUpdated, task.ID, map[string]any{"task": task})
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.deps.Tasks.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	s.publishEvent(protocol.OpTaskDeleted, id, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
}

func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		svcErr = service.NewStoreError("request", err)
	}
	switch svcErr.Kind {
	case service.KindValidation:
		respondError(w, http.StatusBadRequest, "VALIDATION_FAILED", svcErr.Message)
	case service.KindNotFound:
		respondError(w, http.StatusNotFound, "TASK_NOT_FOUND", svcErr.Message)
	default:
		s.logger.Error("task request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
	}
}

// decodeBody writes a 400 and returns false when the body is not valid JSON.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "INVALID_JSON", "request body is required")
			return false
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respondError(w, http.StatusRequestEntityTooLarge, "INVALID_JSON", "request body too large")
			return false
		}
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "invalid json body")
		return false
	}
	return true
}
