package localapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"todoapp/internal/logging"
	"todoapp/internal/service"
)

type TaskService interface {
	List(ctx context.Context) ([]service.Task, error)
	Create(ctx context.Context, title string) (service.Task, error)
	Update(ctx context.Context, id string, patch service.Patch) (service.Task, error)
	Delete(ctx context.Context, id string) error
}

type Deps struct {
	Tasks  TaskService
	Logger *slog.Logger
}

type Server struct {
	deps   Deps
	mux    *http.ServeMux
	hub    *WSHub
	logger *slog.Logger

	externalEventSink func(topic, taskID string, payload map[string]any)
}

func NewServer(deps Deps) *Server {
	lg := deps.Logger
	if lg == nil {
		lg = logging.Discard()
	}
	s := &Server{deps: deps, mux: http.NewServeMux(), hub: NewWSHub(), logger: lg}
	s.registerTaskRoutes()
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.HandleFunc("/ws", s.hub.HandleWS)
	s.mux.HandleFunc("/", s.handleNotFound)
	return s
}

func (s *Server) Handler() http.Handler {
	return requestLogger(s.logger)(s.mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondOK(w, map[string]any{"status": "ok"})
}

func (s *Server) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	respondError(w, http.StatusNotFound, "NOT_FOUND", "route not found")
}

func respondOK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "data": data})
}

func respondError(w http.ResponseWriter, code int, errCode string, msg string) {
	writeJSON(w, code, map[string]any{"ok": false, "error": map[string]any{"code": errCode, "message": msg}})
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// SetExternalEventSink receives a copy of every published task event.
func (s *Server) SetExternalEventSink(sink func(topic, taskID string, payload map[string]any)) {
	if s == nil {
		return
	}
	s.externalEventSink = sink
}

func (s *Server) publishEvent(topic, taskID string, payload map[string]any) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(topic, taskID, payload)
	if s.externalEventSink != nil {
		s.externalEventSink(topic, taskID, cloneMap(payload))
	}
}

func cloneMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
