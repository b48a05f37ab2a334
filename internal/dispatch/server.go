package dispatch

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pragyakeshap/awesome-docker-experiments/internal/task"
	"github.com/pragyakeshap/awesome-docker-experiments/pkg/cerr"
)

type Server struct {
	dispatcher *Dispatcher
}

func NewServer(dispatcher *Dispatcher) *Server {
	return &Server{dispatcher: dispatcher}
}

type createTaskRequest struct {
	Description string `json:"description"`
	Type        string `json:"type"`
}

type taskResponse struct {
	TaskID string  `json:"task_id"`
	Status string  `json:"status"`
	Result *string `json:"result"`
}

func toResponse(t *task.Task) taskResponse {
	resp := taskResponse{
		TaskID: t.ID,
		Status: string(t.Status),
	}
	if t.Result != "" {
		result := t.Result
		resp.Result = &result
	}
	return resp
}

// CreateTask handles POST /tasks. A failed execution still answers 200
// with a failed record; only validation and store problems are errors.
func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		cerr.WriteError(ctx, w, cerr.NewError(cerr.InvalidArgument, "invalid request body", err))
		return
	}
	t, err := s.dispatcher.Submit(ctx, req.Description, req.Type)
	if err != nil {
		cerr.WriteError(ctx, w, err)
		return
	}
	cerr.WriteJSON(ctx, w, toResponse(t))
}

// GetTask handles GET /tasks/{id}.
func (s *Server) GetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")
	if id == "" {
		cerr.WriteError(ctx, w, cerr.NewError(cerr.InvalidArgument, "task id is required", nil))
		return
	}
	t, err := s.dispatcher.Get(ctx, id)
	if err != nil {
		cerr.WriteError(ctx, w, err)
		return
	}
	cerr.WriteJSON(ctx, w, toResponse(t))
}
