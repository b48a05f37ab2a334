package agent

import (
	"net/http"

	"github.com/pragyakeshap/awesome-docker-experiments/pkg/cerr"
)

type Server struct {
	registry *Registry
}

func NewServer(registry *Registry) *Server {
	return &Server{registry: registry}
}

type agentView struct {
	Name string `json:"name"`
	Role string `json:"role"`
	Goal string `json:"goal"`
}

type listAgentsResponse struct {
	Agents []agentView `json:"agents"`
}

func (s *Server) ListAgents(w http.ResponseWriter, r *http.Request) {
	agents := s.registry.List()
	views := make([]agentView, 0, len(agents))
	for _, a := range agents {
		views = append(views, agentView{Name: a.Name, Role: a.Role, Goal: a.Goal})
	}
	cerr.WriteJSON(r.Context(), w, listAgentsResponse{Agents: views})
}
