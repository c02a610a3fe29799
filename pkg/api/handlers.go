package api

import (
	"net/http"
	"time"

	"github.com/rubiojr/hookvault/pkg/core"
	"github.com/rubiojr/hookvault/pkg/version"
)

// HandleListHooks returns every hook in store order. Query parameters are
// ignored: filtering and paging happen in the client.
func (s *Server) HandleListHooks(w http.ResponseWriter, r *http.Request) {
	hooks, err := s.gateway.FetchAllHooks(r.Context())
	if err != nil {
		logger.Errorf("fetching hooks: %v", err)
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	if hooks == nil {
		hooks = []core.Hook{}
	}

	logger.Infof("data fetched: %d hooks", len(hooks))
	s.writeJSON(w, http.StatusOK, hooks)
}

func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	health := HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC(),
		Version:   version.APIVersion(),
	}

	s.writeJSON(w, http.StatusOK, health)
}
