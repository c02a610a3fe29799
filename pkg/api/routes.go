package api

import (
	"net/http"
)

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/test", s.HandleListHooks)
	mux.HandleFunc("GET /health", s.HandleHealth)
}
