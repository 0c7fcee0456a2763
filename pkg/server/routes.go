package server

import "net/http"

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/resprof", s.handleResourceProfile)
	mux.HandleFunc("POST /v1/parsex", s.handleParseX)
	mux.HandleFunc("POST /v1/conform", s.handleConform)
	mux.HandleFunc("GET /v1/help", s.handleHelp)

	mux.HandleFunc("GET /v1/resources", s.handleListResources)
	mux.HandleFunc("GET /v1/resources/{id}", s.handleGetResource)
	mux.HandleFunc("GET /v1/resources/{id}/profile", s.handleResourceProfileByID)
	mux.HandleFunc("POST /v1/resources/{id}/conform", s.handleResourceConform)

	s.checker.Register(mux, s.probes[0], s.probes[1], s.version)
	if s.metrics != nil && s.metricsAt != "" {
		mux.Handle("GET "+s.metricsAt, s.metrics.Handler())
	}
	return mux
}
