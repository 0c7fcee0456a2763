package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"mercator-hq/stc/pkg/descriptor"
	"mercator-hq/stc/pkg/engine"
	"mercator-hq/stc/pkg/telemetry/logging"
)

// ConformRequest is the body of POST /v1/conform.
type ConformRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// ParseXResponse is the reply of POST /v1/parsex, one STC-S line per
// resource in document order.
type ParseXResponse struct {
	STCS []string `json:"stcs"`
}

// ResourceList is the reply of GET /v1/resources.
type ResourceList struct {
	Resources []descriptor.Summary `json:"resources"`
}

// readBody reads a request body bounded by MaxBodyBytes. An empty body is a
// request error.
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) (string, error) {
	body := r.Body
	if s.config.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", &requestError{message: "request body is empty"}
	}
	return text, nil
}

func (s *Server) handleResourceProfile(w http.ResponseWriter, r *http.Request) {
	text, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := s.engine.ResourceProfile(r.Context(), text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, "application/xml", out)
}

func (s *Server) handleParseX(w http.ResponseWriter, r *http.Request) {
	text, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := s.engine.ParseX(r.Context(), text)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ParseXResponse{STCS: splitMarked(out)})
}

func (s *Server) handleConform(w http.ResponseWriter, r *http.Request) {
	text, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req ConformRequest
	if err := json.Unmarshal([]byte(text), &req); err != nil {
		s.writeError(w, r, &requestError{message: "invalid JSON body: " + err.Error()})
		return
	}
	if req.Source == "" || req.Target == "" {
		s.writeError(w, r, &requestError{message: "source and target are required"})
		return
	}
	out, err := s.engine.Conform(r.Context(), req.Source, req.Target)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, "text/plain; charset=utf-8", out)
}

func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	writeText(w, "text/plain; charset=utf-8", s.engine.Help())
}

func (s *Server) handleListResources(w http.ResponseWriter, r *http.Request) {
	list := ResourceList{Resources: []descriptor.Summary{}}
	if s.resources != nil {
		for _, d := range s.resources.List() {
			list.Resources = append(list.Resources, d.Summary())
		}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetResource(w http.ResponseWriter, r *http.Request) {
	d, err := s.resource(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d.Summary())
}

func (s *Server) handleResourceProfileByID(w http.ResponseWriter, r *http.Request) {
	d, err := s.resource(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ctx := logging.WithResource(r.Context(), d.ID)
	out, err := s.engine.Profile(ctx, d.Format, d.Source)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, "application/xml", out)
}

func (s *Server) handleResourceConform(w http.ResponseWriter, r *http.Request) {
	d, err := s.resource(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	target, err := s.readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ctx := logging.WithResource(r.Context(), d.ID)
	out, err := s.engine.ConformDocument(ctx, d.Format, d.Source, target)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeText(w, "text/plain; charset=utf-8", out)
}

func (s *Server) resource(r *http.Request) (*descriptor.Descriptor, error) {
	id := r.PathValue("id")
	if s.resources == nil {
		return nil, &descriptor.NotFoundError{ID: id}
	}
	return s.resources.Get(id)
}

func splitMarked(out string) []string {
	return strings.Split(out, "\n\n"+engine.Marker+"\n\n")
}
