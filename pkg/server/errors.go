package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"mercator-hq/stc/pkg/descriptor"
	stcErrors "mercator-hq/stc/pkg/stc/errors"
)

// Error kinds beyond those of the stc error taxonomy.
const (
	KindRequest  = "request"
	KindNotFound = "not_found"
	KindTooLarge = "too_large"
)

// ErrorResponse is the body of every non-2xx API reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`

	// Pos is the byte offset of an STC-S parse error.
	Pos *int `json:"pos,omitempty"`
}

// requestError is a malformed request, as opposed to malformed STC.
type requestError struct {
	message string
}

func (e *requestError) Error() string { return e.message }

// errorResponse maps err to a status code and reply body.
func errorResponse(err error) (int, ErrorResponse) {
	var (
		reqErr   *requestError
		notFound *descriptor.NotFoundError
		tooLarge *http.MaxBytesError
	)
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindRequest}
	case errors.As(err, &notFound):
		return http.StatusNotFound, ErrorResponse{Error: err.Error(), Kind: KindNotFound}
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error(), Kind: KindTooLarge}
	}

	kind := stcErrors.KindOf(err)
	resp := ErrorResponse{Error: err.Error(), Kind: string(kind)}
	switch kind {
	case stcErrors.KindParse:
		var perr *stcErrors.ParseError
		if errors.As(err, &perr) {
			pos := perr.Pos
			resp.Pos = &pos
		}
		return http.StatusBadRequest, resp
	case stcErrors.KindXML, stcErrors.KindValue:
		return http.StatusBadRequest, resp
	case stcErrors.KindNotImplemented:
		return http.StatusUnprocessableEntity, resp
	default:
		resp.Error = "internal error"
		return http.StatusInternalServerError, resp
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, resp := errorResponse(err)
	if code == http.StatusInternalServerError {
		s.logger.WithContext(r.Context()).Error("request failed", "error", err)
	}
	writeJSON(w, code, resp)
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

func writeText(w http.ResponseWriter, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
