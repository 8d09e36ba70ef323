package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/avstrong/campsite/internal/reservation"
	"github.com/avstrong/campsite/internal/tools"
	"github.com/go-playground/validator/v10"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	maxBodyBytes         = 64 << 10
)

type instructionRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.l.LogErrorf("Could not encode response: %v", err.Error())
	}
}

func (s *Server) checkRequest(w http.ResponseWriter, r *http.Request) *instructionRequest {
	var input instructionRequest

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&input); err != nil {
		//nolint:exhaustruct
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "request body must be a JSON object with a text field"})

		return nil
	}

	if err := s.validate.Struct(input); err != nil {
		//nolint:exhaustruct
		resp := errorResponse{Error: http.StatusText(http.StatusBadRequest)}

		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			resp.Fields = make(map[string]string, len(validationErrors))
			for _, fe := range validationErrors {
				resp.Fields[fe.Field()] = fe.Tag()
			}
		}

		s.writeJSON(w, http.StatusBadRequest, resp)

		return nil
	}

	return &input
}

// withIdempotencyKey lets a client retry a create without booking twice.
func withIdempotencyKey(r *http.Request) *http.Request {
	key := r.Header.Get(idempotencyKeyHeader)
	if key == "" {
		return r
	}

	return r.WithContext(reservation.NewContextWithIdempotencyKey(r.Context(), key))
}

func (s *Server) instructionHandler(w http.ResponseWriter, r *http.Request) {
	input := s.checkRequest(w, r)
	if input == nil {
		return
	}

	r = withIdempotencyKey(r)

	s.writeJSON(w, http.StatusOK, s.dispatcher.Handle(r.Context(), input.Text))
}

func (s *Server) toolHandler(w http.ResponseWriter, r *http.Request) {
	input := s.checkRequest(w, r)
	if input == nil {
		return
	}

	r = withIdempotencyKey(r)

	reply, err := s.dispatcher.Call(r.Context(), r.PathValue("tool"), input.Text)
	if unknown := tools.IsUnknownToolError(err); unknown != nil {
		//nolint:exhaustruct
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: unknown.Error()})

		return
	}

	if err != nil {
		s.l.LogErrorf("Could not call tool: %v", err.Error())
		//nolint:exhaustruct
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})

		return
	}

	s.writeJSON(w, http.StatusOK, reply)
}

func (s *Server) toolsListHandler(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, tools.Tools())
}

func (s *Server) livenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) addRoutes(r *http.ServeMux) {
	r.Handle(
		"POST /api/instructions/v1",
		s.applyMiddlewares(http.HandlerFunc(s.instructionHandler), s.loggerMiddleware(), s.recoverMiddleware()),
	)
	r.Handle(
		"POST /api/tools/v1/{tool}",
		s.applyMiddlewares(http.HandlerFunc(s.toolHandler), s.loggerMiddleware(), s.recoverMiddleware()),
	)
	r.Handle(
		"GET /api/tools/v1",
		s.applyMiddlewares(http.HandlerFunc(s.toolsListHandler), s.loggerMiddleware(), s.recoverMiddleware()),
	)
	r.Handle(
		fmt.Sprintf("GET %s", s.conf.LivenessEndpoint),
		s.applyMiddlewares(http.HandlerFunc(s.livenessHandler), s.loggerMiddleware(), s.recoverMiddleware()),
	)
}
