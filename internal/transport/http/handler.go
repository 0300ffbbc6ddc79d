package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"lingua-quiz-service/internal/app"
	"lingua-quiz-service/internal/domain"
)

// APIHandler exposes the quiz screen use cases as JSON endpoints.
type APIHandler struct {
	service *app.QuizService
	metrics *Metrics
	log     *zap.Logger
}

func NewAPIHandler(service *app.QuizService, metrics *Metrics, log *zap.Logger) *APIHandler {
	return &APIHandler{service: service, metrics: metrics, log: log}
}

type startRequest struct {
	QuizID string `json:"quizId"`
}

type selectRequest struct {
	Option *int `json:"option"`
}

type errorPayload struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Register mounts the API routes on mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/sessions", h.start)
	mux.HandleFunc("GET /api/sessions/{id}", h.screen)
	mux.HandleFunc("POST /api/sessions/{id}/select", h.selectOption)
	mux.HandleFunc("POST /api/sessions/{id}/submit", h.submit)
	mux.HandleFunc("POST /api/sessions/{id}/next", h.advance)
	mux.HandleFunc("POST /api/sessions/{id}/finish", h.finish)
	mux.HandleFunc("GET /api/quizzes/{id}", h.quiz)
}

func (h *APIHandler) start(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuizID == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "quizId is required")
		return
	}
	screen, err := h.service.Start(r.Context(), req.QuizID)
	h.metrics.Transition("start", err)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, screen)
}

func (h *APIHandler) screen(w http.ResponseWriter, r *http.Request) {
	screen, err := h.service.Screen(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, screen)
}

func (h *APIHandler) selectOption(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Option == nil {
		writeError(w, http.StatusBadRequest, "bad_request", "option is required")
		return
	}
	screen, err := h.service.SelectOption(r.Context(), r.PathValue("id"), *req.Option)
	h.metrics.Transition("select", err)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, screen)
}

func (h *APIHandler) submit(w http.ResponseWriter, r *http.Request) {
	screen, err := h.service.Submit(r.Context(), r.PathValue("id"))
	h.metrics.Transition("submit", err)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, screen)
}

func (h *APIHandler) advance(w http.ResponseWriter, r *http.Request) {
	screen, err := h.service.Advance(r.Context(), r.PathValue("id"))
	h.metrics.Transition("next", err)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, screen)
}

func (h *APIHandler) finish(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Finish(r.Context(), r.PathValue("id"))
	h.metrics.Transition("finish", err)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *APIHandler) quiz(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Quiz(r.Context(), r.PathValue("id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *APIHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, status, code, "internal error")
		return
	}
	writeError(w, status, code, err.Error())
}

// classify maps domain errors onto HTTP statuses and stable error codes.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, domain.ErrQuizNotFound):
		return http.StatusNotFound, "quiz_not_found"
	case errors.Is(err, domain.ErrOptionOutOfRange):
		return http.StatusUnprocessableEntity, "option_out_of_range"
	case errors.Is(err, domain.ErrSessionFinished):
		return http.StatusConflict, "session_finished"
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, "invalid_transition"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorPayload{Message: message, Code: code})
}
