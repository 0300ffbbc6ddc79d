package http

import (
	"net/http"

	"go.uber.org/zap"

	"lingua-quiz-service/internal/app"
)

// NewRouter wires pages, API, WebSocket, health and metrics routes behind the logging middleware.
func NewRouter(service *app.QuizService, defaultQuiz string, log *zap.Logger) http.Handler {
	metrics := NewMetrics()
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /ws", NewWSHandler(service, metrics, log).ServeWS)
	NewAPIHandler(service, metrics, log).Register(mux)
	NewPages(service, defaultQuiz, metrics, log).Register(mux)

	return Middleware(mux, metrics, log)
}
