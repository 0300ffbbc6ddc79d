package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"lingua-quiz-service/internal/app"
	"lingua-quiz-service/internal/quiz"
)

type WSHandler struct {
	service  *app.QuizService
	metrics  *Metrics
	log      *zap.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.QuizService, metrics *Metrics, log *zap.Logger) *WSHandler {
	return &WSHandler{
		service: service,
		metrics: metrics,
		log:     log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Option *int `json:"option"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades HTTP requests to websockets and drives one quiz session over the connection.
// The session is either resumed with ?session= or started with ?quizId=.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	quizID := r.URL.Query().Get("quizId")
	if sessionID == "" && quizID == "" {
		http.Error(w, "missing session or quizId", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := r.Context()
	var initial quiz.Screen
	if sessionID != "" {
		initial, err = h.service.Screen(ctx, sessionID)
	} else {
		initial, err = h.service.Start(ctx, quizID)
		h.metrics.Transition("start", err)
	}
	if err != nil {
		_ = conn.WriteJSON(errorMessage(err))
		return
	}
	sessionID = initial.SessionID

	send := make(chan outboundMessage[any], 16)
	writerDone := make(chan struct{})

	// Single writer: gorilla connections do not support concurrent writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				h.log.Debug("ws write error", zap.Error(err))
				return
			}
		}
	}()

	if enqueue(send, writerDone, outboundMessage[any]{Type: "state", Payload: initial}) {
		for {
			var inbound inboundMessage
			if err := conn.ReadJSON(&inbound); err != nil {
				break
			}
			msg, done := h.handle(r, sessionID, inbound)
			if !enqueue(send, writerDone, msg) || done {
				break
			}
		}
	}

	close(send)
	<-writerDone
}

// enqueue hands msg to the writer and reports false once the writer has stopped.
func enqueue(send chan<- outboundMessage[any], writerDone <-chan struct{}, msg outboundMessage[any]) bool {
	select {
	case send <- msg:
		return true
	case <-writerDone:
		return false
	}
}

// handle applies one client message. done reports that the session has ended.
func (h *WSHandler) handle(r *http.Request, sessionID string, inbound inboundMessage) (msg outboundMessage[any], done bool) {
	ctx := r.Context()
	var (
		screen quiz.Screen
		err    error
	)
	switch inbound.Type {
	case "select":
		var payload selectPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil || payload.Option == nil {
			return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "invalid select payload", Code: "bad_request"}}, false
		}
		screen, err = h.service.SelectOption(ctx, sessionID, *payload.Option)
	case "submit":
		screen, err = h.service.Submit(ctx, sessionID)
	case "next":
		screen, err = h.service.Advance(ctx, sessionID)
	case "finish":
		summary, err := h.service.Finish(ctx, sessionID)
		h.metrics.Transition("finish", err)
		if err != nil {
			return errorMessage(err), false
		}
		return outboundMessage[any]{Type: "summary", Payload: summary}, true
	default:
		return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: "unsupported message type", Code: "bad_request"}}, false
	}
	h.metrics.Transition(inbound.Type, err)
	if err != nil {
		return errorMessage(err), false
	}
	return outboundMessage[any]{Type: "state", Payload: screen}, false
}

func errorMessage(err error) outboundMessage[any] {
	_, code := classify(err)
	message := err.Error()
	if code == "internal" {
		message = "internal error"
	}
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: message, Code: code}}
}
