package http

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"lingua-quiz-service/internal/app"
	"lingua-quiz-service/internal/domain"
	"lingua-quiz-service/internal/quiz"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Pages serves the landing, auth and quiz screens as server-rendered HTML.
type Pages struct {
	service     *app.QuizService
	defaultQuiz string
	metrics     *Metrics
	log         *zap.Logger
}

func NewPages(service *app.QuizService, defaultQuiz string, metrics *Metrics, log *zap.Logger) *Pages {
	return &Pages{service: service, defaultQuiz: defaultQuiz, metrics: metrics, log: log}
}

type pageData struct {
	FinishSession string
	Screen        *quiz.Screen
	Summary       *quiz.Summary
	Locked        bool
}

// Register mounts the page routes on mux.
func (p *Pages) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", p.static("index"))
	mux.HandleFunc("GET /main", p.static("index"))
	mux.HandleFunc("GET /login", p.static("login"))
	mux.HandleFunc("GET /register", p.static("register"))
	mux.HandleFunc("GET /tests", p.tests)
	mux.HandleFunc("POST /tests", p.act)
}

func (p *Pages) static(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p.render(w, name, pageData{})
	}
}

// tests shows the quiz screen for ?session=, or starts a session on ?quiz= (default quiz otherwise).
func (p *Pages) tests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if sessionID := r.URL.Query().Get("session"); sessionID != "" {
		screen, err := p.service.Screen(ctx, sessionID)
		if err == nil {
			p.render(w, "tests", screenPage(screen))
			return
		}
		if !errors.Is(err, domain.ErrSessionNotFound) {
			p.fail(w, err)
			return
		}
	}

	quizID := r.URL.Query().Get("quiz")
	if quizID == "" {
		quizID = p.defaultQuiz
	}
	screen, err := p.service.Start(ctx, quizID)
	p.metrics.Transition("start", err)
	if err != nil {
		p.fail(w, err)
		return
	}
	redirectToSession(w, r, screen.SessionID)
}

// act applies a form post from the quiz screen and redirects back to it.
// Disallowed actions are simply ignored; the screen never shows transition errors.
func (p *Pages) act(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	sessionID := r.PostForm.Get("session")
	action := r.PostForm.Get("action")

	var err error
	switch action {
	case "select":
		option, convErr := strconv.Atoi(r.PostForm.Get("option"))
		if convErr != nil {
			http.Error(w, "bad option", http.StatusBadRequest)
			return
		}
		_, err = p.service.SelectOption(ctx, sessionID, option)
	case "submit":
		_, err = p.service.Submit(ctx, sessionID)
	case "next":
		_, err = p.service.Advance(ctx, sessionID)
	case "finish":
		summary, err := p.service.Finish(ctx, sessionID)
		p.metrics.Transition("finish", err)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				http.Redirect(w, r, "/main", http.StatusSeeOther)
				return
			}
			p.fail(w, err)
			return
		}
		p.render(w, "tests", pageData{Summary: &summary})
		return
	default:
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	}
	p.metrics.Transition(action, err)

	status, _ := classify(err)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Redirect(w, r, "/tests", http.StatusSeeOther)
		return
	case status == http.StatusInternalServerError:
		p.fail(w, err)
		return
	}
	redirectToSession(w, r, sessionID)
}

func (p *Pages) render(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplates.ExecuteTemplate(w, name, data); err != nil {
		p.log.Error("render page", zap.String("page", name), zap.Error(err))
	}
}

func (p *Pages) fail(w http.ResponseWriter, err error) {
	status, _ := classify(err)
	if status == http.StatusInternalServerError {
		p.log.Error("page request failed", zap.Error(err))
	}
	http.Error(w, http.StatusText(status), status)
}

func screenPage(screen quiz.Screen) pageData {
	data := pageData{Screen: &screen, Locked: screen.ShowNext}
	if screen.Phase != quiz.PhaseFinished {
		data.FinishSession = screen.SessionID
	}
	return data
}

func redirectToSession(w http.ResponseWriter, r *http.Request, sessionID string) {
	http.Redirect(w, r, "/tests?session="+url.QueryEscape(sessionID), http.StatusSeeOther)
}
