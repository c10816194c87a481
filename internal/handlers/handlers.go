package handlers

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// Checker produces the output text for one "check weather" action
type Checker interface {
	CheckWeather(ctx context.Context, city string) string
}

// Handlers holds dependencies for HTTP handlers
type Handlers struct {
	checker   Checker
	logger    *zap.Logger
	templates *template.Template
}

// page is the data rendered into index.html
type page struct {
	City   string
	Output string
}

// New creates a new Handlers instance
func New(checker Checker, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handlers{
		checker:   checker,
		logger:    logger,
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// Router wires the routes and middleware
func (h *Handlers) Router() http.Handler {
	r := mux.NewRouter()
	r.Use(RequestID, RequestLogger(h.logger))

	r.HandleFunc("/", h.HandleIndex).Methods(http.MethodGet)
	r.HandleFunc("/", h.HandleCheckWeather).Methods(http.MethodPost)
	r.HandleFunc("/health", h.HandleHealth).Methods(http.MethodGet)

	return r
}

// HandleIndex renders the empty form
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	h.render(w, page{})
}

// HandleCheckWeather looks up the submitted city and renders the result
// into the output area
func (h *Handlers) HandleCheckWeather(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	city := r.PostForm.Get("city")
	h.render(w, page{
		City:   city,
		Output: h.checker.CheckWeather(r.Context(), city),
	})
}

// HandleHealth handles health check endpoint
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (h *Handlers) render(w http.ResponseWriter, p page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, "index.html", p); err != nil {
		h.logger.Error("template execution failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
