package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"syncolow/internal/app"
)

// maxUploadBytes caps import uploads.
const maxUploadBytes = 20 << 20

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)
	r.Get("/api/imports/fields", h.listFields)
	r.With(RequestBodyLimit(maxUploadBytes)).Post("/api/imports", h.importFile)

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
