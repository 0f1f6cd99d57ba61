package public

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	contactapp "github.com/rchitlangi/cv-site/api/internal/contact/application"
)

// SiteInfo is rendered into the index page.
type SiteInfo struct {
	Name           string
	Phone          string
	CVLink         string
	CaptchaSiteKey string
}

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger       zerolog.Logger
	contacts     contactapp.ContactService
	alignStatus  bool
	site         SiteInfo
	templatesDir string
	staticDir    string
	webDir       string
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger   zerolog.Logger
	Contacts contactapp.ContactService
	// AlignStatus makes the transport status follow the result status.
	// When false every processed submission is answered with 200.
	AlignStatus  bool
	Site         SiteInfo
	TemplatesDir string
	StaticDir    string
	WebDir       string
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:       cfg.Logger.With().Str("component", "public_http").Logger(),
		contacts:     cfg.Contacts,
		alignStatus:  cfg.AlignStatus,
		site:         cfg.Site,
		templatesDir: cfg.TemplatesDir,
		staticDir:    cfg.StaticDir,
		webDir:       cfg.WebDir,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/", h.indexHandler())
	r.Post("/contact", h.contactHandler())
	r.Get("/files/{file}", h.pdfHandler())
	r.Get("/favicon.ico", h.staticFileHandler("icons/favicon.ico"))
	r.Get("/robots.txt", h.staticFileHandler("robots.txt"))
	r.Handle("/static/*", h.webFilesHandler())
	r.NotFound(h.NotFound)
}
