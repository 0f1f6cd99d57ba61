package public

import (
	"bytes"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
)

var pdfNamePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+\.pdf$`)

func (h *Handler) indexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		tmpl, err := template.ParseFiles(filepath.Join(h.templatesDir, "index.html"))
		if err != nil {
			h.logger.Error().Err(err).Msg("index template could not be loaded")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		var buf bytes.Buffer
		err = tmpl.Execute(&buf, map[string]string{
			"name":            h.site.Name,
			"phone":           h.site.Phone,
			"cv_link":         h.site.CVLink,
			"captcha_sitekey": h.site.CaptchaSiteKey,
		})
		if err != nil {
			h.logger.Error().Err(err).Msg("index template could not be rendered")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

func (h *Handler) pdfHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "file")
		if !pdfNamePattern.MatchString(name) {
			h.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		h.serveFile(w, r, filepath.Join(h.staticDir, "files", name))
	}
}

func (h *Handler) staticFileHandler(rel string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.serveFile(w, r, filepath.Join(h.staticDir, filepath.FromSlash(rel)))
	}
}

func (h *Handler) webFilesHandler() http.Handler {
	files := http.StripPrefix("/static", http.FileServer(http.Dir(h.webDir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			h.NotFound(w, r)
			return
		}
		rel := strings.TrimPrefix(r.URL.Path, "/static")
		if info, err := os.Stat(filepath.Join(h.webDir, filepath.FromSlash(filepath.Clean("/"+rel)))); err != nil || info.IsDir() {
			h.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// serveFile writes the file inline, falling back to the 404 page.
func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, path string) {
	f, err := os.Open(path)
	if err != nil {
		w.Header().Del("Content-Type")
		h.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		w.Header().Del("Content-Type")
		h.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}

// NotFound serves the site's 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, _ *http.Request) {
	page, err := os.ReadFile(filepath.Join(h.staticDir, "html", "404.html"))
	if err != nil {
		http.Error(w, "404 page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(page)
}
