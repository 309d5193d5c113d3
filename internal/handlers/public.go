package handlers

import (
	"bytes"
	"net/http"
	"time"
)

/* ========= ВСПОМОГАТЕЛЬНОЕ ========= */

// Единый рендер: сам прокидывает .IsAdmin, .Flashes и .Year во все шаблоны
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data map[string]any) {
	tmpl, ok := h.pages[page]
	if !ok {
		h.log.Error("unknown page", "page", page)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		data = map[string]any{}
	}
	_, isAdmin := h.sess.Current(r)
	data["IsAdmin"] = isAdmin
	data["Year"] = time.Now().Year()

	// flash забираем до записи тела: это Set-Cookie
	flashes, err := h.sess.Flashes(w, r)
	if err != nil {
		h.log.Warn("read flashes", "error", err)
	}
	data["Flashes"] = flashes

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		h.log.Error("render template", "page", page, "error", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

/* ========= ПУБЛИЧНЫЕ СТРАНИЦЫ ========= */

func (h *Handler) ShowIndexPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "index", map[string]any{"Title": "Home"})
}

func (h *Handler) ShowAboutPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "about", map[string]any{"Title": "About"})
}

func (h *Handler) ShowProgramsPage(w http.ResponseWriter, r *http.Request) {
	programs, err := h.store.ListPrograms(r.Context())
	if err != nil {
		h.log.Error("list programs", "error", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	h.render(w, r, http.StatusOK, "programs", map[string]any{
		"Title":    "Programs",
		"Programs": programs,
	})
}

func (h *Handler) ShowSuccessPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "success", map[string]any{"Title": "Thank you"})
}

// Healthz отвечает ok, пока база пингуется.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Ping(r.Context()); err != nil {
		h.log.Error("health check", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
