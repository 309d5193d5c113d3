package handlers

import (
	mw "Academy/internal/middleware"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router собирает все маршруты сайта.
func (h *Handler) Router() (http.Handler, error) {
	static, err := fs.Sub(h.assets, "static")
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// базовые middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.RedirectSlashes) // /path/ -> /path

	// статика
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	r.Get("/healthz", h.Healthz)

	// ---------- Публичные HTML-страницы ----------
	r.Get("/", h.ShowIndexPage)
	r.Get("/programs", h.ShowProgramsPage)
	r.Get("/about", h.ShowAboutPage)
	r.Get("/contact", h.ShowContactPage)
	r.Post("/contact", h.AddEnquiry)
	r.Get("/success", h.ShowSuccessPage)

	// ---------- Аутентификация администратора ----------
	r.Get("/admin/login", h.ShowLoginPage)
	r.Post("/admin/login", h.HandleLogin)
	r.Get("/admin/logout", h.HandleLogout)
	r.Post("/admin/logout", h.HandleLogout)

	// ---------- Публичное JSON API ----------
	r.Get("/api/programs", h.GetPrograms)

	// ---------- Админ-панель ----------
	r.Group(func(g chi.Router) {
		g.Use(mw.AdminOnly(h.sess)) // доступ только с валидной сессией

		g.Get("/admin/dashboard", h.ShowDashboard)
		g.Get("/api/enquiries", h.GetEnquiries)
	})

	return r, nil
}
