package handlers

import (
	"Academy/internal/models"
	"Academy/internal/sessions"
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
)

// Store — то, что хендлерам нужно от слоя данных.
type Store interface {
	Ping(ctx context.Context) error
	ListPrograms(ctx context.Context) ([]models.Program, error)
	CreateEnquiry(ctx context.Context, e models.Enquiry) (int64, error)
	ListEnquiries(ctx context.Context) ([]models.EnquiryRow, error)
	AdminByUsername(ctx context.Context, username string) (models.Admin, error)
}

// страницы: имя -> файл шаблона поверх base.html
var pageFiles = map[string]string{
	"index":     "templates/index.html",
	"about":     "templates/about.html",
	"programs":  "templates/programs.html",
	"contact":   "templates/contact.html",
	"success":   "templates/success.html",
	"login":     "templates/admin/login.html",
	"dashboard": "templates/admin/dashboard.html",
}

type Handler struct {
	store  Store
	sess   *sessions.Manager
	pages  map[string]*template.Template
	assets fs.FS
	log    *slog.Logger
}

// New разбирает шаблоны из assets один раз при старте.
func New(store Store, sess *sessions.Manager, assets fs.FS, log *slog.Logger) (*Handler, error) {
	if log == nil {
		log = slog.Default()
	}
	pages := make(map[string]*template.Template, len(pageFiles))
	for name, file := range pageFiles {
		t, err := template.ParseFS(assets, "templates/base.html", file)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Handler{store: store, sess: sess, pages: pages, assets: assets, log: log}, nil
}
