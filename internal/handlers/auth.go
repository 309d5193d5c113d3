package handlers

import (
	"Academy/internal/db"
	"Academy/internal/models"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	loginOK       = "Login successful!"
	loginFailed   = "Invalid credentials. Please try again."
	logoutMessage = "You have been logged out successfully."
)

// ShowLoginPage отображает страницу входа администратора
func (h *Handler) ShowLoginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", map[string]any{"Title": "Admin login"})
}

// HandleLogin обрабатывает POST-запрос входа администратора
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request: cannot parse form", http.StatusBadRequest)
		return
	}
	_, hasUser := r.PostForm["username"]
	_, hasPass := r.PostForm["password"]
	if !hasUser || !hasPass {
		http.Error(w, "Bad Request: username and password are required", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")

	admin, err := h.store.AdminByUsername(r.Context(), username)
	switch {
	case errors.Is(err, db.ErrNotFound):
		h.loginFailed(w, r, username)
		return
	case err != nil:
		h.log.Error("admin lookup", "error", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)) != nil {
		h.loginFailed(w, r, username)
		return
	}

	if err := h.sess.AddFlash(r, models.Flash{Category: "success", Message: loginOK}); err != nil {
		h.log.Warn("add flash", "error", err)
	}
	if err := h.sess.Login(w, r, admin.Username); err != nil {
		h.log.Error("session save", "error", err)
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	h.log.Info("admin logged in", "username", admin.Username)
	http.Redirect(w, r, "/admin/dashboard", http.StatusFound)
}

// loginFailed — flash с ошибкой и повторный показ формы в том же ответе.
func (h *Handler) loginFailed(w http.ResponseWriter, r *http.Request, username string) {
	h.log.Info("admin login failed", "username", username)
	if err := h.sess.AddFlash(r, models.Flash{Category: "danger", Message: loginFailed}); err != nil {
		h.log.Warn("add flash", "error", err)
	}
	h.render(w, r, http.StatusOK, "login", map[string]any{"Title": "Admin login"})
}

// HandleLogout удаляет признак входа и возвращает на логин
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.sess.AddFlash(r, models.Flash{Category: "info", Message: logoutMessage}); err != nil {
		h.log.Warn("add flash", "error", err)
	}
	if err := h.sess.Logout(w, r); err != nil {
		h.log.Error("session clear", "error", err)
		http.Error(w, "Logout error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/admin/login", http.StatusFound)
}
