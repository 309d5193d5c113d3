package handlers

import (
	"Academy/internal/middleware"
	"Academy/internal/models"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const enquirySubmitted = "Your enquiry has been submitted successfully! We will contact you soon."

// поля формы /contact, все обязательны
var enquiryFields = []string{"name", "email", "address", "contact_no", "program_id"}

// ShowContactPage — форма заявки со списком курсов.
func (h *Handler) ShowContactPage(w http.ResponseWriter, r *http.Request) {
	programs, err := h.store.ListPrograms(r.Context())
	if err != nil {
		h.log.Error("list programs", "error", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	h.render(w, r, http.StatusOK, "contact", map[string]any{
		"Title":    "Contact",
		"Programs": programs,
	})
}

// AddEnquiry принимает публичную заявку. Проверяется только наличие полей;
// формат email/телефона и существование курса не проверяются.
func (h *Handler) AddEnquiry(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request: cannot parse form", http.StatusBadRequest)
		return
	}
	for _, f := range enquiryFields {
		if _, ok := r.PostForm[f]; !ok {
			http.Error(w, fmt.Sprintf("Bad Request: missing form field %q", f), http.StatusBadRequest)
			return
		}
	}

	programID, err := strconv.ParseInt(strings.TrimSpace(r.PostForm.Get("program_id")), 10, 64)
	if err != nil {
		http.Error(w, "Bad Request: program_id must be an integer", http.StatusBadRequest)
		return
	}

	e := models.Enquiry{
		Name:      r.PostForm.Get("name"),
		Email:     r.PostForm.Get("email"),
		Address:   r.PostForm.Get("address"),
		ContactNo: r.PostForm.Get("contact_no"),
		ProgramID: programID,
	}
	id, err := h.store.CreateEnquiry(r.Context(), e)
	if err != nil {
		h.log.Error("create enquiry", "error", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	h.log.Info("enquiry created", "id", id, "program_id", programID)

	if err := h.sess.AddFlash(r, models.Flash{Category: "success", Message: enquirySubmitted}); err == nil {
		if err := h.sess.Save(w, r); err != nil {
			h.log.Warn("save flash", "error", err)
		}
	}
	http.Redirect(w, r, "/success", http.StatusFound)
}

/* ========= АДМИН UI ========= */

// ShowDashboard — все заявки. Доступ проверяет middleware.AdminOnly.
func (h *Handler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	enquiries, err := h.store.ListEnquiries(r.Context())
	if err != nil {
		h.log.Error("list enquiries", "error", err)
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	var username string
	if claims, ok := middleware.AdminFrom(r.Context()); ok {
		username = claims.Subject
	}
	h.render(w, r, http.StatusOK, "dashboard", map[string]any{
		"Title":     "Admin · Enquiries",
		"Username":  username,
		"Enquiries": enquiries,
	})
}
