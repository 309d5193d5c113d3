package handlers

import (
	"encoding/json"
	"net/http"
)

// ---------- JSON API ----------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

// GetPrograms — публичный список курсов.
func (h *Handler) GetPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.store.ListPrograms(r.Context())
	if err != nil {
		h.log.Error("list programs", "error", err)
		jsonError(w, http.StatusInternalServerError, "db query failed")
		return
	}
	writeJSON(w, http.StatusOK, programs)
}

// GetEnquiries — заявки для админки (за middleware.AdminOnly).
func (h *Handler) GetEnquiries(w http.ResponseWriter, r *http.Request) {
	enquiries, err := h.store.ListEnquiries(r.Context())
	if err != nil {
		h.log.Error("list enquiries", "error", err)
		jsonError(w, http.StatusInternalServerError, "db query failed")
		return
	}
	writeJSON(w, http.StatusOK, enquiries)
}
