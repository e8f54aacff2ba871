package handler

import (
	"net/http"
	"strconv"

	"github.com/newlifejournal/newlifejournal/internal/domain"
)

func (h *Handler) handleListWeeks(w http.ResponseWriter, r *http.Request) {
	weeks, err := h.deps.Weeks.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, weeks)
}

func (h *Handler) handleGetWeek(w http.ResponseWriter, r *http.Request) {
	week, err := strconv.Atoi(r.PathValue("week"))
	if err != nil {
		writeError(w, domain.ErrWeekNotFound)
		return
	}

	info, err := h.deps.Weeks.Get(r.Context(), week)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}
