package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/newlifejournal/newlifejournal/internal/domain"
	"github.com/newlifejournal/newlifejournal/internal/middleware"
)

func toBabyResponse(b *domain.Baby) babyResponse {
	resp := babyResponse{
		ID:          b.ID.String(),
		Name:        b.Name,
		BirthDate:   b.BirthDate,
		BirthWeight: b.BirthWeight,
		BirthHeight: b.BirthHeight,
		Gender:      b.Gender,
		Stage:       string(b.Stage),
	}
	if b.FromPregnancyID != nil {
		id := b.FromPregnancyID.String()
		resp.FromPregnancyID = &id
	}
	return resp
}

func (h *Handler) handleListBabies(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	babies, err := h.deps.Pregnancies.ListBabies(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]babyResponse, 0, len(babies))
	for i := range babies {
		out = append(out, toBabyResponse(&babies[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetBaby(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}
	babyID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, domain.ErrBabyNotFound)
		return
	}

	baby, err := h.deps.Pregnancies.GetBaby(r.Context(), userID, babyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBabyResponse(baby))
}
