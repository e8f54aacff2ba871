package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/newlifejournal/newlifejournal/internal/domain"
)

type visitRequest struct {
	Date          time.Time  `json:"date"`
	Week          int        `json:"week,omitempty"`
	Type          string     `json:"type"`
	Notes         string     `json:"notes,omitempty"`
	Weight        *float64   `json:"weight,omitempty"`
	BloodPressure string     `json:"bloodPressure,omitempty"`
	NextVisitDate *time.Time `json:"nextVisitDate,omitempty"`
}

type visitResponse struct {
	ID            string     `json:"id"`
	Date          time.Time  `json:"date"`
	Week          int        `json:"week"`
	Type          string     `json:"type"`
	Notes         string     `json:"notes,omitempty"`
	Weight        *float64   `json:"weight,omitempty"`
	BloodPressure string     `json:"bloodPressure,omitempty"`
	NextVisitDate *time.Time `json:"nextVisitDate,omitempty"`
}

var visitTypes = map[domain.VisitType]bool{
	domain.VisitCheckup:    true,
	domain.VisitUltrasound: true,
	domain.VisitTest:       true,
	domain.VisitEmergency:  true,
}

func (h *Handler) handleAddVisit(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req visitRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	if !visitTypes[domain.VisitType(req.Type)] {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown visit type"})
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	v := &domain.HospitalVisit{
		PregnancyID:   pregnancyID,
		Date:          req.Date,
		Week:          req.Week,
		Type:          domain.VisitType(req.Type),
		Notes:         req.Notes,
		Weight:        req.Weight,
		BloodPressure: req.BloodPressure,
		NextVisitDate: req.NextVisitDate,
	}
	if err := h.deps.Pregnancies.AddVisit(r.Context(), userID, v); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toVisitResponse(v))
}

func toVisitResponse(v *domain.HospitalVisit) visitResponse {
	return visitResponse{
		ID:            v.ID.String(),
		Date:          v.Date,
		Week:          v.Week,
		Type:          string(v.Type),
		Notes:         v.Notes,
		Weight:        v.Weight,
		BloodPressure: v.BloodPressure,
		NextVisitDate: v.NextVisitDate,
	}
}

func (h *Handler) handleListVisits(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}

	visits, err := h.deps.Pregnancies.ListVisits(r.Context(), userID, pregnancyID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]visitResponse, 0, len(visits))
	for i := range visits {
		out = append(out, toVisitResponse(&visits[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleDeleteVisit(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}
	recordID, err := uuid.Parse(r.PathValue("recordID"))
	if err != nil {
		writeError(w, domain.ErrVisitNotFound)
		return
	}

	if err := h.deps.Pregnancies.DeleteVisit(r.Context(), userID, pregnancyID, recordID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type symptomRequest struct {
	Date     time.Time `json:"date"`
	Week     int       `json:"week,omitempty"`
	Type     string    `json:"type"`
	Severity int       `json:"severity"`
	Notes    string    `json:"notes,omitempty"`
}

type symptomResponse struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Week     int       `json:"week"`
	Type     string    `json:"type"`
	Severity int       `json:"severity"`
	Notes    string    `json:"notes,omitempty"`
}

var symptomTypes = map[domain.SymptomType]bool{
	domain.SymptomNausea:   true,
	domain.SymptomFatigue:  true,
	domain.SymptomHeadache: true,
	domain.SymptomBackPain: true,
	domain.SymptomOther:    true,
}

func (h *Handler) handleAddSymptom(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req symptomRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	if !symptomTypes[domain.SymptomType(req.Type)] {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown symptom type"})
		return
	}
	if req.Severity < 1 || req.Severity > 5 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "severity must be between 1 and 5"})
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	sym := &domain.Symptom{
		PregnancyID: pregnancyID,
		Date:        req.Date,
		Week:        req.Week,
		Type:        domain.SymptomType(req.Type),
		Severity:    req.Severity,
		Notes:       req.Notes,
	}
	if err := h.deps.Pregnancies.AddSymptom(r.Context(), userID, sym); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, symptomResponse{
		ID: sym.ID.String(), Date: sym.Date, Week: sym.Week,
		Type: string(sym.Type), Severity: sym.Severity, Notes: sym.Notes,
	})
}

func (h *Handler) handleListSymptoms(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}

	symptoms, err := h.deps.Pregnancies.ListSymptoms(r.Context(), userID, pregnancyID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]symptomResponse, 0, len(symptoms))
	for _, s := range symptoms {
		out = append(out, symptomResponse{
			ID: s.ID.String(), Date: s.Date, Week: s.Week,
			Type: string(s.Type), Severity: s.Severity, Notes: s.Notes,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleDeleteSymptom(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}
	recordID, err := uuid.Parse(r.PathValue("recordID"))
	if err != nil {
		writeError(w, domain.ErrSymptomNotFound)
		return
	}

	if err := h.deps.Pregnancies.DeleteSymptom(r.Context(), userID, pregnancyID, recordID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type milestoneRequest struct {
	Date        time.Time `json:"date"`
	Week        int       `json:"week,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}

type milestoneResponse struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Week        int       `json:"week"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}

func (h *Handler) handleAddMilestone(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req milestoneRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	if req.Title == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "title is required"})
		return
	}
	if req.Date.IsZero() {
		req.Date = time.Now()
	}

	m := &domain.Milestone{
		PregnancyID: pregnancyID,
		Date:        req.Date,
		Week:        req.Week,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := h.deps.Pregnancies.AddMilestone(r.Context(), userID, m); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, milestoneResponse{
		ID: m.ID.String(), Date: m.Date, Week: m.Week,
		Title: m.Title, Description: m.Description, ImageURL: m.ImageURL,
	})
}

func (h *Handler) handleListMilestones(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}

	milestones, err := h.deps.Pregnancies.ListMilestones(r.Context(), userID, pregnancyID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]milestoneResponse, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, milestoneResponse{
			ID: m.ID.String(), Date: m.Date, Week: m.Week,
			Title: m.Title, Description: m.Description, ImageURL: m.ImageURL,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleDeleteMilestone(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}
	recordID, err := uuid.Parse(r.PathValue("recordID"))
	if err != nil {
		writeError(w, domain.ErrMilestoneNotFound)
		return
	}

	if err := h.deps.Pregnancies.DeleteMilestone(r.Context(), userID, pregnancyID, recordID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
