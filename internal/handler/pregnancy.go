package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/newlifejournal/newlifejournal/internal/domain"
	"github.com/newlifejournal/newlifejournal/internal/middleware"
	"github.com/newlifejournal/newlifejournal/internal/service"
)

type pregnancyRequest struct {
	MotherName     string     `json:"motherName"`
	DueDate        time.Time  `json:"dueDate"`
	ConceptionDate *time.Time `json:"conceptionDate,omitempty"`
	BabyName       string     `json:"babyName,omitempty"`
	Hospital       string     `json:"hospital,omitempty"`
	DoctorName     string     `json:"doctorName,omitempty"`
	DoctorPhone    string     `json:"doctorPhone,omitempty"`
	BloodType      string     `json:"bloodType,omitempty"`
}

type pregnancyResponse struct {
	ID                   string     `json:"id"`
	MotherName           string     `json:"motherName"`
	DueDate              time.Time  `json:"dueDate"`
	ConceptionDate       *time.Time `json:"conceptionDate,omitempty"`
	CurrentWeek          int        `json:"currentWeek"`
	BabyName             string     `json:"babyName,omitempty"`
	Hospital             string     `json:"hospital,omitempty"`
	DoctorName           string     `json:"doctorName,omitempty"`
	DoctorPhone          string     `json:"doctorPhone,omitempty"`
	BloodType            string     `json:"bloodType,omitempty"`
	Status               string     `json:"status"`
	CompletedAt          *time.Time `json:"completedAt,omitempty"`
	TransitionedToBabyID *string    `json:"transitionedToBabyId,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
}

func toPregnancyResponse(p *domain.Pregnancy) pregnancyResponse {
	resp := pregnancyResponse{
		ID:             p.ID.String(),
		MotherName:     p.MotherName,
		DueDate:        p.DueDate,
		ConceptionDate: p.ConceptionDate,
		CurrentWeek:    p.CurrentWeek,
		BabyName:       p.BabyName,
		Hospital:       p.Hospital,
		DoctorName:     p.DoctorName,
		DoctorPhone:    p.DoctorPhone,
		BloodType:      p.BloodType,
		Status:         string(p.Status),
		CompletedAt:    p.CompletedAt,
		CreatedAt:      p.CreatedAt,
	}
	if p.TransitionedToBabyID != nil {
		id := p.TransitionedToBabyID.String()
		resp.TransitionedToBabyID = &id
	}
	return resp
}

// requestIDs pulls the authenticated user and the {id} path value.
func requestIDs(r *http.Request) (userID, pregnancyID uuid.UUID, err error) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		return uuid.Nil, uuid.Nil, domain.ErrUserNotFound
	}
	pregnancyID, err = uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, domain.ErrPregnancyNotFound
	}
	return userID, pregnancyID, nil
}

func (h *Handler) handleCreatePregnancy(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var req pregnancyRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	if req.MotherName == "" || req.DueDate.IsZero() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "motherName and dueDate are required"})
		return
	}

	p, err := h.deps.Pregnancies.Create(r.Context(), userID, service.CreatePregnancyParams{
		MotherName:     req.MotherName,
		DueDate:        req.DueDate,
		ConceptionDate: req.ConceptionDate,
		BabyName:       req.BabyName,
		Hospital:       req.Hospital,
		DoctorName:     req.DoctorName,
		DoctorPhone:    req.DoctorPhone,
		BloodType:      req.BloodType,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toPregnancyResponse(p))
}

func (h *Handler) handleListPregnancies(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	list, err := h.deps.Pregnancies.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]pregnancyResponse, 0, len(list))
	for i := range list {
		out = append(out, toPregnancyResponse(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) handleGetPregnancy(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}

	p, err := h.deps.Pregnancies.GetOwned(r.Context(), userID, pregnancyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPregnancyResponse(p))
}

func (h *Handler) handleUpdatePregnancy(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req pregnancyRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	p := &domain.Pregnancy{
		ID:             pregnancyID,
		MotherName:     req.MotherName,
		DueDate:        req.DueDate,
		ConceptionDate: req.ConceptionDate,
		BabyName:       req.BabyName,
		Hospital:       req.Hospital,
		DoctorName:     req.DoctorName,
		DoctorPhone:    req.DoctorPhone,
		BloodType:      req.BloodType,
	}
	if err := h.deps.Pregnancies.Update(r.Context(), userID, p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toPregnancyResponse(p))
}

type completePregnancyRequest struct {
	BabyName    string    `json:"babyName,omitempty"`
	BirthDate   time.Time `json:"birthDate"`
	BirthWeight *float64  `json:"birthWeight,omitempty"`
	BirthHeight *float64  `json:"birthHeight,omitempty"`
	Gender      string    `json:"gender,omitempty"`
}

type babyResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	BirthDate       time.Time `json:"birthDate"`
	BirthWeight     *float64  `json:"birthWeight,omitempty"`
	BirthHeight     *float64  `json:"birthHeight,omitempty"`
	Gender          string    `json:"gender,omitempty"`
	Stage           string    `json:"stage"`
	FromPregnancyID *string   `json:"fromPregnancyId,omitempty"`
}

func (h *Handler) handleCompletePregnancy(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req completePregnancyRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}
	if req.BirthDate.IsZero() {
		req.BirthDate = time.Now()
	}

	baby, err := h.deps.Pregnancies.Complete(r.Context(), userID, pregnancyID, service.CompletePregnancyParams{
		BabyName:    req.BabyName,
		BirthDate:   req.BirthDate,
		BirthWeight: req.BirthWeight,
		BirthHeight: req.BirthHeight,
		Gender:      req.Gender,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := babyResponse{
		ID:          baby.ID.String(),
		Name:        baby.Name,
		BirthDate:   baby.BirthDate,
		BirthWeight: baby.BirthWeight,
		BirthHeight: baby.BirthHeight,
		Gender:      baby.Gender,
		Stage:       string(baby.Stage),
	}
	if baby.FromPregnancyID != nil {
		id := baby.FromPregnancyID.String()
		resp.FromPregnancyID = &id
	}
	writeJSON(w, http.StatusCreated, resp)
}

type timelineEntryResponse struct {
	Type        string    `json:"type"`
	RecordID    string    `json:"recordId"`
	Timestamp   time.Time `json:"timestamp"`
	Week        int       `json:"week"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
}

func (h *Handler) handleTimeline(w http.ResponseWriter, r *http.Request) {
	userID, pregnancyID, err := requestIDs(r)
	if err != nil {
		writeError(w, err)
		return
	}

	entries, err := h.deps.Pregnancies.Timeline(r.Context(), userID, pregnancyID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]timelineEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, timelineEntryResponse{
			Type:        string(e.Type),
			RecordID:    e.RecordID.String(),
			Timestamp:   e.Timestamp,
			Week:        e.Week,
			Title:       e.Title,
			Description: e.Description,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
