// Package handler exposes the JSON API the mobile clients talk to.
package handler

import (
	"net/http"
	"time"

	"github.com/newlifejournal/newlifejournal/internal/auth"
	"github.com/newlifejournal/newlifejournal/internal/middleware"
	"github.com/newlifejournal/newlifejournal/internal/service"
)

type Deps struct {
	Users       *service.UserService
	Pregnancies *service.PregnancyService
	Chat        *service.ChatService
	Weeks       *service.WeekService
	Hub         *service.Hub
	Google      *auth.GoogleVerifier

	JWTSigningKey string
	JWTTTL        time.Duration
}

type Handler struct {
	deps Deps
}

func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Routes assembles the full API surface. Everything except the sign-in
// endpoint requires a session token.
func (h *Handler) Routes() http.Handler {
	public := http.NewServeMux()
	public.HandleFunc("POST /api/auth/google", h.handleGoogleSignIn)

	private := http.NewServeMux()
	private.HandleFunc("GET /api/me", h.handleMe)

	private.HandleFunc("POST /api/pregnancies", h.handleCreatePregnancy)
	private.HandleFunc("GET /api/pregnancies", h.handleListPregnancies)
	private.HandleFunc("GET /api/pregnancies/{id}", h.handleGetPregnancy)
	private.HandleFunc("PUT /api/pregnancies/{id}", h.handleUpdatePregnancy)
	private.HandleFunc("POST /api/pregnancies/{id}/complete", h.handleCompletePregnancy)
	private.HandleFunc("GET /api/pregnancies/{id}/timeline", h.handleTimeline)

	private.HandleFunc("POST /api/pregnancies/{id}/visits", h.handleAddVisit)
	private.HandleFunc("GET /api/pregnancies/{id}/visits", h.handleListVisits)
	private.HandleFunc("DELETE /api/pregnancies/{id}/visits/{recordID}", h.handleDeleteVisit)

	private.HandleFunc("POST /api/pregnancies/{id}/symptoms", h.handleAddSymptom)
	private.HandleFunc("GET /api/pregnancies/{id}/symptoms", h.handleListSymptoms)
	private.HandleFunc("DELETE /api/pregnancies/{id}/symptoms/{recordID}", h.handleDeleteSymptom)

	private.HandleFunc("POST /api/pregnancies/{id}/milestones", h.handleAddMilestone)
	private.HandleFunc("GET /api/pregnancies/{id}/milestones", h.handleListMilestones)
	private.HandleFunc("DELETE /api/pregnancies/{id}/milestones/{recordID}", h.handleDeleteMilestone)

	private.HandleFunc("GET /api/babies", h.handleListBabies)
	private.HandleFunc("GET /api/babies/{id}", h.handleGetBaby)

	private.HandleFunc("GET /api/weeks", h.handleListWeeks)
	private.HandleFunc("GET /api/weeks/{week}", h.handleGetWeek)

	private.HandleFunc("POST /api/pregnancies/{id}/chat/messages", h.handleSendChat)
	private.HandleFunc("GET /api/pregnancies/{id}/chat/messages", h.handleListChat)
	private.HandleFunc("GET /api/pregnancies/{id}/chat/state", h.handleChatState)
	private.HandleFunc("DELETE /api/pregnancies/{id}/chat/error", h.handleClearChatError)
	private.HandleFunc("GET /api/pregnancies/{id}/chat/stream", h.handleChatStream)

	authWrap := middleware.Auth(h.deps.JWTSigningKey)
	public.Handle("/api/", authWrap(private))

	return middleware.Recover(middleware.Logging(public))
}
