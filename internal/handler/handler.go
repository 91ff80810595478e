package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albertyip/dsedrill/internal/exam"
	"github.com/albertyip/dsedrill/internal/handler/views"
	appI18n "github.com/albertyip/dsedrill/internal/i18n"
	"github.com/albertyip/dsedrill/internal/model"
	"github.com/albertyip/dsedrill/internal/qgen"
	"github.com/albertyip/dsedrill/internal/session"
)

const sessionCookieName = "session"

// Config holds handler-level settings.
type Config struct {
	// SecureCookies sets the Secure flag on session cookies.
	// Disable only for plain-HTTP local runs.
	SecureCookies bool
}

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	sessions   *session.Store
	controller *exam.Controller
	config     Config
}

// New creates a new Handler.
func New(sessions *session.Store, controller *exam.Controller, cfg Config) *Handler {
	return &Handler{sessions: sessions, controller: controller, config: cfg}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Use(h.sessionMiddleware)
	r.Get("/", h.handleIndex)
	r.Post("/generate", h.handleGenerate)
	r.Post("/hint", h.handleHint)
	r.Post("/solution", h.handleSolution)
}

type stateCtxKey struct{}

func contextWithState(ctx context.Context, state *model.SessionState) context.Context {
	return context.WithValue(ctx, stateCtxKey{}, state)
}

func stateFromContext(ctx context.Context) *model.SessionState {
	s, _ := ctx.Value(stateCtxKey{}).(*model.SessionState)
	return s
}

// sessionMiddleware resolves the browser's session from its cookie,
// creating a fresh all-empty session (and cookie) when none exists.
func (h *Handler) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			if state, ok := h.sessions.Get(cookie.Value); ok {
				next.ServeHTTP(w, r.WithContext(contextWithState(r.Context(), state)))
				return
			}
		}

		token, state, err := h.sessions.Create()
		if err != nil {
			slog.Error("failed to create session", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    token,
			Path:     "/",
			HttpOnly: true,
			Secure:   h.config.SecureCookies,
			SameSite: http.SameSiteLaxMode,
		})
		next.ServeHTTP(w, r.WithContext(contextWithState(r.Context(), state)))
	})
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	state := stateFromContext(r.Context())
	selSection, selTopic := selectionFromState(state)
	h.renderIndex(w, r, state, selSection, selTopic, "")
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	state := stateFromContext(r.Context())

	sectionID := model.Section(r.FormValue("section"))
	topic := r.FormValue("topic")
	if _, ok := model.SectionByID(sectionID); !ok {
		http.Error(w, "invalid section", http.StatusBadRequest)
		return
	}
	if !model.ValidTopic(topic) {
		http.Error(w, "invalid topic", http.StatusBadRequest)
		return
	}

	if err := h.controller.Generate(r.Context(), state, sectionID, topic); err != nil {
		// State is untouched: render the previous question with a
		// retryable error banner.
		h.renderIndex(w, r, state, sectionID, topic, errorMessage(r.Context(), err))
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	h.controller.RevealHint(stateFromContext(r.Context()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleSolution(w http.ResponseWriter, r *http.Request) {
	h.controller.RevealSolution(stateFromContext(r.Context()))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderIndex(w http.ResponseWriter, r *http.Request, state *model.SessionState, selSection model.Section, selTopic string, errorMsg string) {
	data := views.NewPageData(r.Context(), state, selSection, selTopic, errorMsg)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.IndexPage(w, data); err != nil {
		slog.Error("render error", "error", err)
	}
}

// selectionFromState restores the form selection matching the current
// question so a re-render keeps the dropdowns where the student left them.
func selectionFromState(state *model.SessionState) (model.Section, string) {
	selSection := model.Sections[0].ID
	for _, s := range model.Sections {
		if s.Label == state.DisplaySection {
			selSection = s.ID
			break
		}
	}

	selTopic := model.Topics[0]
	if model.ValidTopic(state.DisplayTopic) {
		selTopic = state.DisplayTopic
	}
	return selSection, selTopic
}

// errorMessage converts a generation failure into the user-facing,
// localized message. Malformed responses get the dedicated retry text;
// everything else carries the underlying message.
func errorMessage(ctx context.Context, err error) string {
	var malformed *qgen.ErrMalformed
	if errors.As(err, &malformed) {
		return appI18n.T(ctx, "error_malformed")
	}
	return appI18n.Td(ctx, "error_generate", map[string]any{"Message": err.Error()})
}
