package http

import (
	"net/http"

	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/i18n"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/service"
	"equishare-storefront/internal/store"
)

type SessionResponse struct {
	SessionID string        `json:"session_id"`
	Locale    domain.Locale `json:"locale"`
	LoadError string        `json:"load_error,omitempty"`
}

type LoginRequest struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type AuthResponse struct {
	Actor *domain.Actor `json:"actor"`
	Token string        `json:"token"`
}

type LocaleRequest struct {
	Locale domain.Locale `json:"locale"`
}

// CreateSession starts a session whose locale is negotiated from Accept-Language
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	locale := i18n.Negotiate(r.Header.Get("Accept-Language"))

	s, err := h.sessions.Create(r.Context(), locale)
	if s == nil {
		writeError(w, err)
		return
	}

	w.Header().Set(SessionHeader, s.ID)
	writeJSON(w, http.StatusCreated, SessionResponse{
		SessionID: s.ID,
		Locale:    locale,
		LoadError: s.Store.Snapshot().LoadError,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor, token, err := h.auth.Authenticate(r.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		writeError(w, err)
		return
	}

	h.signIn(r, actor)
	writeJSON(w, http.StatusOK, AuthResponse{Actor: actor, Token: token})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	actor, token, err := h.auth.Register(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	// Registration signs the new account into the caller's session when one is given.
	if id := r.Header.Get(SessionHeader); id != "" {
		if s, err := h.sessions.Get(id); err == nil {
			s.Store.Dispatch(store.SetSession{Actor: actor})
		}
	}
	writeJSON(w, http.StatusCreated, AuthResponse{Actor: actor, Token: token})
}

// signIn attaches the actor to the request's session and loads their order history
func (h *Handler) signIn(r *http.Request, actor *domain.Actor) {
	s := sessionFrom(r.Context())
	s.Store.Dispatch(store.SetSession{Actor: actor})

	orders, err := h.orders.ListOrders(r.Context(), actor.ID)
	if err != nil {
		logger.Warn("Failed to load order history", "actorID", actor.ID, "error", err)
		return
	}
	s.Store.Dispatch(store.LoadOrders{Orders: orders})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r.Context()).Store.Dispatch(store.Logout{})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) SetLocale(w http.ResponseWriter, r *http.Request) {
	var req LocaleRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	s := sessionFrom(r.Context())
	if out := s.Store.Dispatch(store.SetLocale{Locale: req.Locale}); out.Err != nil {
		writeError(w, out.Err)
		return
	}
	writeJSON(w, http.StatusOK, LocaleRequest{Locale: s.Store.Snapshot().Locale})
}

// GetStrings returns the string table for the session locale
func (h *Handler) GetStrings(w http.ResponseWriter, r *http.Request) {
	locale := sessionFrom(r.Context()).Store.Snapshot().Locale
	writeJSON(w, http.StatusOK, map[string]any{
		"locale":  locale,
		"strings": i18n.Strings(locale),
	})
}
