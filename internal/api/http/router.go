// Package http exposes storefront sessions over a JSON API.
package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"equishare-storefront/internal/security"
	"equishare-storefront/internal/service"
	"equishare-storefront/internal/session"
)

// Handler serves the /api/v1 routes
type Handler struct {
	sessions *session.Manager
	auth     service.AuthService
	users    service.UserService
	catalog  service.CatalogService
	orders   service.OrderService
	tokens   security.TokenManager
	clock    func() time.Time
}

func NewHandler(
	sessions *session.Manager,
	auth service.AuthService,
	users service.UserService,
	catalog service.CatalogService,
	orders service.OrderService,
	tokens security.TokenManager,
) *Handler {
	return &Handler{
		sessions: sessions,
		auth:     auth,
		users:    users,
		catalog:  catalog,
		orders:   orders,
		tokens:   tokens,
		clock:    time.Now,
	}
}

// NewRouter builds the mux router with logging and auth middleware installed
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware(h.tokens))
	h.RegisterRoutes(api)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	return router
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	withSession := func(fn http.HandlerFunc) http.HandlerFunc {
		return requireSession(h.sessions, fn)
	}

	// Sessions and identity
	r.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", withSession(h.Login)).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", withSession(h.Logout)).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/locale", withSession(h.SetLocale)).Methods(http.MethodPut)
	r.HandleFunc("/strings", withSession(h.GetStrings)).Methods(http.MethodGet)
	r.HandleFunc("/events", withSession(h.StreamEvents)).Methods(http.MethodGet)

	// Catalog
	r.HandleFunc("/catalog", withSession(h.GetCatalog)).Methods(http.MethodGet)
	r.HandleFunc("/catalog/reload", withSession(h.ReloadCatalog)).Methods(http.MethodPost)

	// Cart and checkout
	r.HandleFunc("/cart", withSession(h.GetCart)).Methods(http.MethodGet)
	r.HandleFunc("/cart", withSession(h.ClearCart)).Methods(http.MethodDelete)
	r.HandleFunc("/cart/items", withSession(h.AddToCart)).Methods(http.MethodPost)
	r.HandleFunc("/cart/items/{id}", withSession(h.SetQuantity)).Methods(http.MethodPut)
	r.HandleFunc("/cart/items/{id}", withSession(h.RemoveFromCart)).Methods(http.MethodDelete)
	r.HandleFunc("/checkout", withSession(h.Checkout)).Methods(http.MethodPost)

	// Account
	r.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}", h.GetOrder).Methods(http.MethodGet)
	r.HandleFunc("/orders/{id}/status", h.UpdateOrderStatus).Methods(http.MethodPut)
	r.HandleFunc("/profile", h.GetProfile).Methods(http.MethodGet)
	r.HandleFunc("/profile", h.UpdateProfile).Methods(http.MethodPut)

	// Owner listings
	r.HandleFunc("/listings", h.ListListings).Methods(http.MethodGet)
	r.HandleFunc("/listings", h.CreateListing).Methods(http.MethodPost)
	r.HandleFunc("/listings/{id}", h.UpdateListing).Methods(http.MethodPut)
	r.HandleFunc("/listings/{id}", h.DeleteListing).Methods(http.MethodDelete)
}
