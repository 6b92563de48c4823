package http

import (
	"net/http"

	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/store"
)

type ProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type StatusRequest struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context(), claimsFrom(r.Context()).ActorID)
	if err != nil {
		writeError(w, err)
		return
	}
	if orders == nil {
		orders = []domain.OrderRecord{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	o, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if o.ActorID != claimsFrom(r.Context()).ActorID {
		writeError(w, domain.NewNotFoundError("order", id))
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// UpdateOrderStatus records a fulfillment decision and mirrors it into the
// caller's session when one is named.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req StatusRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	at := h.clock()
	if err := h.orders.UpdateStatus(r.Context(), id, req.Status, at); err != nil {
		writeError(w, err)
		return
	}
	if sid := r.Header.Get(SessionHeader); sid != "" {
		if s, ok := h.sessions.Lookup(sid); ok {
			s.Store.Dispatch(store.SetOrderStatus{OrderID: id, Status: req.Status, At: at})
		}
	}

	o, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.GetProfile(r.Context(), claimsFrom(r.Context()).ActorID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req ProfileRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	u, err := h.users.UpdateProfile(r.Context(), claimsFrom(r.Context()).ActorID, req.Name, req.Phone, req.Address)
	if err != nil {
		writeError(w, err)
		return
	}
	if sid := r.Header.Get(SessionHeader); sid != "" {
		if s, ok := h.sessions.Lookup(sid); ok && s.Store.Snapshot().IsAuthenticated() {
			s.Store.Dispatch(store.SetSession{Actor: u.Actor()})
		}
	}
	writeJSON(w, http.StatusOK, u)
}
