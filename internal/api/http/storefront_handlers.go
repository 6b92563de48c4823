package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"equishare-storefront/internal/catalog"
	"equishare-storefront/internal/domain"
	"equishare-storefront/internal/logger"
	"equishare-storefront/internal/store"
)

type CatalogResponse struct {
	Items      []domain.CatalogItem `json:"items"`
	Criteria   domain.Criteria      `json:"criteria"`
	Categories []domain.Category    `json:"categories"`
	Loading    bool                 `json:"loading"`
	LoadError  string               `json:"load_error,omitempty"`
	ItemCount  int                  `json:"cart_item_count"`
}

type CartResponse struct {
	Lines               []domain.CartLine `json:"lines"`
	ItemCount           int               `json:"item_count"`
	SubtotalPerDayCents int64             `json:"subtotal_per_day_cents"`
	Events              []EventMessage    `json:"events,omitempty"`
}

type AddToCartRequest struct {
	ItemID int64 `json:"itemId"`
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CheckoutRequest struct {
	Days    int    `json:"days"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

// GetCatalog applies any filter and sort parameters to the session, then
// returns the derived view.
func (h *Handler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r.Context())
	q := r.URL.Query()

	var intents []store.Intent
	if q.Has("category") {
		c := domain.Category(q.Get("category"))
		if c != "" && !c.Valid() {
			writeError(w, domain.NewValidationError("category", domain.ErrUnknownCategory))
			return
		}
		intents = append(intents, store.SetCategory{Category: c})
	}
	if q.Has("q") {
		intents = append(intents, store.SetSearchTerm{Term: q.Get("q")})
	}
	if q.Has("sort") || q.Has("dir") {
		var sort store.SetSort
		var err error
		if v := q.Get("sort"); v != "" {
			if sort.Key, err = catalog.ParseSortKey(v); err != nil {
				writeError(w, domain.NewValidationError("sort", err))
				return
			}
		}
		if v := q.Get("dir"); v != "" {
			if sort.Direction, err = catalog.ParseDirection(v); err != nil {
				writeError(w, domain.NewValidationError("dir", err))
				return
			}
		}
		intents = append(intents, sort)
	}
	for _, in := range intents {
		s.Store.Dispatch(in)
	}

	writeJSON(w, http.StatusOK, catalogResponse(s.Store.Snapshot()))
}

func catalogResponse(st store.State) CatalogResponse {
	items := st.View().Items()
	if items == nil {
		items = []domain.CatalogItem{}
	}
	return CatalogResponse{
		Items:      items,
		Criteria:   st.Criteria,
		Categories: st.Categories(),
		Loading:    st.Loading,
		LoadError:  st.LoadError,
		ItemCount:  st.ItemCount(),
	}
}

func (h *Handler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	s := sessionFrom(r.Context())
	if err := s.Store.LoadCatalog(r.Context(), h.catalog); err != nil {
		logger.Warn("Catalog reload failed", "sessionID", s.ID, "error", err)
	}
	writeJSON(w, http.StatusOK, catalogResponse(s.Store.Snapshot()))
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cartResponse(sessionFrom(r.Context()).Store.Snapshot()))
}

func cartResponse(st store.State) CartResponse {
	lines := st.Cart.Lines()
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return CartResponse{
		Lines:               lines,
		ItemCount:           st.ItemCount(),
		SubtotalPerDayCents: st.SubtotalPerDay(),
	}
}

func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var req AddToCartRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.dispatchCart(w, r, store.AddToCart{ItemID: req.ItemID})
}

func (h *Handler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req QuantityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	h.dispatchCart(w, r, store.SetQuantity{ItemID: id, Quantity: req.Quantity})
}

func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	h.dispatchCart(w, r, store.RemoveFromCart{ItemID: id})
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.dispatchCart(w, r, store.ClearCart{})
}

func (h *Handler) dispatchCart(w http.ResponseWriter, r *http.Request, in store.Intent) {
	s := sessionFrom(r.Context())
	out := s.Store.Dispatch(in)
	if out.Err != nil {
		writeError(w, out.Err)
		return
	}
	resp := cartResponse(s.Store.Snapshot())
	resp.Events = eventMessages(out.Events)
	writeJSON(w, http.StatusOK, resp)
}

// Checkout places the session's cart as an order and hands it to the order
// service for persistence and notification.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}

	s := sessionFrom(r.Context())
	out := s.Store.Dispatch(store.Checkout{
		DurationDays: req.Days,
		Details: domain.CheckoutDetails{
			DeliveryAddress: req.Address,
			Phone:           req.Phone,
			Notes:           req.Notes,
		},
	})
	if out.Err != nil {
		writeError(w, out.Err)
		return
	}

	placed, err := h.orders.SubmitOrder(r.Context(), s.ID, *out.Order)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, placed)
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}
