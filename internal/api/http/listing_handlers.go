package http

import (
	"net/http"

	"equishare-storefront/internal/domain"
)

func (h *Handler) ListListings(w http.ResponseWriter, r *http.Request) {
	items, err := h.catalog.ListMyItems(r.Context(), actorFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	if items == nil {
		items = []domain.CatalogItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var item domain.CatalogItem
	if err := decode(r, &item); err != nil {
		writeError(w, err)
		return
	}
	item.ID = 0

	owner := actorFrom(r.Context())
	if u, err := h.users.GetProfile(r.Context(), owner.ID); err == nil {
		owner = u.Actor()
	}
	if err := h.catalog.AddItem(r.Context(), owner, &item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) UpdateListing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var item domain.CatalogItem
	if err := decode(r, &item); err != nil {
		writeError(w, err)
		return
	}
	item.ID = id
	if err := h.catalog.UpdateItem(r.Context(), actorFrom(r.Context()), &item); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.catalog.DeleteItem(r.Context(), actorFrom(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
