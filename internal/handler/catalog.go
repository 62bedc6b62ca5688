package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"retailgenie/gateway/internal/model"
	"retailgenie/gateway/internal/service"
)

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.dashboard.Products(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.Product
	if !decode(w, r, &req) {
		return
	}

	product, err := h.dashboard.CreateProduct(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req model.ProductPatch
	if !decode(w, r, &req) {
		return
	}

	product, err := h.dashboard.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.dashboard.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type BulkDeleteResponse struct {
	Deleted int `json:"deleted"`
}

func (h *Handler) BulkDeleteProducts(w http.ResponseWriter, r *http.Request) {
	var req BulkDeleteRequest
	if !decode(w, r, &req) {
		return
	}

	n, err := h.dashboard.BulkDeleteProducts(r.Context(), req.IDs)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, BulkDeleteResponse{Deleted: n})
}

func (h *Handler) ExportProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.dashboard.Products(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="products.csv"`)
	if err := service.WriteProductsCSV(w, products); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write products export")
	}
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.dashboard.Orders(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.dashboard.Orders(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="orders.csv"`)
	if err := service.WriteOrdersCSV(w, orders); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to write orders export")
	}
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req model.Order
	if !decode(w, r, &req) {
		return
	}

	order, err := h.dashboard.CreateOrder(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req model.OrderPatch
	if !decode(w, r, &req) {
		return
	}

	order, err := h.dashboard.UpdateOrder(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
