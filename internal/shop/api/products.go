package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
)

type productDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Price         string `json:"price"`
	StockQuantity int    `json:"stockQuantity"`
}

func toProductDTO(p domain.Product) productDTO {
	return productDTO{
		ID:            string(p.ID),
		Name:          p.Name,
		Price:         p.Price.String(),
		StockQuantity: p.StockQuantity,
	}
}

func (a *API) handleListProducts(w http.ResponseWriter, r *http.Request) {
	all, err := a.products.ListAll()
	if err != nil {
		writeError(w, err)
		return
	}
	q := strings.ToLower(r.URL.Query().Get("q"))
	out := make([]productDTO, 0, len(all))
	for _, p := range all {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		out = append(out, toProductDTO(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := a.products.GetByID(domain.ProductID(r.PathValue("id")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(p))
}

type createProductRequest struct {
	Name          string      `json:"name"`
	Price         json.Number `json:"price"`
	StockQuantity *int        `json:"stockQuantity"`
}

func (a *API) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" || req.Price == "" || req.StockQuantity == nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "name, price, and stockQuantity are required"})
		return
	}
	price, err := decimal.NewFromString(req.Price.String())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid price"})
		return
	}
	p, err := a.products.Create(currentUser(r).ID, req.Name, price, *req.StockQuantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toProductDTO(p))
}

type updateProductRequest struct {
	Price         *json.Number `json:"price"`
	StockQuantity *int         `json:"stockQuantity"`
}

// handleUpdateProduct dispatches to the price and stock mutations; each
// one audits and notifies on its own.
func (a *API) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req updateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid json"})
		return
	}
	id := domain.ProductID(r.PathValue("id"))
	adminID := currentUser(r).ID

	updated, err := a.products.GetByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.Price != nil {
		price, perr := decimal.NewFromString(req.Price.String())
		if perr != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid price"})
			return
		}
		if updated, err = a.products.ChangePrice(r.Context(), id, price, adminID); err != nil {
			writeError(w, err)
			return
		}
	}
	if req.StockQuantity != nil {
		if updated, err = a.products.ChangeStock(r.Context(), id, *req.StockQuantity, adminID); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, toProductDTO(updated))
}

func (a *API) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := domain.ProductID(r.PathValue("id"))
	if err := a.products.DeleteByID(r.Context(), id, currentUser(r).ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
