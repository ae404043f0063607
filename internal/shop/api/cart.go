package api

import (
	"encoding/json"
	"net/http"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
)

type cartLineDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type cartDTO struct {
	UserID string        `json:"userId"`
	Lines  []cartLineDTO `json:"items"`
}

func toCartDTO(c *domain.Cart) cartDTO {
	lines := make([]cartLineDTO, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, cartLineDTO{ProductID: string(l.ProductID), Quantity: l.Quantity})
	}
	return cartDTO{UserID: string(c.UserID), Lines: lines}
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := a.carts.GetCart(currentUser(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartDTO(cart))
}

type addToCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

func (a *API) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "productId and quantity required"})
		return
	}
	cart, err := a.carts.AddToCart(currentUser(r).ID, domain.ProductID(req.ProductID), req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartDTO(cart))
}

type updateCartRequest struct {
	Quantity int `json:"quantity"`
}

func (a *API) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"message": "invalid json"})
		return
	}
	cart, err := a.carts.UpdateItem(currentUser(r).ID, domain.ProductID(r.PathValue("productId")), req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartDTO(cart))
}

func (a *API) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := a.carts.RemoveItem(currentUser(r).ID, domain.ProductID(r.PathValue("productId")))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartDTO(cart))
}

func (a *API) handleClearCart(w http.ResponseWriter, r *http.Request) {
	if err := a.carts.ClearCart(currentUser(r).ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
