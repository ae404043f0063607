package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
)

type orderLineDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

type orderDTO struct {
	OrderID     string         `json:"orderId"`
	UserID      string         `json:"userId"`
	OrderDate   time.Time      `json:"orderDate"`
	Items       []orderLineDTO `json:"items"`
	TotalAmount string         `json:"totalAmount"`
	Status      string         `json:"status"`
}

type paymentDTO struct {
	PaymentID   string    `json:"paymentId"`
	OrderID     string    `json:"orderId"`
	PaymentDate time.Time `json:"paymentDate"`
	Method      string    `json:"method"`
	Amount      string    `json:"amount"`
	Status      string    `json:"status"`
}

type checkoutResponse struct {
	Order   orderDTO   `json:"order"`
	Payment paymentDTO `json:"payment"`
	Status  string     `json:"status,omitempty"`
}

func toOrderDTO(o domain.Order) orderDTO {
	items := make([]orderLineDTO, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, orderLineDTO{
			ProductID: string(l.ProductID),
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice.String(),
		})
	}
	return orderDTO{
		OrderID:     string(o.OrderID),
		UserID:      string(o.UserID),
		OrderDate:   o.OrderDate,
		Items:       items,
		TotalAmount: o.TotalAmount.String(),
		Status:      string(o.Status),
	}
}

func toPaymentDTO(p domain.Payment) paymentDTO {
	return paymentDTO{
		PaymentID:   p.PaymentID,
		OrderID:     string(p.OrderID),
		PaymentDate: p.PaymentDate,
		Method:      p.Method,
		Amount:      p.Amount.String(),
		Status:      string(p.Status),
	}
}

func (a *API) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := a.orders.GetOrdersForUser(currentUser(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]orderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderDTO(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := a.orders.GetOrderByID(domain.OrderID(r.PathValue("orderId")), currentUser(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDTO(order))
}

func (a *API) handleOrderPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := a.orders.GetPaymentsByOrderID(domain.OrderID(r.PathValue("orderId")), currentUser(r).ID)
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]paymentDTO, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentDTO(p))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCheckout runs the checkout. A repeated Idempotency-Key replays the
// stored response instead of charging twice. The cache key is scoped to the
// authenticated user, so two users presenting the same header value never
// see each other's orders.
func (a *API) handleCheckout(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	idemKey := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	cacheKey := string(user.ID) + "\x00" + idemKey

	if idemKey != "" {
		a.idemMu.Lock()
		cached, ok := a.idemResults[cacheKey]
		a.idemMu.Unlock()
		if ok {
			cached.Status = "IDEMPOTENT_REPLAY"
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	order, payment, err := a.orders.Checkout(r.Context(), user.ID)
	if err != nil {
		a.metrics.Checkouts.WithLabelValues("failed").Inc()
		writeError(w, err)
		return
	}
	a.metrics.Checkouts.WithLabelValues("paid").Inc()

	resp := checkoutResponse{Order: toOrderDTO(order), Payment: toPaymentDTO(payment)}
	if idemKey != "" {
		a.idemMu.Lock()
		a.idemResults[cacheKey] = resp
		a.idemMu.Unlock()
	}
	writeJSON(w, http.StatusOK, resp)
}
