// Package api is the HTTP boundary of the shop server: routing, JWT auth,
// request decoding and the mapping from the service error taxonomy to
// status codes. No business rules live here.
package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/nazeru/shop-csv-go/internal/shop/repo"
	"github.com/nazeru/shop-csv-go/internal/shop/service"
	"github.com/nazeru/shop-csv-go/pkg/metrics"
)

type API struct {
	users    *service.UserService
	products *service.ProductService
	carts    *service.CartService
	orders   *service.OrderService
	notes    *service.NotificationService
	audit    *repo.AuditRepo
	reorders *repo.ReorderRepo

	jwtSecret []byte
	tokenTTL  time.Duration
	metrics   *metrics.ServerMetrics

	// Replay cache for checkout Idempotency-Key headers. In-memory only:
	// the store is single-process, so a shared cache is not needed.
	idemMu      sync.Mutex
	idemResults map[string]checkoutResponse
}

func New(users *service.UserService, products *service.ProductService, carts *service.CartService, orders *service.OrderService, notes *service.NotificationService, audit *repo.AuditRepo, reorders *repo.ReorderRepo, jwtSecret []byte, tokenTTL time.Duration, m *metrics.ServerMetrics) *API {
	return &API{
		users:       users,
		products:    products,
		carts:       carts,
		orders:      orders,
		notes:       notes,
		audit:       audit,
		reorders:    reorders,
		jwtSecret:   jwtSecret,
		tokenTTL:    tokenTTL,
		metrics:     m,
		idemResults: make(map[string]checkoutResponse),
	}
}

func (a *API) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", a.instrument("health", a.handleHealth))
	mux.Handle("GET /metrics", metrics.Handler())

	mux.HandleFunc("POST /api/auth/login", a.instrument("auth_login", a.handleLogin))
	mux.HandleFunc("POST /api/auth/register", a.instrument("auth_register", a.handleRegister))
	mux.HandleFunc("GET /api/auth/me", a.instrument("auth_me", a.requireAuth(a.handleMe)))

	mux.HandleFunc("GET /api/products", a.instrument("products_list", a.handleListProducts))
	mux.HandleFunc("GET /api/products/{id}", a.instrument("products_get", a.handleGetProduct))
	mux.HandleFunc("POST /api/products", a.instrument("products_create", a.requireAdmin(a.handleCreateProduct)))
	mux.HandleFunc("PATCH /api/products/{id}", a.instrument("products_update", a.requireAdmin(a.handleUpdateProduct)))
	mux.HandleFunc("DELETE /api/products/{id}", a.instrument("products_delete", a.requireAdmin(a.handleDeleteProduct)))

	mux.HandleFunc("GET /api/cart", a.instrument("cart_get", a.requireAuth(a.handleGetCart)))
	mux.HandleFunc("POST /api/cart", a.instrument("cart_add", a.requireAuth(a.handleAddToCart)))
	mux.HandleFunc("PATCH /api/cart/{productId}", a.instrument("cart_update", a.requireAuth(a.handleUpdateCartItem)))
	mux.HandleFunc("DELETE /api/cart/{productId}", a.instrument("cart_remove", a.requireAuth(a.handleRemoveCartItem)))
	mux.HandleFunc("DELETE /api/cart", a.instrument("cart_clear", a.requireAuth(a.handleClearCart)))

	mux.HandleFunc("GET /api/orders", a.instrument("orders_list", a.requireAuth(a.handleListOrders)))
	mux.HandleFunc("GET /api/orders/{orderId}", a.instrument("orders_get", a.requireAuth(a.handleGetOrder)))
	mux.HandleFunc("GET /api/orders/{orderId}/payments", a.instrument("orders_payments", a.requireAuth(a.handleOrderPayments)))
	mux.HandleFunc("POST /api/orders/checkout", a.instrument("checkout", a.requireAuth(a.handleCheckout)))

	mux.HandleFunc("GET /api/notifications", a.instrument("notifications_list", a.requireAuth(a.handleListNotifications)))
	mux.HandleFunc("PATCH /api/notifications/{id}/seen", a.instrument("notifications_seen", a.requireAuth(a.handleMarkSeen)))

	mux.HandleFunc("GET /api/admin/users", a.instrument("admin_users", a.requireAdmin(a.handleAdminUsers)))
	mux.HandleFunc("GET /api/admin/audit-trail", a.instrument("admin_audit", a.requireAdmin(a.handleAdminAudit)))
	mux.HandleFunc("GET /api/admin/reorders", a.instrument("admin_reorders", a.requireAdmin(a.handleAdminReorders)))
	mux.HandleFunc("GET /api/admin/notifications", a.instrument("admin_notifications", a.requireAdmin(a.handleAdminNotifications)))

	return mux
}

func (a *API) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}
