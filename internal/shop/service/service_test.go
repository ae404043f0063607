package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/internal/shop/repo"
	"github.com/nazeru/shop-csv-go/pkg/csvstore"
	"github.com/nazeru/shop-csv-go/pkg/kafka"
)

// env wires the full service stack over a throwaway data directory, with
// event publishing disabled.
type env struct {
	store    *csvstore.Store
	products *ProductService
	carts    *CartService
	orders   *OrderService
	users    *UserService
	notes    *NotificationService

	productRepo      *repo.ProductRepo
	cartRepo         *repo.CartRepo
	orderRepo        *repo.OrderRepo
	paymentRepo      *repo.PaymentRepo
	reorderRepo      *repo.ReorderRepo
	notificationRepo *repo.NotificationRepo
	auditRepo        *repo.AuditRepo
	userRepo         *repo.UserRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := csvstore.New(t.TempDir())
	events := kafka.NewPublisher("", "")

	e := &env{
		store:            store,
		productRepo:      repo.NewProductRepo(store),
		cartRepo:         repo.NewCartRepo(store),
		orderRepo:        repo.NewOrderRepo(store),
		paymentRepo:      repo.NewPaymentRepo(store),
		reorderRepo:      repo.NewReorderRepo(store),
		notificationRepo: repo.NewNotificationRepo(store),
		auditRepo:        repo.NewAuditRepo(store),
		userRepo:         repo.NewUserRepo(store),
	}
	notifier := NewNotifier(e.userRepo, e.notificationRepo)
	e.products = NewProductService(e.productRepo, e.auditRepo, e.reorderRepo, notifier, events)
	e.carts = NewCartService(e.cartRepo, e.productRepo)
	e.orders = NewOrderService(e.carts, e.products, e.orderRepo, e.paymentRepo, notifier, events)
	e.users = NewUserService(e.userRepo)
	e.notes = NewNotificationService(e.notificationRepo)
	return e
}

func (e *env) seedProduct(t *testing.T, name string, price string, stock int) domain.Product {
	t.Helper()
	p := domain.Product{
		ID:            domain.ProductID(uuid.NewString()),
		Name:          name,
		Price:         mustDecimal(t, price),
		StockQuantity: stock,
	}
	require.NoError(t, e.productRepo.Upsert(p))
	return p
}

func (e *env) seedUser(t *testing.T, role domain.Role) domain.User {
	t.Helper()
	u := domain.User{
		ID:           domain.UserID(uuid.NewString()),
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		Role:         role,
	}
	require.NoError(t, e.userRepo.Create(u))
	return u
}

func (e *env) stock(t *testing.T, id domain.ProductID) int {
	t.Helper()
	p, err := e.productRepo.FindByID(id)
	require.NoError(t, err)
	return p.StockQuantity
}

func (e *env) notificationsOf(t *testing.T, userID domain.UserID, typ domain.NotificationType) []domain.Notification {
	t.Helper()
	all, err := e.notificationRepo.FindByUserID(userID)
	require.NoError(t, err)
	var out []domain.Notification
	for _, n := range all {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

func mustDecimal(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
