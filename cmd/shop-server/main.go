package main

import (
	"errors"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/nazeru/shop-csv-go/internal/shop/api"
	"github.com/nazeru/shop-csv-go/internal/shop/repo"
	"github.com/nazeru/shop-csv-go/internal/shop/service"
	"github.com/nazeru/shop-csv-go/pkg/csvstore"
	"github.com/nazeru/shop-csv-go/pkg/kafka"
	"github.com/nazeru/shop-csv-go/pkg/metrics"
)

type cfg struct {
	Port         string
	DataDir      string
	JWTSecret    string
	TokenTTL     time.Duration
	KafkaBrokers string
	KafkaTopic   string
}

func readCfg() (cfg, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return cfg{}, errors.New("JWT_SECRET is required")
	}
	ttlMin, _ := strconv.Atoi(getenv("TOKEN_TTL_MIN", "120"))

	return cfg{
		Port:         getenv("PORT", "4000"),
		DataDir:      getenv("DATA_DIR", "data"),
		JWTSecret:    secret,
		TokenTTL:     time.Duration(ttlMin) * time.Minute,
		KafkaBrokers: getenv("KAFKA_BROKERS", ""),
		KafkaTopic:   getenv("KAFKA_TOPIC", "shop.events"),
	}, nil
}

func main() {
	cfg, err := readCfg()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	store := csvstore.New(cfg.DataDir)
	events := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	defer events.Close()

	productRepo := repo.NewProductRepo(store)
	cartRepo := repo.NewCartRepo(store)
	orderRepo := repo.NewOrderRepo(store)
	paymentRepo := repo.NewPaymentRepo(store)
	reorderRepo := repo.NewReorderRepo(store)
	notificationRepo := repo.NewNotificationRepo(store)
	auditRepo := repo.NewAuditRepo(store)
	userRepo := repo.NewUserRepo(store)

	notifier := service.NewNotifier(userRepo, notificationRepo)
	products := service.NewProductService(productRepo, auditRepo, reorderRepo, notifier, events)
	carts := service.NewCartService(cartRepo, productRepo)
	orders := service.NewOrderService(carts, products, orderRepo, paymentRepo, notifier, events)
	users := service.NewUserService(userRepo)
	notes := service.NewNotificationService(notificationRepo)

	srvMetrics := metrics.NewServerMetrics("shop_server")
	handler := api.New(users, products, carts, orders, notes, auditRepo, reorderRepo,
		[]byte(cfg.JWTSecret), cfg.TokenTTL, srvMetrics)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("shop-server listening on :%s (DATA_DIR=%s, kafka=%v)", cfg.Port, cfg.DataDir, events.Enabled())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("http server error: %v", err)
	}
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
