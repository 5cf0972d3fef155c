package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"

	config "github.com/nebyat/duelmart-services/configs"
	"github.com/nebyat/duelmart-services/internal/marketsvc/db"
	handlers "github.com/nebyat/duelmart-services/internal/marketsvc/handlers"
	"github.com/nebyat/duelmart-services/internal/marketsvc/service"
	"github.com/nebyat/duelmart-services/internal/marketsvc/store"
	log "github.com/sirupsen/logrus"
)

const SERVICE_NAME = "market"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	userStore := store.NewUserStore(dbpool)
	userService := service.NewUserService(userStore)

	balanceStore := store.NewBalanceStore(dbpool)
	balanceService := service.NewBalanceService(balanceStore)

	cardStore := store.NewCardStore(dbpool)
	cardService := service.NewCardService(cardStore)

	packStore := store.NewPackStore(dbpool)
	packService := service.NewPackService(packStore)

	cartStore := store.NewCartStore(dbpool)
	checkoutStore := store.NewCheckoutStore(dbpool)
	cartService := service.NewCartService(cartStore, checkoutStore, cardStore, packStore)

	inventoryStore := store.NewInventoryStore(dbpool)
	inventoryService := service.NewInventoryService(inventoryStore)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(userService, balanceService, cardService,
		packService, cartService, inventoryService)
	h.InitAuth()
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("MARKET_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
