package main

import (
	"os"
	"os/signal"

	log "github.com/sirupsen/logrus"

	config "github.com/nebyat/duelmart-services/configs"
	mongodb "github.com/nebyat/duelmart-services/internal/db"
	"github.com/nebyat/duelmart-services/internal/duelsvc/archive"
	"github.com/nebyat/duelmart-services/internal/duelsvc/broker"
	"github.com/nebyat/duelmart-services/internal/marketsvc/db"
	"github.com/nebyat/duelmart-services/internal/marketsvc/service"
	"github.com/nebyat/duelmart-services/internal/marketsvc/store"
	"github.com/nebyat/duelmart-services/internal/nats"
)

const SERVICE_NAME = "duel"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	log.Printf("Starting Duel Service...")

	// pg connection for users, catalog and inventory
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	// mongo connection for session tracking and match archive
	mdb, cancel, err := mongodb.ConnectToDB()
	if err != nil {
		log.Fatalf("Failed to connect to mongo: %v", err)
	}
	defer cancel()
	mongodb.CreateTTLIndexForCollection(mdb, archive.SessionCollection)

	// Connect to NATS
	n, err := nats.Connect()
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(0)
	}
	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	userStore := store.NewUserStore(dbpool)
	userService := service.NewUserService(userStore)

	balanceStore := store.NewBalanceStore(dbpool)
	balanceService := service.NewBalanceService(balanceStore)

	cardStore := store.NewCardStore(dbpool)
	cardService := service.NewCardService(cardStore)

	inventoryStore := store.NewInventoryStore(dbpool)
	inventoryService := service.NewInventoryService(inventoryStore)

	arch := archive.New(mdb)

	b := broker.NewBroker(n.Conn, userService, balanceService, cardService,
		inventoryService, arch)

	sub, err := b.SubscribeSocketService("duel.service")
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(0)
	}

	log.Infof("%s service running", SERVICE_NAME)

	// Wait for interrupt signal to gracefully shutdown the service
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	sub.Unsubscribe()
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
