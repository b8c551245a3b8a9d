package main

import (
	"fmt"
	"log"
	"net/http"

	"dellcube/config"
	"dellcube/db"
	"dellcube/db/mongo"
	"dellcube/handlers"
	"dellcube/repository"
	"dellcube/routes"
	"dellcube/utils"
)

func main() {
	// Load config from .env or config file
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET not set in environment")
	}

	// Apply index migrations (unique docket number, pending-signup TTL)
	db.RunMigrations(cfg.MongoURL)

	mg := mongo.NewMongoDB(cfg.MongoURL, cfg.MongoDBName)
	if err := mg.Connect(); err != nil {
		panic(err)
	}
	defer mg.Disconnect()

	invoiceRepo := repository.NewMongoInvoiceRepo(mg.DB)
	partyRepo := repository.NewMongoPartyRepo(mg.DB)
	fleetRepo := repository.NewMongoFleetRepo(mg.DB)
	vendorRepo := repository.NewMongoVendorRepo(mg.DB)
	userRepo := repository.NewMongoUserRepo(mg.DB)
	pendingRepo := repository.NewMongoPendingRepo(mg.DB)

	// Handlers
	invoiceHandler := handlers.NewInvoiceHandler(invoiceRepo, partyRepo, fleetRepo, vendorRepo)
	driverHandler := handlers.NewDriverHandler(invoiceRepo)
	userHandler := &handlers.UserHandler{Repo: userRepo, PendingRepo: pendingRepo, JWTSecret: cfg.JWTSecret}
	partyHandler := &handlers.PartyHandler{Repo: partyRepo}
	fleetHandler := &handlers.FleetHandler{Repo: fleetRepo}
	vendorHandler := &handlers.VendorHandler{Repo: vendorRepo}

	// PDF handler with combined repository and shared renderer
	renderer := utils.NewPDFRenderer()
	defer renderer.Close()
	pdfHandler := &handlers.PDFHandler{
		Repo:     repository.NewPDFRepository(invoiceRepo, partyRepo, fleetRepo),
		Renderer: renderer,
		SavePath: cfg.PDFSavePath,
	}

	routes.SetupRoutes(cfg.JWTSecret,
		userHandler, invoiceHandler, driverHandler,
		partyHandler, fleetHandler, vendorHandler, pdfHandler)

	fmt.Printf("Server running on port %s\n", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, nil); err != nil {
		panic(err)
	}
}
