package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"prince-pos/config"
	httpapi "prince-pos/internal/api/http"
	"prince-pos/internal/auth"
	"prince-pos/internal/cart"
	"prince-pos/internal/catalog"
	"prince-pos/internal/domain"
	"prince-pos/internal/journal"
	"prince-pos/internal/order"
	"prince-pos/internal/printer"
	"prince-pos/internal/remote"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	backend := remote.NewClient(cfg.BackendURL, http.DefaultClient)

	session := auth.NewSession(backend, auth.NewRedisTokenStore(rdb))
	backend.SetTokenSource(session)
	if err := session.Rehydrate(ctx); err != nil {
		log.Printf("Warning: failed to rehydrate session: %v", err)
	}
	session.StartAutoRefresh(ctx, cfg.TokenRefreshInterval)

	catalogSvc := catalog.NewService(backend, catalog.NewRedisCache(rdb, cfg.CatalogTTL))
	cartSvc := cart.NewService(backend, cfg.CartDebounce)

	// The local journal is optional; a terminal without a database still
	// sells, it just cannot reprint offline.
	var orderJournal order.Journal
	if os.Getenv("DB_HOST") != "" {
		db := config.MustInitPostgres()
		defer db.Close()
		orderJournal = journal.NewPostgresJournal(db)
	}

	var publisher order.Publisher
	if os.Getenv("KAFKA_BROKER") != "" {
		writer := config.NewKafkaWriter("orders")
		defer writer.Close()
		publisher = order.NewKafkaPublisher(writer)
	}

	renderer := printer.NewRenderer(printer.DefaultQRGenerator{BaseURL: cfg.BackendURL})
	spool := printer.NewFileSpoolPrinter(cfg.SpoolDir, cfg.PrinterName)

	orderSvc := order.NewService(backend, orderJournal, publisher, renderer, spool, cfg.TerminalID)
	if cfg.PrinterName != "" {
		orderSvc.SetBackendPrinter(cfg.PrinterName)
	}
	cartSvc.SetOrderPlacedHook(func(placed domain.Order) {
		orderSvc.RecordPlaced(ctx, placed)
	})

	handler := httpapi.NewHandler(cartSvc, catalogSvc, orderSvc, session)

	log.Printf("POS terminal %s starting on %s (backend %s)", cfg.TerminalID, cfg.ListenAddr, cfg.BackendURL)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, httpapi.NewRouter(handler)))
}
