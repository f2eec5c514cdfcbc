package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/punchamoorthee/propshare/internal/api"
	"github.com/punchamoorthee/propshare/internal/config"
	"github.com/punchamoorthee/propshare/internal/domain"
	"github.com/punchamoorthee/propshare/internal/service"
	"github.com/punchamoorthee/propshare/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	db, err := store.NewStore(ctx, cfg.DBSource)
	if err != nil {
		log.Fatalf("Unable to open store: %v", err)
	}
	defer db.Close()

	// Currency settlement is the host environment's job; this deployment
	// accepts every transfer it is asked to direct. Swap in a real
	// FundTransfer to enforce balances.
	funds := service.TransferFunc(func(from, to domain.Principal, amount uint64) error {
		return nil
	})

	// Rebuild the platform from the persisted snapshot, or start fresh on an
	// empty database.
	snap, err := db.LoadSnapshot(ctx)
	if err != nil {
		log.Fatalf("Unable to load snapshot: %v", err)
	}
	var platform *service.Platform
	if snap != nil {
		platform = service.RestorePlatform(snap, funds)
		log.Printf("Restored platform state: %d properties at height %d", len(snap.Properties), snap.State.Height)
	} else {
		platform = service.NewPlatform(domain.Principal(cfg.PlatformOwner), cfg.FeeRateBps, funds)
		if err := db.Persist(ctx, platform.State()); err != nil {
			log.Fatalf("Unable to persist initial state: %v", err)
		}
		log.Printf("Initialized platform owned by %s (fee %d bps)", cfg.PlatformOwner, cfg.FeeRateBps)
	}

	handler := api.NewHandler(platform, db)

	r := mux.NewRouter()
	r.Use(api.RequestID)
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	handler.Register(apiV1)

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
