package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"municipio.org/internal/auth"
	"municipio.org/internal/config"
	"municipio.org/internal/httpapi"
	"municipio.org/internal/obs"
	"municipio.org/internal/portal"
	"municipio.org/internal/store/memory"
	"municipio.org/internal/store/pg"
	"municipio.org/internal/upload"
)

var version = "0.3.0"

func main() {
	obs.Init()
	obs.InitBuildInfo(version, os.Getenv("PORTAL_COMMIT"))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var (
		accountStore auth.AccountStore
		portalStore  portal.Store
		db           *sql.DB
	)
	if cfg.PGDSN != "" {
		store, err := pg.Open(cfg.PGDSN)
		if err != nil {
			log.Fatalf("open db: %v", err)
		}
		accountStore = store
		portalStore = store
		db = store.DB()
	} else {
		log.Println("PORTAL_PG_DSN is empty, using in-memory store")
		store := memory.New()
		accountStore = store
		portalStore = store
	}

	portalSvc, err := portal.NewService(portalStore)
	if err != nil {
		log.Fatalf("portal service: %v", err)
	}
	authSvc, err := auth.NewService(accountStore, portalSvc)
	if err != nil {
		log.Fatalf("auth service: %v", err)
	}
	tokens, err := auth.NewTokens(cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("session tokens: %v", err)
	}
	saver, err := upload.NewSaver(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		log.Fatalf("upload saver: %v", err)
	}

	api := httpapi.New(httpapi.Options{
		Auth:        authSvc,
		Tokens:      tokens,
		Portal:      portalSvc,
		Uploads:     saver,
		ReadyProbe:  httpapi.ReadyProbe{DB: db},
		Version:     version,
		UploadDir:   cfg.UploadDir,
		RateBurst:   cfg.RateBurst,
		RatePerSec:  cfg.RatePerSec,
		LoginBurst:  cfg.LoginBurst,
		LoginPerSec: cfg.LoginPerSec,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Handler(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("Starting municipio-api %s on %s", version, srv.Addr)
	obs.SetReady(true)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	log.Println("Shutting down...")
	obs.SetReady(false)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	if db != nil {
		_ = db.Close()
	}
	log.Println("Stopped")
}
