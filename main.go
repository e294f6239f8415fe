package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Donkoyote123/werk-asset-management-system/internal/config"
	"github.com/Donkoyote123/werk-asset-management-system/internal/database"
	"github.com/Donkoyote123/werk-asset-management-system/internal/ledger"
	"github.com/Donkoyote123/werk-asset-management-system/internal/router"
)

func main() {
	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	if err := ensureDir(cfg.Backup.Dir); err != nil {
		log.Fatalf("create backup dir: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations and seed defaults
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}
	if err := database.Seed(db, cfg); err != nil {
		log.Fatalf("seed database: %v", err)
	}

	// pick the ledger store backend (explicit configuration, no probing)
	var store ledger.Store
	var users ledger.UserDirectory
	switch cfg.App.LedgerStore {
	case "memory":
		store = ledger.NewMemoryStore()
		users = ledger.NewGormDirectory(db)
		log.Println("asset ledger running on the in-memory store; data is lost on restart")
	default:
		store = ledger.NewGormStore(db)
		users = ledger.NewGormDirectory(db)
	}
	svc := ledger.New(store, users, cfg.App.TagRegistry)

	// setup router
	r := router.SetupRouter(cfg, db, svc)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Printf("server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
