package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lijie8778708/DevConnector/internal/config"
)

func TestInit_CreatesSQLiteDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "nested")
	db, err := Init(config.DatabaseConfig{Path: filepath.Join(dir, "dev.db")})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("DB: %v", err)
	}
	defer sqlDB.Close()

	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("data dir %s not created: %v", dir, err)
	}
	if err := AutoMigrate(db); err != nil {
		t.Errorf("AutoMigrate: %v", err)
	}
}

func TestInit_PostgresNeedsDSN(t *testing.T) {
	if _, err := Init(config.DatabaseConfig{Driver: DriverPostgres}); err == nil {
		t.Error("Init without dsn: want error")
	}
}

func TestInit_UnknownDriver(t *testing.T) {
	if _, err := Init(config.DatabaseConfig{Driver: "mysql"}); err == nil {
		t.Error("Init with mysql: want error")
	}
}
