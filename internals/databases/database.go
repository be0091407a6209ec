package database

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"swimclub_backend/internals/configs"
)

var DB *gorm.DB

func ConnectDB(cfg *configs.AppConfig) (*gorm.DB, error) {
	log.Println("🔌 Connecting to PostgreSQL...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // PgBouncer transaction pooling
	}), &gorm.Config{
		Logger: configs.NewGormLogger(cfg.DBLogLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}
	DB = db
	log.Println("✅ DB connected.")
	return db, nil
}

func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

func WarmUpQueries(db *gorm.DB) {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := Ping(db); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func Close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// OpenLockDB opens a small pool used only for advisory locks. Lock holders
// keep their connection until release, so they never borrow from the pool
// that serves the guarded queries.
func OpenLockDB(cfg *configs.AppConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.DSN()+"&default_query_exec_mode=simple_protocol")
	if err != nil {
		return nil, fmt.Errorf("open lock pool: %w", err)
	}
	db.SetMaxOpenConns(cfg.LockPoolSize)
	db.SetMaxIdleConns(cfg.LockPoolSize)
	db.SetConnMaxIdleTime(60 * time.Second)
	db.SetConnMaxLifetime(10 * time.Minute)
	return db, nil
}
