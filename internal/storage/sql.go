package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vladimiradmaev/medscan/internal/config"
	"github.com/vladimiradmaev/medscan/internal/logger"
	"github.com/vladimiradmaev/medscan/internal/storage/migrations"
)

// KVEntry is one stored value. An entry with an empty value counts as absent.
type KVEntry struct {
	Key       string `gorm:"column:entry_key;primaryKey;size:255"`
	Value     []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// Schema migrations for the SQL backend.
func Migrations() *migrations.Migrator {
	m := migrations.New()
	m.Register("0001_create_kv_entries",
		func(db *gorm.DB) error { return db.AutoMigrate(&KVEntry{}) },
		func(db *gorm.DB) error { return db.Migrator().DropTable(&KVEntry{}) },
	)
	return m
}

// SQLStore keeps values in a relational table through gorm.
type SQLStore struct {
	db *gorm.DB
}

// NewPostgresStore connects to Postgres and migrates the schema
func NewPostgresStore(cfg config.DBConfig) (*SQLStore, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store, err := NewSQLStore(db)
	if err != nil {
		return nil, err
	}
	logger.Info("Database connection established and migrations completed", "host", cfg.Host, "db", cfg.DBName)
	return store, nil
}

// NewSQLStore runs pending migrations on db and wraps it.
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := Migrations().Run(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var entry KVEntry
	err := s.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(entry.Value) == 0 {
		return nil, false, nil
	}
	return entry.Value, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	entry := KVEntry{Key: key, Value: value}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// Update locks the row for the duration of a transaction. A placeholder row
// is inserted first so that two writers racing on a new key still serialize.
func (s *SQLStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	db := s.db.WithContext(ctx)

	placeholder := KVEntry{Key: key}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&placeholder).Error; err != nil {
		return fmt.Errorf("failed to reserve key: %w", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		q := tx
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var entry KVEntry
		if err := q.Where("entry_key = ?", key).First(&entry).Error; err != nil {
			return err
		}

		next, err := fn(entry.Value, len(entry.Value) > 0)
		if err != nil {
			return err
		}
		return tx.Model(&KVEntry{}).Where("entry_key = ?", key).Update("value", next).Error
	})
	if errors.Is(err, ErrSkipWrite) {
		return nil
	}
	return err
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
