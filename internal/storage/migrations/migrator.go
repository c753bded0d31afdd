package migrations

import (
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/vladimiradmaev/medscan/internal/logger"
)

// Migration represents a database migration
type Migration struct {
	ID   string
	Up   func(*gorm.DB) error
	Down func(*gorm.DB) error
}

// MigrationRecord represents a record of executed migrations
type MigrationRecord struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

// Migrator runs registered migrations in ID order, each at most once.
type Migrator struct {
	migrations map[string]Migration
}

func New() *Migrator {
	return &Migrator{migrations: make(map[string]Migration)}
}

// Register adds a new migration to the registry
func (m *Migrator) Register(id string, up, down func(*gorm.DB) error) {
	m.migrations[id] = Migration{ID: id, Up: up, Down: down}
}

func (m *Migrator) sortedIDs() []string {
	ids := make([]string, 0, len(m.migrations))
	for id := range m.migrations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func executedIDs(db *gorm.DB) (map[string]bool, error) {
	var executed []MigrationRecord
	if err := db.Find(&executed).Error; err != nil {
		return nil, fmt.Errorf("failed to get executed migrations: %w", err)
	}
	done := make(map[string]bool, len(executed))
	for _, r := range executed {
		done[r.ID] = true
	}
	return done, nil
}

// Run executes all pending migrations
func (m *Migrator) Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	done, err := executedIDs(db)
	if err != nil {
		return err
	}

	for _, id := range m.sortedIDs() {
		if done[id] {
			continue
		}
		logger.Info("Running migration", "id", id)
		if err := m.migrations[id].Up(db); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", id, err)
		}
		if err := db.Create(&MigrationRecord{ID: id}).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", id, err)
		}
	}
	return nil
}

// Rollback reverts the most recently executed migration that has a Down step.
func (m *Migrator) Rollback(db *gorm.DB) error {
	done, err := executedIDs(db)
	if err != nil {
		return err
	}

	ids := m.sortedIDs()
	for i := len(ids) - 1; i >= 0; i-- {
		id := ids[i]
		if !done[id] {
			continue
		}
		migration := m.migrations[id]
		if migration.Down == nil {
			return fmt.Errorf("migration %s cannot be rolled back", id)
		}
		logger.Info("Rolling back migration", "id", id)
		if err := migration.Down(db); err != nil {
			return fmt.Errorf("failed to roll back migration %s: %w", id, err)
		}
		return db.Delete(&MigrationRecord{ID: id}).Error
	}
	return nil
}
