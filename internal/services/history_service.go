package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladimiradmaev/medscan/internal/domain"
	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
	"github.com/vladimiradmaev/medscan/internal/logger"
	"github.com/vladimiradmaev/medscan/internal/storage"
)

func historyKey(userID int64) string {
	return fmt.Sprintf("medscan_history:%d", userID)
}

// HistoryService keeps the append-only longitudinal record of each user.
type HistoryService struct {
	store storage.Store
	now   func() time.Time
	newID func() string
}

func NewHistoryService(store storage.Store) *HistoryService {
	return &HistoryService{
		store: store,
		now:   time.Now,
		newID: newEntryID,
	}
}

func newEntryID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Append derives a history entry from record and adds it to the user's
// history. Existing entries are left untouched when the write fails.
func (s *HistoryService) Append(ctx context.Context, userID int64, record domain.AnalysisRecord) (domain.HistoryEntry, error) {
	entry := domain.NewHistoryEntry(s.newID(), record, s.now())
	key := historyKey(userID)

	err := s.store.Update(ctx, key, func(current []byte, found bool) ([]byte, error) {
		history, err := decodeHistory(current, found)
		if err != nil {
			return nil, err
		}
		history.Reports = append(history.Reports, entry)
		return json.Marshal(history)
	})
	if err != nil {
		return domain.HistoryEntry{}, apperrors.NewStorageError("append", key, err)
	}

	logger.WithUser(userID).Info("History entry appended",
		"entry_id", entry.ID,
		"report_type", entry.ReportType,
		"parameters", len(entry.Parameters))
	return entry, nil
}

// List returns the user's entries in insertion order.
func (s *HistoryService) List(ctx context.Context, userID int64) ([]domain.HistoryEntry, error) {
	key := historyKey(userID)
	data, found, err := s.store.Get(ctx, key)
	if err != nil {
		return nil, apperrors.NewStorageError("list", key, err)
	}
	history, err := decodeHistory(data, found)
	if err != nil {
		return nil, apperrors.NewStorageError("list", key, err)
	}
	return history.Reports, nil
}

// SeedIfEmpty stores demo as the user's history when none exists yet and
// reports whether it did.
func (s *HistoryService) SeedIfEmpty(ctx context.Context, userID int64, demo domain.HealthHistory) (bool, error) {
	key := historyKey(userID)
	seeded := false

	err := s.store.Update(ctx, key, func(current []byte, found bool) ([]byte, error) {
		history, err := decodeHistory(current, found)
		if err != nil {
			return nil, err
		}
		if len(history.Reports) > 0 {
			return nil, storage.ErrSkipWrite
		}
		seeded = true
		return json.Marshal(demo)
	})
	if err != nil {
		return false, apperrors.NewStorageError("seed", key, err)
	}

	if seeded {
		logger.WithUser(userID).Info("Demo history seeded", "reports", len(demo.Reports))
	}
	return seeded, nil
}

func decodeHistory(data []byte, found bool) (domain.HealthHistory, error) {
	history := domain.HealthHistory{Reports: []domain.HistoryEntry{}}
	if !found {
		return history, nil
	}
	if err := json.Unmarshal(data, &history); err != nil {
		return history, errors.Join(errors.New("stored history is not valid JSON"), err)
	}
	if history.Reports == nil {
		history.Reports = []domain.HistoryEntry{}
	}
	return history, nil
}

// DemoHistory is a fixed two-report history used to show the trends view
// before a user has uploaded two reports of their own.
func DemoHistory() domain.HealthHistory {
	first := time.Date(2025, time.June, 15, 9, 0, 0, 0, time.UTC)
	second := time.Date(2025, time.September, 20, 9, 0, 0, 0, time.UTC)

	return domain.HealthHistory{Reports: []domain.HistoryEntry{
		{
			ID:         "demo_1",
			Date:       "2025-06-15",
			ReportType: "Blood Test",
			CreatedAt:  first,
			Parameters: []domain.HistoryParameter{
				{Name: "Blood Sugar Level", Value: "145", Status: string(domain.StatusHigh)},
				{Name: "Hemoglobin", Value: "13.5", Status: domain.StatusNormal},
				{Name: "Total Cholesterol", Value: "210", Status: string(domain.StatusSlightlyHigh)},
			},
		},
		{
			ID:         "demo_2",
			Date:       "2025-09-20",
			ReportType: "Blood Test",
			CreatedAt:  second,
			Parameters: []domain.HistoryParameter{
				{Name: "Blood Sugar Level", Value: "132", Status: string(domain.StatusSlightlyHigh)},
				{Name: "Hemoglobin", Value: "13.8", Status: domain.StatusNormal},
				{Name: "Total Cholesterol", Value: "190", Status: domain.StatusNormal},
			},
		},
	}}
}
