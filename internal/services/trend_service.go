package services

import (
	"context"

	"github.com/vladimiradmaev/medscan/internal/domain"
	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
)

// ParameterTrend is the full series of one parameter with its latest delta.
type ParameterTrend struct {
	Parameter string
	Points    []TrendPoint
	Delta     TrendDelta
}

// TrendService reads a user's history and computes trends over it.
type TrendService struct {
	history domain.HistoryRepository
}

func NewTrendService(history domain.HistoryRepository) *TrendService {
	return &TrendService{history: history}
}

// TrendFor returns the series of one parameter. It fails with
// ErrInsufficientTrend when fewer than two numeric observations exist; the
// returned trend still carries the points found.
func (s *TrendService) TrendFor(ctx context.Context, userID int64, name string) (ParameterTrend, error) {
	entries, err := s.history.List(ctx, userID)
	if err != nil {
		return ParameterTrend{}, err
	}

	trend := ParameterTrend{Parameter: name, Points: Series(entries, name)}
	delta, ok := Delta(entries, name)
	if !ok {
		return trend, apperrors.ErrInsufficientTrend
	}
	trend.Delta = delta
	return trend, nil
}

// Overview returns the delta of every tracked parameter that has one.
func (s *TrendService) Overview(ctx context.Context, userID int64) ([]TrendDelta, error) {
	entries, err := s.history.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	var deltas []TrendDelta
	for _, name := range ParametersTracked(entries) {
		if delta, ok := Delta(entries, name); ok {
			deltas = append(deltas, delta)
		}
	}
	return deltas, nil
}
