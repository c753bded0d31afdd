package services

import (
	"context"

	"github.com/vladimiradmaev/medscan/internal/domain"
)

// ProcessResult is the outcome of a processed upload.
type ProcessResult struct {
	Record domain.AnalysisRecord
	Entry  domain.HistoryEntry
	// Saved is false when the record was produced but could not be appended.
	Saved bool
}

// ReportService analyzes an upload and records it in the user's history.
type ReportService struct {
	analyzer domain.ReportAnalyzer
	history  domain.HistoryRepository
}

func NewReportService(analyzer domain.ReportAnalyzer, history domain.HistoryRepository) *ReportService {
	return &ReportService{analyzer: analyzer, history: history}
}

// Process runs the analysis and appends the result. When the append fails
// the result still carries the record, together with the storage error.
func (s *ReportService) Process(ctx context.Context, userID int64, doc domain.Document, profile domain.UserProfile) (*ProcessResult, error) {
	record, err := s.analyzer.Analyze(ctx, doc, profile)
	if err != nil {
		return nil, err
	}

	result := &ProcessResult{Record: *record}
	entry, err := s.history.Append(ctx, userID, *record)
	if err != nil {
		return result, err
	}
	result.Entry = entry
	result.Saved = true
	return result, nil
}
