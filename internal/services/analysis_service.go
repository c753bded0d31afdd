package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/vladimiradmaev/medscan/internal/domain"
	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
	"github.com/vladimiradmaev/medscan/internal/logger"
	"github.com/vladimiradmaev/medscan/internal/schema"
)

// AnalysisService turns one document into an AnalysisRecord by running the
// two extractions concurrently and merging their results.
type AnalysisService struct {
	extractor *ExtractionService
	timeout   time.Duration
}

func NewAnalysisService(extractor *ExtractionService, timeout time.Duration) *AnalysisService {
	return &AnalysisService{extractor: extractor, timeout: timeout}
}

// Analyze returns either a fully merged record or an *apperrors.AnalysisError
// listing every failed extraction. Invalid documents fail before any request.
func (s *AnalysisService) Analyze(ctx context.Context, doc domain.Document, profile domain.UserProfile) (*domain.AnalysisRecord, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	var (
		wg          sync.WaitGroup
		core        domain.CoreFacts
		insights    domain.DeepInsights
		coreErr     error
		insightsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		core, coreErr = s.extractor.ExtractCoreFacts(ctx, doc, profile)
	}()
	go func() {
		defer wg.Done()
		insights, insightsErr = s.extractor.ExtractDeepInsights(ctx, doc, profile)
	}()
	wg.Wait()

	if failures := collectFailures(
		partResult{schema.CoreFactsName, coreErr},
		partResult{schema.DeepInsightsName, insightsErr},
	); len(failures) > 0 {
		return nil, &apperrors.AnalysisError{Failures: failures}
	}

	record := domain.MergeAnalysis(core, insights)
	logger.Info("Report analyzed",
		"report_type", record.ReportType,
		"overall_status", record.OverallStatus,
		"attention_items", len(record.AttentionItems),
		"duration", time.Since(start))
	return &record, nil
}

type partResult struct {
	part string
	err  error
}

func collectFailures(results ...partResult) []*apperrors.ExtractionError {
	var failures []*apperrors.ExtractionError
	for _, r := range results {
		if r.err == nil {
			continue
		}
		var extErr *apperrors.ExtractionError
		if !errors.As(r.err, &extErr) {
			extErr = apperrors.NewExtractionError(r.part, apperrors.CauseNetwork, r.err)
		}
		failures = append(failures, extErr)
	}
	return failures
}
