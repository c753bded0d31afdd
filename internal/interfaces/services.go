package interfaces

import (
	"context"

	"github.com/vladimiradmaev/medscan/internal/domain"
	"github.com/vladimiradmaev/medscan/internal/services"
)

// ReportServiceInterface defines the contract for processing an uploaded report
type ReportServiceInterface interface {
	Process(ctx context.Context, userID int64, doc domain.Document, profile domain.UserProfile) (*services.ProcessResult, error)
}

// HistoryServiceInterface defines the contract for history operations
type HistoryServiceInterface interface {
	List(ctx context.Context, userID int64) ([]domain.HistoryEntry, error)
	SeedIfEmpty(ctx context.Context, userID int64, demo domain.HealthHistory) (bool, error)
}

// ProfileServiceInterface defines the contract for profile operations
type ProfileServiceInterface interface {
	GetOrDefault(ctx context.Context, userID int64, name string) (domain.UserProfile, error)
	Save(ctx context.Context, userID int64, profile domain.UserProfile) error
}

// TrendServiceInterface defines the contract for trend operations
type TrendServiceInterface interface {
	TrendFor(ctx context.Context, userID int64, name string) (services.ParameterTrend, error)
	Overview(ctx context.Context, userID int64) ([]services.TrendDelta, error)
}

// ChatServiceInterface defines the contract for starting follow-up conversations
type ChatServiceInterface interface {
	Create(record domain.AnalysisRecord) *services.Session
}

var (
	_ ReportServiceInterface  = (*services.ReportService)(nil)
	_ HistoryServiceInterface = (*services.HistoryService)(nil)
	_ ProfileServiceInterface = (*services.ProfileService)(nil)
	_ TrendServiceInterface   = (*services.TrendService)(nil)
	_ ChatServiceInterface    = (*services.ChatService)(nil)
	_ domain.ChatSession      = (*services.Session)(nil)
)
