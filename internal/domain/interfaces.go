package domain

import "context"

// ReportAnalyzer turns one uploaded document into an AnalysisRecord.
type ReportAnalyzer interface {
	Analyze(ctx context.Context, doc Document, profile UserProfile) (*AnalysisRecord, error)
}

// HistoryRepository persists the longitudinal record of a user.
type HistoryRepository interface {
	Append(ctx context.Context, userID int64, record AnalysisRecord) (HistoryEntry, error)
	List(ctx context.Context, userID int64) ([]HistoryEntry, error)
}

// ProfileRepository persists user profiles.
type ProfileRepository interface {
	Get(ctx context.Context, userID int64) (UserProfile, bool, error)
	Save(ctx context.Context, userID int64, profile UserProfile) error
}

// ChatSession is a follow-up conversation bound to one AnalysisRecord.
type ChatSession interface {
	Send(ctx context.Context, text string) (string, error)
	Messages() []ChatMessage
	Record() AnalysisRecord
}

// BotService handles telegram bot operations
type BotService interface {
	Start(ctx context.Context) error
	Stop()
}
