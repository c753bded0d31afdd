package domain

import (
	"strings"
	"time"
)

// StatusNormal marks a parameter that came from the good items list.
const StatusNormal = "normal"

// HistoryParameter is one measured value inside a history entry.
type HistoryParameter struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Status string `json:"status"`
}

// HistoryEntry is the trend-oriented projection of one AnalysisRecord.
type HistoryEntry struct {
	ID         string             `json:"id"`
	Date       string             `json:"date"`
	ReportType string             `json:"reportType"`
	CreatedAt  time.Time          `json:"createdAt"`
	Parameters []HistoryParameter `json:"parameters"`
}

// HealthHistory is the stored shape of a user's history.
type HealthHistory struct {
	Reports []HistoryEntry `json:"reports"`
}

// NewHistoryEntry projects a record into a history entry: attention items
// first (by simple name, or by parameter when the simple name is blank, with
// their status), then good items as "normal".
// An empty report date is replaced by now.
func NewHistoryEntry(id string, record AnalysisRecord, now time.Time) HistoryEntry {
	params := make([]HistoryParameter, 0, len(record.AttentionItems)+len(record.GoodItems))
	for _, item := range record.AttentionItems {
		name := strings.TrimSpace(item.SimpleName)
		if name == "" {
			name = item.Parameter
		}
		params = append(params, HistoryParameter{
			Name:   name,
			Value:  item.YourValue,
			Status: string(item.Status),
		})
	}
	for _, item := range record.GoodItems {
		params = append(params, HistoryParameter{
			Name:   item.Parameter,
			Value:  item.YourValue,
			Status: StatusNormal,
		})
	}

	date := record.ReportDate
	if date == "" {
		date = now.UTC().Format(time.RFC3339)
	}

	return HistoryEntry{
		ID:         id,
		Date:       date,
		ReportType: record.ReportType,
		CreatedAt:  now.UTC(),
		Parameters: params,
	}
}
