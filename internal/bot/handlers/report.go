package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/medscan/internal/bot/keyboards"
	"github.com/vladimiradmaev/medscan/internal/bot/state"
	"github.com/vladimiradmaev/medscan/internal/domain"
	"github.com/vladimiradmaev/medscan/internal/logger"
)

// Telegram bots can download files up to 20 MB.
const maxDocumentSize = 20 << 20

// ReportHandler handles uploaded reports and analysis retries
type ReportHandler struct {
	*responder
	httpClient *http.Client
}

// NewReportHandler creates a new report handler
func NewReportHandler(api BotAPI, deps Dependencies, stateManager *state.Manager) *ReportHandler {
	return &ReportHandler{
		responder:  newResponder(api, deps, stateManager),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// Handle downloads an uploaded photo or file and analyzes it
func (h *ReportHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	userID := message.From.ID
	chatID := message.Chat.ID

	if err := h.stateManager.BeginAnalysis(userID); err != nil {
		return h.sendText(chatID, "⏳ I am still working on your previous report. Please wait for it to finish.", nil)
	}
	defer h.stateManager.EndAnalysis(userID)

	fileID, declared, size := attachment(message)
	if size > maxDocumentSize {
		return h.sendText(chatID, "The file is larger than 20 MB. Please send a smaller photo or PDF.", nil)
	}

	data, err := h.download(ctx, fileID)
	if err != nil {
		logger.WithUser(userID).Error("Failed to download report", "error", err)
		return h.sendText(chatID, "❌ I could not download the file. Please send it again.", nil)
	}

	doc := domain.NewDocument(data, declared)
	if err := doc.Validate(); err != nil {
		h.errHandler.Handle(ctx, err)
		return h.sendText(chatID, FormatDocumentError(err), nil)
	}

	h.stateManager.SetPendingDocument(userID, doc)
	return h.analyze(ctx, message.From, chatID, doc)
}

// Retry analyzes the last document that failed, without a new upload
func (h *ReportHandler) Retry(ctx context.Context, from *tgbotapi.User, chatID int64) error {
	if err := h.stateManager.BeginAnalysis(from.ID); err != nil {
		return h.sendText(chatID, "⏳ I am still working on your previous report. Please wait for it to finish.", nil)
	}
	defer h.stateManager.EndAnalysis(from.ID)

	doc, ok := h.stateManager.PendingDocument(from.ID)
	if !ok {
		return h.sendText(chatID, "There is nothing to retry. Please send the report again.", nil)
	}
	return h.analyze(ctx, from, chatID, doc)
}

func (h *ReportHandler) analyze(ctx context.Context, from *tgbotapi.User, chatID int64, doc domain.Document) error {
	log := logger.WithUser(from.ID)

	progress, err := h.api.Send(tgbotapi.NewMessage(chatID, "🔍 Analyzing your report, this usually takes under a minute..."))
	if err != nil {
		log.Warn("Failed to send progress message", "error", err)
	}

	profile, err := h.deps.Profiles.GetOrDefault(ctx, from.ID, from.FirstName)
	if err != nil {
		h.errHandler.Handle(ctx, err)
		profile = domain.DefaultProfile(from.FirstName)
	}

	log.Info("Starting report analysis", "mime_type", doc.MIMEType, "size", len(doc.Data))
	started := time.Now()
	result, err := h.deps.Reports.Process(ctx, from.ID, doc, profile)

	if progress.MessageID != 0 {
		if _, delErr := h.api.Request(tgbotapi.NewDeleteMessage(chatID, progress.MessageID)); delErr != nil {
			log.Warn("Failed to delete progress message", "error", delErr)
		}
	}

	if result == nil {
		h.errHandler.Handle(ctx, err)
		retry := keyboards.RetryMenu()
		return h.sendText(chatID, FormatAnalysisFailure(err), &retry)
	}
	log.Info("Report analysis completed", "duration", time.Since(started), "overall_status", result.Record.OverallStatus)

	h.stateManager.ClearPendingDocument(from.ID)
	h.stateManager.SetSession(from.ID, h.deps.Chat.Create(result.Record))

	text := FormatAnalysis(result.Record)
	if !result.Saved {
		h.errHandler.Handle(ctx, err)
		text = "⚠️ This result could not be saved to your history, so it will not appear in trends.\n\n" + text
	}
	menu := keyboards.ResultMenu()
	return h.sendText(chatID, truncate(text), &menu)
}

// attachment picks the file to analyze: the largest photo size, or the document.
func attachment(message *tgbotapi.Message) (fileID, mimeType string, size int) {
	if len(message.Photo) > 0 {
		photo := message.Photo[len(message.Photo)-1]
		return photo.FileID, domain.MIMEJPEG, photo.FileSize
	}
	return message.Document.FileID, message.Document.MimeType, message.Document.FileSize
}

func (h *ReportHandler) download(ctx context.Context, fileID string) ([]byte, error) {
	url, err := h.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download file: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > maxDocumentSize {
		return nil, fmt.Errorf("file exceeds %d bytes", maxDocumentSize)
	}
	return data, nil
}
