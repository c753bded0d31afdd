package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/vladimiradmaev/medscan/internal/bot/state"
	"github.com/vladimiradmaev/medscan/internal/domain"
	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
	"github.com/vladimiradmaev/medscan/internal/services"
	"github.com/vladimiradmaev/medscan/internal/storage"
)

const (
	testUserID = int64(42)
	testChatID = int64(4200)
)

var (
	photoBytes = []byte("\xff\xd8\xff\xe0 fake jpeg report")
	pdfBytes   = []byte("%PDF-1.4 fake lab report")
)

// fakeAPI records what the handlers send and serves files from an httptest server.
type fakeAPI struct {
	mu       sync.Mutex
	fileBase string
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
	nextID   int
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	f.nextID++
	return tgbotapi.Message{MessageID: f.nextID}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetFileDirectURL(fileID string) (string, error) {
	return f.fileBase + "/" + fileID, nil
}

func (f *fakeAPI) texts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.sent {
		if msg, ok := c.(tgbotapi.MessageConfig); ok {
			out = append(out, msg.Text)
		}
	}
	return out
}

func (f *fakeAPI) lastText() string {
	texts := f.texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

func (f *fakeAPI) requested(match func(tgbotapi.Chattable) bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.requests {
		if match(c) {
			return true
		}
	}
	return false
}

type analyzeCall struct {
	doc     domain.Document
	profile domain.UserProfile
}

type fakeAnalyzer struct {
	mu     sync.Mutex
	record *domain.AnalysisRecord
	err    error
	calls  []analyzeCall
}

func (f *fakeAnalyzer) Analyze(_ context.Context, doc domain.Document, profile domain.UserProfile) (*domain.AnalysisRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, analyzeCall{doc: doc, profile: profile})
	if f.err != nil {
		return nil, f.err
	}
	record := *f.record
	return &record, nil
}

func (f *fakeAnalyzer) set(record *domain.AnalysisRecord, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record, f.err = record, err
}

func (f *fakeAnalyzer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeChat struct {
	reply string
}

func (f *fakeChat) GenerateChat(_ context.Context, req services.ChatRequest) (string, error) {
	return f.reply + " (" + req.Message + ")", nil
}

// failingHistory loses every append.
type failingHistory struct{}

func (failingHistory) Append(context.Context, int64, domain.AnalysisRecord) (domain.HistoryEntry, error) {
	return domain.HistoryEntry{}, apperrors.NewStorageError("append", "medscan_history:42", errors.New("connection refused"))
}

func (failingHistory) List(context.Context, int64) ([]domain.HistoryEntry, error) {
	return nil, nil
}

func sampleRecord() *domain.AnalysisRecord {
	return &domain.AnalysisRecord{
		ReportType:          "Blood Test",
		ReportDate:          "2025-10-01",
		OverallStatus:       domain.OverallAttentionNeeded,
		SummaryEmoji:        "🩸",
		OneLineSummary:      "Sugar is a little high.",
		SpokenSummaryScript: "Your sugar is slightly high.",
		AttentionItems: []domain.AttentionItem{{
			Parameter:   "Glucose (Fasting)",
			YourValue:   "132 mg/dL",
			NormalRange: "70-100 mg/dL",
			Status:      domain.StatusHigh,
			SimpleName:  "Blood Sugar Level",
			Urgency:     domain.UrgencySoon,
		}},
		GoodItems: []domain.GoodItem{{Parameter: "Hemoglobin", YourValue: "13.8 g/dL"}},
		OrganMap: []domain.OrganStatus{
			{Organ: domain.OrganPancreas, Status: domain.OrganAttention},
			{Organ: domain.OrganHeart, Status: domain.OrganGood},
		},
		MedicineAnalysis: domain.MedicineAnalysis{
			Schedule: domain.Schedule{Morning: []string{"Walk 20 minutes"}},
		},
		DoctorQuestions: []string{"Should I repeat the test?"},
	}
}

type testEnv struct {
	api      *fakeAPI
	analyzer *fakeAnalyzer
	state    *state.Manager
	history  *services.HistoryService
	profiles *services.ProfileService
	handler  *UpdateHandler
}

type envOption func(*Dependencies)

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/photo"):
			_, _ = w.Write(photoBytes)
		case strings.HasSuffix(r.URL.Path, "/report.pdf"), strings.HasSuffix(r.URL.Path, "/notes.txt"):
			_, _ = w.Write(pdfBytes)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	store := storage.NewMemoryStore()
	history := services.NewHistoryService(store)
	profiles := services.NewProfileService(store)
	analyzer := &fakeAnalyzer{record: sampleRecord()}

	deps := Dependencies{
		Reports:  services.NewReportService(analyzer, history),
		History:  history,
		Profiles: profiles,
		Trends:   services.NewTrendService(history),
		Chat:     services.NewChatService(&fakeChat{reply: "Here is what it means"}, 0),
	}
	for _, opt := range opts {
		opt(&deps)
	}

	api := &fakeAPI{fileBase: server.URL}
	stateManager := state.NewManager()
	return &testEnv{
		api:      api,
		analyzer: analyzer,
		state:    stateManager,
		history:  history,
		profiles: profiles,
		handler:  NewUpdateHandler(api, deps, stateManager),
	}
}

func sender() *tgbotapi.User {
	return &tgbotapi.User{ID: testUserID, FirstName: "Ann"}
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From: sender(),
		Chat: &tgbotapi.Chat{ID: testChatID},
		Text: text,
	}}
}

func commandUpdate(text string) tgbotapi.Update {
	update := textUpdate(text)
	command, _, _ := strings.Cut(text, " ")
	update.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(command)}}
	return update
}

func photoUpdate() tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From: sender(),
		Chat: &tgbotapi.Chat{ID: testChatID},
		Photo: []tgbotapi.PhotoSize{
			{FileID: "thumb", Width: 90, Height: 90},
			{FileID: "photo", Width: 1280, Height: 1280},
		},
	}}
}

func documentUpdate(fileID, mimeType string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From:     sender(),
		Chat:     &tgbotapi.Chat{ID: testChatID},
		Document: &tgbotapi.Document{FileID: fileID, MimeType: mimeType},
	}}
}

func callbackUpdate(data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb-1",
		From:    sender(),
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: testChatID}},
		Data:    data,
	}}
}
