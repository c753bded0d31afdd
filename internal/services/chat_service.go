package services

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/vladimiradmaev/medscan/internal/domain"
	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
	"github.com/vladimiradmaev/medscan/internal/logger"
)

const (
	WelcomeMessage = "Hello. I have analyzed your report. What specific details would you like me to clarify?"
	ApologyMessage = "I encountered a connection error. Please try again."
)

// ChatService creates follow-up conversations about analyzed reports.
type ChatService struct {
	generator  ChatGenerator
	timeout    time.Duration
	now        func() time.Time
	errHandler *apperrors.Handler
}

func NewChatService(generator ChatGenerator, timeout time.Duration) *ChatService {
	return &ChatService{
		generator:  generator,
		timeout:    timeout,
		now:        time.Now,
		errHandler: apperrors.NewHandler(logger.GetLogger()),
	}
}

// Create starts a session bound to record. The transcript opens with the
// model's welcome message.
func (s *ChatService) Create(record domain.AnalysisRecord) *Session {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		recordJSON = []byte("{}")
	}
	// The session keeps its own copy so later changes by the caller do not
	// leak into the conversation context.
	var own domain.AnalysisRecord
	if err := json.Unmarshal(recordJSON, &own); err != nil {
		own = record
	}

	session := &Session{
		service:     s,
		record:      own,
		instruction: chatInstruction + string(recordJSON),
		turn:        make(chan struct{}, 1),
	}
	session.append(domain.RoleModel, WelcomeMessage)
	return session
}

// Session is a conversation about one AnalysisRecord. Sends are serialized;
// a second caller waits until the current turn completes.
type Session struct {
	service     *ChatService
	record      domain.AnalysisRecord
	instruction string
	turn        chan struct{}

	mu       sync.Mutex
	messages []domain.ChatMessage
}

// Send appends the user's message, asks the model for a reply and appends
// it. Inference failures are not returned: the apology text becomes the
// reply instead. Blank messages are rejected without touching the transcript.
func (s *Session) Send(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperrors.ErrEmptyMessage
	}

	select {
	case s.turn <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-s.turn }()

	history := s.Messages()
	s.append(domain.RoleUser, text)

	callCtx := ctx
	if s.service.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.service.timeout)
		defer cancel()
	}

	reply, err := s.service.generator.GenerateChat(callCtx, ChatRequest{
		SystemInstruction: s.instruction,
		History:           history,
		Message:           text,
	})
	if err == nil && strings.TrimSpace(reply) == "" {
		err = ErrEmptyResponse
	}
	if err != nil {
		s.service.errHandler.Handle(ctx, &apperrors.ChatError{Err: err})
		reply = ApologyMessage
	}

	s.append(domain.RoleModel, reply)
	return reply, nil
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ChatMessage(nil), s.messages...)
}

// Record returns the record the session is bound to.
func (s *Session) Record() domain.AnalysisRecord {
	return s.record
}

func (s *Session) append(role domain.Role, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.service.now()
	if n := len(s.messages); n > 0 && ts.Before(s.messages[n-1].Timestamp) {
		ts = s.messages[n-1].Timestamp
	}
	s.messages = append(s.messages, domain.ChatMessage{Role: role, Text: text, Timestamp: ts})
}
