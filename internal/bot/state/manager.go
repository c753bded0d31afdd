package state

import (
	"sync"

	"github.com/vladimiradmaev/medscan/internal/domain"
	apperrors "github.com/vladimiradmaev/medscan/internal/errors"
)

// User states constants
const (
	None              = "none"
	WaitingForProfile = "waiting_for_profile"
)

// Manager keeps per-user conversational state: the current input mode, the
// last uploaded document (kept until it is analyzed so it can be retried),
// the active chat session and whether an analysis is running.
type Manager struct {
	userStates map[int64]string
	pending    map[int64]domain.Document
	sessions   map[int64]domain.ChatSession
	analyzing  map[int64]bool
	mu         sync.RWMutex
}

// NewManager creates a new state manager
func NewManager() *Manager {
	return &Manager{
		userStates: make(map[int64]string),
		pending:    make(map[int64]domain.Document),
		sessions:   make(map[int64]domain.ChatSession),
		analyzing:  make(map[int64]bool),
	}
}

// SetUserState sets the state for a user
func (m *Manager) SetUserState(userID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userStates[userID] = state
}

// GetUserState gets the state for a user
func (m *Manager) GetUserState(userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[userID]
	if !exists {
		return None
	}
	return state
}

// ClearUserState clears the state for a user
func (m *Manager) ClearUserState(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userStates, userID)
}

func (m *Manager) SetPendingDocument(userID int64, doc domain.Document) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pending[userID] = doc
}

func (m *Manager) PendingDocument(userID int64) (domain.Document, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.pending[userID]
	return doc, ok
}

func (m *Manager) ClearPendingDocument(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, userID)
}

// SetSession makes session the user's active conversation, replacing any
// previous one.
func (m *Manager) SetSession(userID int64, session domain.ChatSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = session
}

// Session returns the active conversation or nil.
func (m *Manager) Session(userID int64) domain.ChatSession {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[userID]
}

func (m *Manager) ClearSession(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// BeginAnalysis marks an analysis as running for the user. It fails with
// ErrAnalysisInFlight when one already is.
func (m *Manager) BeginAnalysis(userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.analyzing[userID] {
		return apperrors.ErrAnalysisInFlight
	}
	m.analyzing[userID] = true
	return nil
}

func (m *Manager) EndAnalysis(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.analyzing, userID)
}

func (m *Manager) IsAnalyzing(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.analyzing[userID]
}
