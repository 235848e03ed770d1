package services

import (
	"sync"

	"healthcare-plus/internal/models"
)

// ConversationStore keeps bounded chat histories in memory, one per
// session id. Each history starts with the fixed system message, which
// survives trimming at index 0. Histories are capped at limit entries:
// once an append pushes a session past the cap, it collapses to the
// system message plus the most recent limit-1 turns.
type ConversationStore struct {
	mu           sync.Mutex
	sessions     map[string][]models.ChatMessage
	systemPrompt string
	limit        int
}

func NewConversationStore(systemPrompt string, limit int) *ConversationStore {
	if limit < 2 {
		limit = 11
	}
	return &ConversationStore{
		sessions:     make(map[string][]models.ChatMessage),
		systemPrompt: systemPrompt,
		limit:        limit,
	}
}

// AppendUser adds a user turn and returns a snapshot of the full history
// to send upstream.
func (cs *ConversationStore) AppendUser(sessionID, content string) []models.ChatMessage {
	return cs.append(sessionID, models.ChatMessage{Role: models.RoleUser, Content: content})
}

// AppendAssistant adds the model's reply to the session.
func (cs *ConversationStore) AppendAssistant(sessionID, content string) {
	cs.append(sessionID, models.ChatMessage{Role: models.RoleAssistant, Content: content})
}

// History returns a copy of the session's current history.
func (cs *ConversationStore) History(sessionID string) []models.ChatMessage {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return snapshot(cs.session(sessionID))
}

func (cs *ConversationStore) append(sessionID string, msg models.ChatMessage) []models.ChatMessage {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	history := append(cs.session(sessionID), msg)
	if len(history) > cs.limit {
		trimmed := make([]models.ChatMessage, 0, cs.limit)
		trimmed = append(trimmed, history[0])
		trimmed = append(trimmed, history[len(history)-(cs.limit-1):]...)
		history = trimmed
	}
	cs.sessions[sessionID] = history

	return snapshot(history)
}

// session returns the stored history, initializing it with the system
// message on first use. Callers must hold the lock.
func (cs *ConversationStore) session(sessionID string) []models.ChatMessage {
	history, ok := cs.sessions[sessionID]
	if !ok {
		history = []models.ChatMessage{{Role: models.RoleSystem, Content: cs.systemPrompt}}
		cs.sessions[sessionID] = history
	}
	return history
}

func snapshot(history []models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, len(history))
	copy(out, history)
	return out
}
