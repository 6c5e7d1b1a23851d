package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	draftRepo "digibook/database/repository/draft"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Draft is the persisted form of a wizard session.
type Draft struct {
	SessionID   string    `json:"sessionId"`
	Record      *Record   `json:"record"`
	CurrentStep int       `json:"currentStep"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SessionManager opens, restores and saves wizard sessions.
type SessionManager struct {
	Drafts draftRepo.DraftRepository
	Logger *zap.Logger
}

func NewSessionManager(drafts draftRepo.DraftRepository, logger *zap.Logger) *SessionManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionManager{Drafts: drafts, Logger: logger}
}

// Open starts a fresh session and persists its empty draft.
func (m *SessionManager) Open(ctx context.Context) (string, *Controller, error) {
	sessionID := uuid.New().String()
	ctrl := NewController(NewRecord(), 1)
	if err := m.Save(ctx, sessionID, ctrl); err != nil {
		return "", nil, err
	}
	m.Logger.Debug("Wizard session opened", zap.String("sessionID", sessionID))
	return sessionID, ctrl, nil
}

// Load restores a session. A corrupt draft is replaced by an empty record.
func (m *SessionManager) Load(ctx context.Context, sessionID string) (*Controller, error) {
	data, err := m.Drafts.Load(ctx, sessionID)
	if errors.Is(err, draftRepo.ErrDraftNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var d Draft
	if err := json.Unmarshal(data, &d); err != nil || d.Record == nil {
		m.Logger.Warn("Discarding unreadable wizard draft", zap.String("sessionID", sessionID), zap.Error(err))
		return NewController(NewRecord(), 1), nil
	}
	return NewController(d.Record, d.CurrentStep), nil
}

// Save writes the controller state. Last write wins.
func (m *SessionManager) Save(ctx context.Context, sessionID string, ctrl *Controller) error {
	data, err := json.Marshal(Draft{
		SessionID:   sessionID,
		Record:      ctrl.Record(),
		CurrentStep: ctrl.CurrentStep(),
		UpdatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	return m.Drafts.Save(ctx, sessionID, data)
}

// Discard removes the session's draft.
func (m *SessionManager) Discard(ctx context.Context, sessionID string) error {
	return m.Drafts.Delete(ctx, sessionID)
}
