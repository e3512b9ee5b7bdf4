package mocks

import (
	"context"
	"fmt"
	"sync"

	"gitlab.com/nestar/idverify-backend/internal/domain/verification"
)

type SessionGateway struct {
	mu       sync.Mutex
	sessions map[string]verification.Session
	counter  int

	CreateErr   error
	RetrieveErr error
}

func NewSessionGateway() *SessionGateway {
	return &SessionGateway{
		sessions: make(map[string]verification.Session),
	}
}

func (g *SessionGateway) CreateSession(ctx context.Context, email, returnURL string) (verification.SessionHandle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.CreateErr != nil {
		return verification.SessionHandle{}, g.CreateErr
	}

	g.counter++
	id := fmt.Sprintf("vs_mock_%d", g.counter)

	g.sessions[id] = verification.Session{
		ID:     id,
		Status: verification.SessionStatusRequiresInput,
		Email:  email,
	}

	return verification.SessionHandle{
		ID:  id,
		URL: "https://verify.example.com/" + id,
	}, nil
}

func (g *SessionGateway) RetrieveSession(ctx context.Context, sessionID string) (verification.Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.RetrieveErr != nil {
		return verification.Session{}, g.RetrieveErr
	}

	sess, exists := g.sessions[sessionID]
	if !exists {
		return verification.Session{}, fmt.Errorf("session %s not found", sessionID)
	}
	return sess, nil
}

// SeedSession registers a session the gateway will return on retrieval.
func (g *SessionGateway) SeedSession(sess verification.Session) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.sessions[sess.ID] = sess
}

func (g *SessionGateway) SetStatus(sessionID string, status verification.SessionStatus) {
	g.mu.Lock()
	defer g.mu.Unlock()

	sess := g.sessions[sessionID]
	sess.ID = sessionID
	sess.Status = status
	g.sessions[sessionID] = sess
}
