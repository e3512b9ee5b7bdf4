package account

import (
	"gitlab.com/nestar/idverify-backend/internal/domain/event"
)

const EventStreamName = "events_account"

type MarkedPending struct {
	event.Header
	event.Otel
	AccountID ID     `json:"account_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

func (e MarkedPending) GetStreamName() string {
	return EventStreamName
}

type VerificationStarted struct {
	event.Header
	event.Otel
	AccountID ID     `json:"account_id"`
	Email     string `json:"email"`
	SessionID string `json:"session_id"`
}

func (e VerificationStarted) GetStreamName() string {
	return EventStreamName
}

type DocumentSubmitted struct {
	event.Header
	event.Otel
	AccountID   ID     `json:"account_id"`
	Email       string `json:"email"`
	DocumentKey string `json:"document_key"`
}

func (e DocumentSubmitted) GetStreamName() string {
	return EventStreamName
}

type Approved struct {
	event.Header
	event.Otel
	AccountID ID     `json:"account_id"`
	Email     string `json:"email"`
	SessionID string `json:"session_id"`
}

func (e Approved) GetStreamName() string {
	return EventStreamName
}
