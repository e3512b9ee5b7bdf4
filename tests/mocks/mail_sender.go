package mocks

import (
	"context"
	"strings"
	"sync"
	"testing"

	"gitlab.com/nestar/idverify-backend/internal/domain/valueobject/mails"
)

type MailSender struct {
	mu        sync.Mutex
	sentMails []mails.Payload

	SendErr error
}

func NewMailSender() *MailSender {
	return &MailSender{
		sentMails: make([]mails.Payload, 0),
	}
}

func (m *MailSender) SendMail(ctx context.Context, payload mails.Payload) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SendErr != nil {
		return m.SendErr
	}

	m.sentMails = append(m.sentMails, payload)
	return nil
}

func (m *MailSender) GetSentMails() []mails.Payload {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]mails.Payload{}, m.sentMails...)
}

func (m *MailSender) AssertMailSent(t *testing.T, email, subject string) {
	t.Helper()

	for _, mail := range m.GetSentMails() {
		if mail.To == email && strings.Contains(mail.Subject, subject) {
			return
		}
	}
	t.Errorf("expected mail to %s with subject containing %q, none found", email, subject)
}

func (m *MailSender) AssertNoMailSent(t *testing.T) {
	t.Helper()

	if mails := m.GetSentMails(); len(mails) > 0 {
		t.Errorf("expected no mails to be sent, got %d", len(mails))
	}
}
