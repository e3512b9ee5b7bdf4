package mocks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"gitlab.com/nestar/idverify-backend/internal/domain/account"
	"gitlab.com/nestar/idverify-backend/internal/domain/event"
	"gitlab.com/nestar/idverify-backend/pkg/errorx"
)

type AccountRepo struct {
	dbbyEmail   map[string]*account.Account
	dbbySession map[string]*account.Account
	events      []event.Event
	mu          sync.Mutex

	SaveErr   error
	UpdateErr error
}

func NewAccountRepo() *AccountRepo {
	return &AccountRepo{
		dbbyEmail:   make(map[string]*account.Account),
		dbbySession: make(map[string]*account.Account),
	}
}

func (r *AccountRepo) GetAccountByEmail(ctx context.Context, email string) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, exists := r.dbbyEmail[email]; exists {
		return a, nil
	}
	return nil, errorx.NewNotFound()
}

func (r *AccountRepo) GetAccountBySessionID(ctx context.Context, sessionID string) (*account.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a, exists := r.dbbySession[sessionID]; exists {
		return a, nil
	}
	return nil, errorx.NewNotFound()
}

func (r *AccountRepo) SaveAccount(ctx context.Context, a *account.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.SaveErr != nil {
		return r.SaveErr
	}

	if a == nil {
		return errors.New("account cannot be nil")
	}

	if _, exists := r.dbbyEmail[a.Email()]; exists {
		return errorx.NewConflict()
	}

	r.index(a)
	r.events = append(r.events, a.GetUncommittedEvents()...)

	return nil
}

func (r *AccountRepo) UpdateAccountByEmail(
	ctx context.Context,
	email string,
	fn func(context.Context, *account.Account) error,
) error {
	if fn == nil {
		return errors.New("update function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.UpdateErr != nil {
		return r.UpdateErr
	}

	a, exists := r.dbbyEmail[email]
	if !exists {
		return errorx.NewNotFound()
	}

	return r.apply(ctx, a, fn)
}

func (r *AccountRepo) UpdateAccountBySessionID(
	ctx context.Context,
	sessionID string,
	fn func(context.Context, *account.Account) error,
) error {
	if fn == nil {
		return errors.New("update function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.UpdateErr != nil {
		return r.UpdateErr
	}

	a, exists := r.dbbySession[sessionID]
	if !exists {
		return errorx.NewNotFound()
	}

	return r.apply(ctx, a, fn)
}

func (r *AccountRepo) apply(ctx context.Context, a *account.Account, fn func(context.Context, *account.Account) error) error {
	fnerr := fn(ctx, a)
	if fnerr != nil && !errorx.IsPersistable(fnerr) {
		return fmt.Errorf("failed to apply update function: %w", fnerr)
	}

	r.index(a)
	r.events = append(r.events, a.GetUncommittedEvents()...)
	a.MarkEventsAsCommitted()

	if fnerr != nil && errorx.IsPersistable(fnerr) {
		return fmt.Errorf("failed to apply update function: %w", fnerr)
	}
	return nil
}

func (r *AccountRepo) index(a *account.Account) {
	r.dbbyEmail[a.Email()] = a
	if a.VerificationSessionID() != "" {
		r.dbbySession[a.VerificationSessionID()] = a
	}
}

func (r *AccountRepo) SeedAccount(t *testing.T, a *account.Account) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dbbyEmail[a.Email()]; exists {
		t.Fatalf("account with email %s already exists", a.Email())
	}

	r.index(a)
}

func (r *AccountRepo) AssertAccountStatus(t *testing.T, email string, want account.Status) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.dbbyEmail[email]
	if !exists {
		t.Errorf("expected account with email %s to exist, but it does not", email)
		return
	}

	if a.Status() != want {
		t.Errorf("expected account %s to have status %s, got %s", email, want, a.Status())
	}
}

func (r *AccountRepo) AssertAccountNotExists(t *testing.T, email string) {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.dbbyEmail[email]; exists {
		t.Errorf("expected account with email %s to not exist, but it does", email)
	}
}

func (r *AccountRepo) Account(t *testing.T, email string) *account.Account {
	t.Helper()

	r.mu.Lock()
	defer r.mu.Unlock()

	a, exists := r.dbbyEmail[email]
	if !exists {
		t.Fatalf("account with email %s does not exist", email)
	}
	return a
}

func (r *AccountRepo) Events() []event.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]event.Event{}, r.events...)
}
