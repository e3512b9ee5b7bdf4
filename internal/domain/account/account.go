package account

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/ARUMANDESU/validation"
	"github.com/google/uuid"

	"gitlab.com/nestar/idverify-backend/internal/domain/event"
	"gitlab.com/nestar/idverify-backend/pkg/errorx"
	"gitlab.com/nestar/idverify-backend/pkg/validationx"
)

type Status string

func (s Status) String() string {
	return string(s)
}

const (
	// StatusPendingReview is the parking state: the account exists but must
	// not be activated until an identity check passes.
	StatusPendingReview        Status = "pending_review"
	StatusAwaitingVerification Status = "awaiting_verification"
	StatusApproved             Status = "approved"
)

type ID uuid.UUID

func NewID() ID {
	return ID(uuid.New())
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(uuid.UUID(id).String())
}

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	uid, err := uuid.Parse(s)
	if err != nil {
		return err
	}

	*id = ID(uid)
	return nil
}

type Account struct {
	event.Recorder
	id                    ID
	email                 string
	role                  string
	status                Status
	verificationSessionID string
	documentKey           string
	createdAt             time.Time
	updatedAt             time.Time
}

func NewAccount(email, role string) (*Account, error) {
	const op = "account.NewAccount"
	err := validation.Validate(&email, validationx.EmailRules...)
	if err != nil {
		return nil, errorx.Wrap(err, op)
	}

	now := time.Now().UTC()

	a := &Account{
		id:        NewID(),
		email:     email,
		role:      role,
		status:    StatusPendingReview,
		createdAt: now,
		updatedAt: now,
	}

	a.AddEvent(&MarkedPending{
		Header:    event.NewEventHeader(),
		AccountID: a.id,
		Email:     email,
		Role:      role,
	})

	return a, nil
}

type RehydrateArgs struct {
	ID                    ID
	Email                 string
	Role                  string
	Status                Status
	VerificationSessionID string
	DocumentKey           string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func Rehydrate(args RehydrateArgs) *Account {
	return &Account{
		id:                    args.ID,
		email:                 args.Email,
		role:                  args.Role,
		status:                args.Status,
		verificationSessionID: args.VerificationSessionID,
		documentKey:           args.DocumentKey,
		createdAt:             args.CreatedAt,
		updatedAt:             args.UpdatedAt,
	}
}

// MarkPending parks the account again regardless of its current status. A
// re-submitted form always resets the gate, even for an approved account.
func (a *Account) MarkPending(role string) error {
	const op = "account.Account.MarkPending"
	if a == nil {
		return errorx.Wrap(errors.New("account is nil"), op)
	}

	a.status = StatusPendingReview
	a.verificationSessionID = ""
	if role != "" {
		a.role = role
	}
	a.updatedAt = time.Now().UTC()

	a.AddEvent(&MarkedPending{
		Header:    event.NewEventHeader(),
		AccountID: a.id,
		Email:     a.email,
		Role:      a.role,
	})

	return nil
}

func (a *Account) StartDocumentVerification(sessionID string) error {
	const op = "account.Account.StartDocumentVerification"
	if a == nil {
		return errorx.Wrap(errors.New("account is nil"), op)
	}
	if sessionID == "" {
		return errorx.Wrap(errors.New("session id is empty"), op)
	}
	if a.status != StatusPendingReview {
		return errorx.Wrap(ErrInvalidStatus, op)
	}

	a.status = StatusAwaitingVerification
	a.verificationSessionID = sessionID
	a.updatedAt = time.Now().UTC()

	a.AddEvent(&VerificationStarted{
		Header:    event.NewEventHeader(),
		AccountID: a.id,
		Email:     a.email,
		SessionID: sessionID,
	})

	return nil
}

// AttachStudentDocument records an uploaded student ID document. The account
// stays parked until a reviewer approves it out of band.
func (a *Account) AttachStudentDocument(key string) error {
	const op = "account.Account.AttachStudentDocument"
	if a == nil {
		return errorx.Wrap(errors.New("account is nil"), op)
	}
	if key == "" {
		return errorx.Wrap(errors.New("document key is empty"), op)
	}
	if a.status == StatusApproved {
		return errorx.Wrap(ErrAlreadyApproved, op)
	}

	a.documentKey = key
	a.updatedAt = time.Now().UTC()

	a.AddEvent(&DocumentSubmitted{
		Header:      event.NewEventHeader(),
		AccountID:   a.id,
		Email:       a.email,
		DocumentKey: key,
	})

	return nil
}

func (a *Account) Approve() error {
	const op = "account.Account.Approve"
	if a == nil {
		return errorx.Wrap(errors.New("account is nil"), op)
	}
	if a.status == StatusApproved {
		return errorx.Wrap(ErrAlreadyApproved, op)
	}
	if a.status != StatusAwaitingVerification {
		return errorx.Wrap(ErrInvalidStatus, op)
	}

	a.status = StatusApproved
	a.updatedAt = time.Now().UTC()

	a.AddEvent(&Approved{
		Header:    event.NewEventHeader(),
		AccountID: a.id,
		Email:     a.email,
		SessionID: a.verificationSessionID,
	})

	return nil
}

func (a *Account) IsStatus(s Status) bool {
	if a == nil {
		return false
	}

	return a.status == s
}

func (a *Account) IsApproved() bool {
	return a.IsStatus(StatusApproved)
}

func (a *Account) ID() ID {
	if a == nil {
		return ID{}
	}

	return a.id
}

func (a *Account) Email() string {
	if a == nil {
		return ""
	}

	return a.email
}

func (a *Account) Role() string {
	if a == nil {
		return ""
	}

	return a.role
}

func (a *Account) Status() Status {
	if a == nil {
		return ""
	}

	return a.status
}

func (a *Account) VerificationSessionID() string {
	if a == nil {
		return ""
	}

	return a.verificationSessionID
}

func (a *Account) DocumentKey() string {
	if a == nil {
		return ""
	}

	return a.documentKey
}

func (a *Account) CreatedAt() time.Time {
	if a == nil {
		return time.Time{}
	}

	return a.createdAt
}

func (a *Account) UpdatedAt() time.Time {
	if a == nil {
		return time.Time{}
	}

	return a.updatedAt
}
